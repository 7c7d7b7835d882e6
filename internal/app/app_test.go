package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"org_diagnostics/internal/catalog"
	"org_diagnostics/internal/config"
	"org_diagnostics/internal/model"
	"org_diagnostics/internal/service"
	"org_diagnostics/internal/util"
	"org_diagnostics/pkg/spreadsheet"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: gin.TestMode},
		Session:   config.SessionConfig{MaxSessions: 16, TTL: time.Hour},
		Storage:   config.StorageConfig{Type: util.StorageNone},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
	}
}

func testCatalog() *model.Catalog {
	return &model.Catalog{
		Source: "test",
		Categories: []model.Category{
			{Name: "A", CoreGoal: "Ziel A", Subtopics: []model.Subtopic{{Title: "a1", Hint: "Hinweis a1"}}},
			{Name: "B", CoreGoal: "Ziel B", Subtopics: []model.Subtopic{{Title: "b1"}}},
		},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(testConfig(), catalog.NewStaticStore(testCatalog()))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func do(t *testing.T, a *App, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func createSession(t *testing.T, a *App) string {
	t.Helper()
	w := do(t, a, http.MethodPost, "/api/sessions", nil, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var sess model.Session
	decode(t, w, &sess)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, model.StateCollecting, sess.State)
	return sess.ID
}

func TestHealthAndCatalog(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = do(t, a, http.MethodGet, "/api/catalog", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var cat model.Catalog
	decode(t, w, &cat)
	assert.Equal(t, []string{"A", "B"}, cat.CategoryNames())
}

func TestAPIAssessmentFlow(t *testing.T) {
	a := newTestApp(t)
	id := createSession(t, a)
	base := "/api/sessions/" + id

	w := do(t, a, http.MethodGet, base+"/report", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	body := []byte(`{"ratings":[
		{"category":"A","subtopic":"a1","target":8,"actual":3},
		{"category":"B","subtopic":"b1","target":5,"actual":5}
	]}`)
	w = do(t, a, http.MethodPost, base+"/submit", body, "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report model.Report
	decode(t, w, &report)
	assert.Equal(t, id, report.SessionID)
	assert.Equal(t, "A", report.Peak.Category)
	assert.Equal(t, []model.CategorySummary{
		{Category: "A", TargetSum: 8, ActualSum: 3, DeviationSum: 5},
		{Category: "B", TargetSum: 5, ActualSum: 5, DeviationSum: 0},
	}, report.Summaries)
	assert.Len(t, report.Radar.Angles, 3)

	w = do(t, a, http.MethodPost, base+"/submit", body, "application/json")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, a, http.MethodGet, base+"/report", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, a, http.MethodGet, base+"/export", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.MimeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), util.ExportFilename)

	sheets, err := spreadsheet.Read(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, []string{"Wesenselement", "Unterkapitel", "SOLL", "IST", "Abweichung"}, sheets[0].Columns)

	w = do(t, a, http.MethodGet, base+"/chart.svg", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.MimeSVG, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")

	w = do(t, a, http.MethodPost, base+"/reset", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var sess model.Session
	decode(t, w, &sess)
	assert.Equal(t, model.StateCollecting, sess.State)

	w = do(t, a, http.MethodGet, base+"/export", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAPISubmitErrors(t *testing.T) {
	a := newTestApp(t)
	id := createSession(t, a)
	base := "/api/sessions/" + id

	tests := []struct {
		name string
		body string
		want int
	}{
		{"out of range", `{"ratings":[{"category":"A","subtopic":"a1","target":11,"actual":3}]}`, http.StatusBadRequest},
		{"unknown subtopic", `{"ratings":[{"category":"A","subtopic":"b1","target":1,"actual":3}]}`, http.StatusBadRequest},
		{"missing actual", `{"ratings":[{"category":"A","subtopic":"a1","target":1}]}`, http.StatusBadRequest},
		{"malformed", `{"ratings":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, a, http.MethodPost, base+"/submit", []byte(tt.body), "application/json")
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	// 失败的提交不改变状态，默认值仍可提交
	w := do(t, a, http.MethodPost, base+"/submit", []byte(`{"ratings":[]}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	var report model.Report
	decode(t, w, &report)
	assert.Equal(t, 2, report.Peak.DeviationSum)
}

func TestAPIUnknownSession(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodGet, "/api/sessions/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, http.StatusNotFound, env.Code)
}

func TestHTMLFlow(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/sessions/"))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == util.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	// 带 Cookie 再次访问首页继续同一会话
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	assert.Equal(t, location, w.Header().Get("Location"))

	w = do(t, a, http.MethodGet, location, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, "SOLL – a1")
	assert.Contains(t, page, "IST – b1")
	assert.Contains(t, page, `value="7"`)
	assert.Contains(t, page, `value="5"`)
	assert.Less(t, strings.Index(page, "Ziel A"), strings.Index(page, "Ziel B"))

	form := url.Values{}
	form.Set(service.RatingKey("A", "a1", service.KindTarget), "8")
	form.Set(service.RatingKey("A", "a1", service.KindActual), "3")
	form.Set(service.RatingKey("B", "b1", service.KindTarget), "5")
	form.Set(service.RatingKey("B", "b1", service.KindActual), "5")
	w = do(t, a, http.MethodPost, location+"/submit", []byte(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, location+"/report", w.Header().Get("Location"))

	w = do(t, a, http.MethodGet, location+"/report", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Abweichung")
	assert.Contains(t, w.Body.String(), "<strong>A</strong>")
	assert.Contains(t, w.Body.String(), util.ExportFilename)

	// 已提交的会话访问表单时跳转到报告
	w = do(t, a, http.MethodGet, location, nil, "")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = do(t, a, http.MethodGet, location+"/export.xlsx", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.MimeXLSX, w.Header().Get("Content-Type"))

	w = do(t, a, http.MethodPost, location+"/reset", nil, "")
	require.Equal(t, http.StatusSeeOther, w.Code)

	// 重置后表单回填上次的输入
	w = do(t, a, http.MethodGet, location, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="8"`)
}

func TestHTMLSubmitOutOfRange(t *testing.T) {
	a := newTestApp(t)
	w := do(t, a, http.MethodGet, "/", nil, "")
	location := w.Header().Get("Location")

	form := url.Values{}
	form.Set(service.RatingKey("A", "a1", service.KindTarget), "12")
	w = do(t, a, http.MethodPost, location+"/submit", []byte(form.Encode()), "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, a, http.MethodGet, location+"/report", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHTMLUnknownSessionRedirects(t *testing.T) {
	a := newTestApp(t)
	w := do(t, a, http.MethodGet, "/sessions/unknown", nil, "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestSecurityHeadersAndMetrics(t *testing.T) {
	a := newTestApp(t)
	w := do(t, a, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = do(t, a, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestHTMLFlowEscapedNames(t *testing.T) {
	cat := &model.Catalog{
		Source: "test",
		Categories: []model.Category{
			{Name: "Führung & Steuerung", CoreGoal: "Richtung", Subtopics: []model.Subtopic{{Title: "Ziele | Kennzahlen"}, {Title: "Werte"}}},
			{Name: "Kultur", CoreGoal: "Miteinander", Subtopics: []model.Subtopic{{Title: "Werte"}}},
		},
	}
	a, err := NewApp(testConfig(), catalog.NewStaticStore(cat))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	w := do(t, a, http.MethodGet, "/", nil, "")
	location := w.Header().Get("Location")

	w = do(t, a, http.MethodGet, location, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SOLL – Ziele | Kennzahlen")

	form := url.Values{}
	form.Set(service.RatingKey("Führung & Steuerung", "Ziele | Kennzahlen", service.KindTarget), "10")
	form.Set(service.RatingKey("Führung & Steuerung", "Ziele | Kennzahlen", service.KindActual), "1")
	form.Set(service.RatingKey("Führung & Steuerung", "Werte", service.KindTarget), "4")
	form.Set(service.RatingKey("Kultur", "Werte", service.KindTarget), "9")
	form.Set(service.RatingKey("Kultur", "Werte", service.KindActual), "9")
	w = do(t, a, http.MethodPost, location+"/submit", []byte(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	w = do(t, a, http.MethodGet, location+"/export.xlsx", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	sheets, err := spreadsheet.Read(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	assert.Equal(t, [][]interface{}{
		{"Führung & Steuerung", "Ziele | Kennzahlen", "10", "1", "9"},
		{"Führung & Steuerung", "Werte", "4", "5", "-1"},
		{"Kultur", "Werte", "9", "9", "0"},
	}, sheets[0].Rows)
	assert.Equal(t, [][]interface{}{
		{"Führung & Steuerung", "14", "6", "8"},
		{"Kultur", "9", "9", "0"},
	}, sheets[1].Rows)
}
