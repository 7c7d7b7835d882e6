package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"org_diagnostics/internal/catalog"
	"org_diagnostics/internal/middleware"
	"org_diagnostics/internal/model"
	"org_diagnostics/internal/service"
	"org_diagnostics/internal/util"
	"org_diagnostics/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssessmentController struct {
	Catalogs     *catalog.Store
	Sessions     *service.SessionService
	Reports      *service.ReportService
	SecureCookie bool
}

func NewAssessmentController(catalogs *catalog.Store, sessions *service.SessionService, reports *service.ReportService, secureCookie bool) *AssessmentController {
	return &AssessmentController{
		Catalogs:     catalogs,
		Sessions:     sessions,
		Reports:      reports,
		SecureCookie: secureCookie,
	}
}

type slider struct {
	Key   string
	Label string
	Min   int
	Max   int
	Value int
}

type formItem struct {
	Title  string
	Hint   string
	Target slider
	Actual slider
}

type formCategory struct {
	Name     string
	CoreGoal string
	Items    []formItem
}

func newSlider(req service.RatingRequest, values map[string]int) slider {
	v, ok := values[req.Key]
	if !ok {
		v = req.Default
	}
	return slider{Key: req.Key, Label: req.Label, Min: req.Min, Max: req.Max, Value: v}
}

func buildForm(cat *model.Catalog, values map[string]int) []formCategory {
	out := make([]formCategory, 0, len(cat.Categories))
	for _, c := range cat.Categories {
		fc := formCategory{Name: c.Name, CoreGoal: c.CoreGoal}
		for _, sub := range c.Subtopics {
			fc.Items = append(fc.Items, formItem{
				Title:  sub.Title,
				Hint:   sub.Hint,
				Target: newSlider(service.NewRatingRequest(c.Name, sub, service.KindTarget), values),
				Actual: newSlider(service.NewRatingRequest(c.Name, sub, service.KindActual), values),
			})
		}
		out = append(out, fc)
	}
	return out
}

func (c *AssessmentController) renderError(ctx *gin.Context, err error) {
	code := util.StatusOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		logger.Log.Error("Internal server error", zap.String("path", ctx.Request.URL.Path), zap.Error(err))
		msg = "Interner Fehler"
	}
	ctx.HTML(code, "error.html", gin.H{"Message": msg})
}

// Index 继续 Cookie 中的会话，否则新建
func (c *AssessmentController) Index(ctx *gin.Context) {
	if id, err := ctx.Cookie(util.SessionCookieName); err == nil {
		if _, err := c.Sessions.Get(id); err == nil {
			ctx.Redirect(http.StatusSeeOther, "/sessions/"+id)
			return
		}
	}

	sess, err := c.Sessions.Create()
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	middleware.SessionCookie(ctx, sess.ID, c.SecureCookie)
	ctx.Redirect(http.StatusSeeOther, "/sessions/"+sess.ID)
}

func (c *AssessmentController) Form(ctx *gin.Context) {
	sess, err := c.Sessions.Get(middleware.GetSessionID(ctx))
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	if sess.State == model.StateReported {
		ctx.Redirect(http.StatusSeeOther, "/sessions/"+sess.ID+"/report")
		return
	}

	ctx.HTML(http.StatusOK, "form.html", gin.H{
		"SessionID":  sess.ID,
		"Categories": buildForm(sess.Catalog, sess.Values),
	})
}

func (c *AssessmentController) SubmitForm(ctx *gin.Context) {
	id := middleware.GetSessionID(ctx)
	src := service.FormRatingSource(ctx.GetPostForm)

	if _, err := c.Reports.Submit(ctx.Request.Context(), id, src); err != nil {
		c.renderError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/sessions/"+id+"/report")
}

func (c *AssessmentController) ReportPage(ctx *gin.Context) {
	id := middleware.GetSessionID(ctx)
	report, err := c.Reports.Report(id)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	datasets := service.BuildExport(report.Records, report.Summaries)
	ctx.HTML(http.StatusOK, "report.html", gin.H{
		"SessionID": id,
		"Report":    report,
		"Detail":    datasets[0],
		"Overview":  datasets[1],
		"Filename":  util.ExportFilename,
	})
}

func (c *AssessmentController) ResetForm(ctx *gin.Context) {
	id := middleware.GetSessionID(ctx)
	if err := c.Reports.Reset(id); err != nil {
		c.renderError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/sessions/"+id)
}

// @Summary 获取评估目录
// @Tags 组织诊断
// @Produce json
// @Success 200 {object} util.Response
// @Router /catalog [get]
func (c *AssessmentController) GetCatalog(ctx *gin.Context) {
	cat := c.Catalogs.Current()
	if cat == nil {
		util.HandleError(ctx, util.ErrCatalogLoad)
		return
	}
	util.Success(ctx, cat)
}

// @Summary 创建评估会话
// @Tags 组织诊断
// @Produce json
// @Success 201 {object} util.Response
// @Router /sessions [post]
func (c *AssessmentController) CreateSession(ctx *gin.Context) {
	sess, err := c.Sessions.Create()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, sess)
}

// @Summary 获取会话状态
// @Tags 组织诊断
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /sessions/{id} [get]
func (c *AssessmentController) GetSession(ctx *gin.Context) {
	sess, err := c.Sessions.Get(middleware.GetSessionID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

type RatingInput struct {
	Category string `json:"category" binding:"required"`
	Subtopic string `json:"subtopic" binding:"required"`
	Target   *int   `json:"target" binding:"required"`
	Actual   *int   `json:"actual" binding:"required"`
}

type SubmitRequest struct {
	Ratings []RatingInput `json:"ratings" binding:"dive"`
}

// @Summary 提交评分
// @Description 未提交的子项使用默认值 SOLL=7 / IST=5
// @Tags 组织诊断
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param body body SubmitRequest true "评分"
// @Success 200 {object} util.Response
// @Router /sessions/{id}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	id := middleware.GetSessionID(ctx)

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sess, err := c.Sessions.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	src, err := service.NewRatingsSource(sess.Catalog, toRatings(req.Ratings))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	report, err := c.Reports.Submit(ctx.Request.Context(), id, src)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

func toRatings(in []RatingInput) []service.Rating {
	out := make([]service.Rating, len(in))
	for i, r := range in {
		out[i] = service.Rating{Category: r.Category, Subtopic: r.Subtopic, Target: r.Target, Actual: r.Actual}
	}
	return out
}

// @Summary 获取评估报告
// @Tags 组织诊断
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /sessions/{id}/report [get]
func (c *AssessmentController) GetReport(ctx *gin.Context) {
	report, err := c.Reports.Report(middleware.GetSessionID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary 重新评估
// @Tags 组织诊断
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /sessions/{id}/reset [post]
func (c *AssessmentController) Reset(ctx *gin.Context) {
	id := middleware.GetSessionID(ctx)
	if err := c.Reports.Reset(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	sess, err := c.Sessions.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

// @Summary 下载 Excel
// @Tags 组织诊断
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "会话ID"
// @Success 200 {file} file
// @Router /sessions/{id}/export [get]
func (c *AssessmentController) Export(ctx *gin.Context) {
	data, err := c.Reports.Export(ctx.Request.Context(), middleware.GetSessionID(ctx))
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, util.ExportFilename))
	ctx.Data(http.StatusOK, util.MimeXLSX, data)
}

// @Summary 雷达图
// @Tags 组织诊断
// @Produce image/svg+xml
// @Param id path string true "会话ID"
// @Success 200 {file} file
// @Router /sessions/{id}/chart.svg [get]
func (c *AssessmentController) Chart(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.Reports.Chart(ctx.Request.Context(), middleware.GetSessionID(ctx), &buf); err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, util.MimeSVG, buf.Bytes())
}

// fail 下载类接口同时服务 HTML 页面与 API
func (c *AssessmentController) fail(ctx *gin.Context, err error) {
	if strings.HasPrefix(ctx.FullPath(), "/api/") {
		util.HandleError(ctx, err)
		return
	}
	c.renderError(ctx, err)
}
