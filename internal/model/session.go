package model

import (
	"org_diagnostics/internal/util"
	"time"

	"github.com/google/uuid"
)

type SessionState string

const (
	StateCollecting SessionState = "collecting"
	StateReported   SessionState = "reported"
)

// Session 会话级上下文，贯穿整个流水线；不同会话之间不共享任何可变结构
type Session struct {
	ID        string         `json:"id"`
	Catalog   *Catalog       `json:"-"`
	State     SessionState   `json:"state"`
	Values    map[string]int `json:"values"`
	Report    *Report        `json:"report,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func NewSessionID() string {
	return uuid.New().String()
}

func NewSession(catalog *Catalog) *Session {
	now := time.Now()
	return &Session{
		ID:        NewSessionID(),
		Catalog:   catalog,
		State:     StateCollecting,
		Values:    make(map[string]int),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Submit Collecting -> Reported，仅允许一次
func (s *Session) Submit(values map[string]int, report *Report) error {
	if s.State != StateCollecting {
		return util.ErrAlreadyReported
	}
	s.Values = values
	s.Report = report
	s.State = StateReported
	s.UpdatedAt = time.Now()
	return nil
}

// Reset Reported -> Collecting，保留上次输入作为表单默认值
func (s *Session) Reset() {
	s.Report = nil
	s.State = StateCollecting
	s.UpdatedAt = time.Now()
}
