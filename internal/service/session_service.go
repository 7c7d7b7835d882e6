package service

import (
	"org_diagnostics/internal/catalog"
	"org_diagnostics/internal/model"
	"org_diagnostics/internal/util"
	"org_diagnostics/pkg/logger"
	"org_diagnostics/pkg/monitoring"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

type sessionEntry struct {
	mu      sync.Mutex
	session *model.Session
}

// SessionService 会话存储：每个会话独立，过期或超出容量后淘汰
type SessionService struct {
	catalogs *catalog.Store
	cache    *expirable.LRU[string, *sessionEntry]
}

func NewSessionService(catalogs *catalog.Store, maxSessions int, ttl time.Duration) *SessionService {
	onEvict := func(id string, _ *sessionEntry) {
		logger.Log.Debug("Session evicted", zap.String("session", id))
	}
	return &SessionService{
		catalogs: catalogs,
		cache:    expirable.NewLRU[string, *sessionEntry](maxSessions, onEvict, ttl),
	}
}

// Create 以当前目录快照开启新会话
func (s *SessionService) Create() (*model.Session, error) {
	cat := s.catalogs.Current()
	if cat == nil {
		return nil, util.ErrCatalogLoad
	}

	sess := model.NewSession(cat)
	s.cache.Add(sess.ID, &sessionEntry{session: sess})
	monitoring.SessionsCreated.Inc()
	logger.Log.Info("Session created",
		zap.String("session", sess.ID),
		zap.Int("categories", len(cat.Categories)),
	)
	return copySession(sess), nil
}

// With 在会话锁内执行 fn，并刷新过期时间
func (s *SessionService) With(id string, fn func(*model.Session) error) error {
	e, ok := s.cache.Get(id)
	if !ok {
		return util.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.session); err != nil {
		return err
	}
	s.cache.Add(id, e)
	return nil
}

// Get 返回会话副本；Report 创建后不再修改，可共享
func (s *SessionService) Get(id string) (*model.Session, error) {
	var out *model.Session
	err := s.With(id, func(sess *model.Session) error {
		out = copySession(sess)
		return nil
	})
	return out, err
}

func (s *SessionService) Delete(id string) bool {
	return s.cache.Remove(id)
}

func (s *SessionService) Len() int {
	return s.cache.Len()
}

func copySession(sess *model.Session) *model.Session {
	cp := *sess
	cp.Values = make(map[string]int, len(sess.Values))
	for k, v := range sess.Values {
		cp.Values[k] = v
	}
	return &cp
}
