package catalog

import (
	"context"
	"org_diagnostics/internal/model"
	"org_diagnostics/pkg/configwatcher"
	"org_diagnostics/pkg/logger"
	"org_diagnostics/pkg/monitoring"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Store 持有当前目录快照。新会话取 Current()，已开始的会话保留各自的快照。
type Store struct {
	loader  *Loader
	path    string
	current atomic.Pointer[model.Catalog]
}

// NewStore 启动时加载一次，失败直接返回 CatalogLoadError
func NewStore(loader *Loader, path string) (*Store, error) {
	s := &Store{loader: loader, path: path}
	cat, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	s.current.Store(cat)
	return s, nil
}

// NewStaticStore 用于测试与离线报告
func NewStaticStore(cat *model.Catalog) *Store {
	s := &Store{path: cat.Source}
	s.current.Store(cat)
	return s
}

func (s *Store) Current() *model.Catalog {
	return s.current.Load()
}

func (s *Store) Path() string {
	return s.path
}

// Reload 重新读取目录文件，失败时保留旧快照
func (s *Store) Reload() error {
	if s.loader == nil {
		return nil
	}
	cat, err := s.loader.LoadFile(s.path)
	if err != nil {
		monitoring.CatalogReloads.WithLabelValues("error").Inc()
		logger.Log.Error("Failed to reload catalog, keeping previous snapshot", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.current.Store(cat)
	monitoring.CatalogReloads.WithLabelValues("ok").Inc()
	logger.Log.Info("Catalog reloaded",
		zap.String("path", s.path),
		zap.Int("categories", len(cat.Categories)),
		zap.Int("subtopics", cat.SubtopicCount()),
	)
	return nil
}

// Watch 监听目录文件变化并热加载，阻塞直到 ctx 结束
func (s *Store) Watch(ctx context.Context, debounce time.Duration) error {
	return configwatcher.Watch(ctx, s.path, debounce, func() {
		_ = s.Reload()
	})
}
