package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"org_diagnostics/internal/model"
	"org_diagnostics/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	catalogV1 = `{"A": {"Kernziel": "a", "Unterkapitel": [{"Titel": "a1"}]}}`
	catalogV2 = `{"A": {"Kernziel": "a", "Unterkapitel": [{"Titel": "a1"}]}, "B": {"Kernziel": "b", "Unterkapitel": [{"Titel": "b1"}]}}`
)

func writeCatalog(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewStoreFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, `{"A": {`)

	store, err := NewStore(NewLoader(), path)
	assert.Nil(t, store)
	assert.ErrorIs(t, err, util.ErrCatalogLoad)
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, catalogV1)

	store, err := NewStore(NewLoader(), path)
	require.NoError(t, err)
	first := store.Current()

	writeCatalog(t, path, `not: [valid`)
	assert.Error(t, store.Reload())
	assert.Same(t, first, store.Current())

	writeCatalog(t, path, catalogV2)
	require.NoError(t, store.Reload())
	assert.Equal(t, []string{"A", "B"}, store.Current().CategoryNames())
	assert.Equal(t, []string{"A"}, first.CategoryNames())
}

func TestStaticStore(t *testing.T) {
	cat := &model.Catalog{Source: "mem", Categories: []model.Category{{Name: "X", CoreGoal: "x", Subtopics: []model.Subtopic{{Title: "x1"}}}}}
	store := NewStaticStore(cat)

	assert.Same(t, cat, store.Current())
	assert.Equal(t, "mem", store.Path())
	assert.NoError(t, store.Reload())
	assert.Same(t, cat, store.Current())
}

func TestWatchReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, catalogV1)

	store, err := NewStore(NewLoader(), path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, 50*time.Millisecond) }()

	// 等待 watcher 就绪后再写入
	time.Sleep(100 * time.Millisecond)
	writeCatalog(t, path, catalogV2)

	assert.Eventually(t, func() bool {
		return len(store.Current().Categories) == 2
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
