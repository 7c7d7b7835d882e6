package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"org_diagnostics/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesOrder(t *testing.T) {
	data := []byte(`{
		"Zeta":  {"Kernziel": "z", "Unterkapitel": [{"Titel": "z1", "Beschreibung": "erste"}, {"Titel": "z2"}]},
		"Alpha": {"Kernziel": "a", "Unterkapitel": [{"Titel": "a1"}]},
		"Mitte": {"Kernziel": "m", "Unterkapitel": [{"Titel": "m1"}]}
	}`)

	cat, err := NewLoader().Parse("inline", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "Alpha", "Mitte"}, cat.CategoryNames())
	assert.Equal(t, "z", cat.Categories[0].CoreGoal)
	assert.Equal(t, "z1", cat.Categories[0].Subtopics[0].Title)
	assert.Equal(t, "erste", cat.Categories[0].Subtopics[0].Hint)
	assert.Equal(t, 4, cat.SubtopicCount())
	assert.Equal(t, "inline", cat.Source)
}

func TestParseEnglishKeysAndYAML(t *testing.T) {
	data := []byte(`
Culture:
  coreGoal: shared values
  subtopics:
    - title: Rituals
      description: recurring events
Leadership:
  coreGoal: direction
  subtopics:
    - title: Feedback
`)

	cat, err := NewLoader().Parse("inline.yaml", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Culture", "Leadership"}, cat.CategoryNames())
	assert.Equal(t, "recurring events", cat.Categories[0].Subtopics[0].Hint)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"A": {`},
		{"empty document", ``},
		{"top level list", `[1, 2]`},
		{"duplicate category", `{"A": {"Kernziel": "x", "Unterkapitel": [{"Titel": "1"}]}, "A": {"Kernziel": "y", "Unterkapitel": [{"Titel": "2"}]}}`},
		{"no subtopics", `{"A": {"Kernziel": "x", "Unterkapitel": []}}`},
		{"missing core goal", `{"A": {"Unterkapitel": [{"Titel": "1"}]}}`},
		{"blank title", `{"A": {"Kernziel": "x", "Unterkapitel": [{"Titel": "  "}]}}`},
		{"duplicate subtopic", `{"A": {"Kernziel": "x", "Unterkapitel": [{"Titel": "1"}, {"Titel": "1"}]}}`},
		{"wrong entry shape", `{"A": "just a string"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := NewLoader().Parse("inline", []byte(tt.data))
			assert.Nil(t, cat)
			require.Error(t, err)
			assert.ErrorIs(t, err, util.ErrCatalogLoad)

			var loadErr *util.CatalogLoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "inline", loadErr.Path)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := NewLoader().LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, util.ErrCatalogLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadShippedCatalog(t *testing.T) {
	cat, err := NewLoader().LoadFile("../../configs/wesenselemente.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"Identität", "Strategie", "Struktur", "Prozesse", "Kultur", "Führung"}, cat.CategoryNames())
	for _, c := range cat.Categories {
		assert.NotEmpty(t, c.CoreGoal)
		assert.NotEmpty(t, c.Subtopics)
	}
}
