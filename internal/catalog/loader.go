package catalog

import (
	"errors"
	"fmt"
	"org_diagnostics/internal/model"
	"org_diagnostics/internal/util"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// 目录文件中单个要素的原始结构，兼容德语与英语字段名
type rawSubtopic struct {
	Titel        string `yaml:"Titel"`
	Beschreibung string `yaml:"Beschreibung"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
}

type rawCategory struct {
	Kernziel     string        `yaml:"Kernziel"`
	Unterkapitel []rawSubtopic `yaml:"Unterkapitel"`
	CoreGoal     string        `yaml:"coreGoal"`
	Subtopics    []rawSubtopic `yaml:"subtopics"`
}

// Loader 将 JSON/YAML 目录解析为强类型 Catalog。
// 使用 yaml.Node 逐对读取映射，以保留要素在文件中的顺序（JSON 是 YAML 的子集）。
type Loader struct {
	validator *util.Validator
}

func NewLoader() *Loader {
	return &Loader{validator: util.NewValidator()}
}

func (l *Loader) LoadFile(path string) (*model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &util.CatalogLoadError{Path: path, Reason: "cannot read file", Err: err}
	}
	return l.Parse(path, data)
}

func (l *Loader) Parse(source string, data []byte) (*model.Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &util.CatalogLoadError{Path: source, Reason: "malformed document", Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &util.CatalogLoadError{Path: source, Reason: "empty document"}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &util.CatalogLoadError{Path: source, Reason: "top level must be a mapping of category name to entry"}
	}

	cat := &model.Catalog{Source: source, LoadedAt: time.Now()}
	seen := make(map[string]bool, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		name := strings.TrimSpace(keyNode.Value)
		if seen[name] {
			return nil, &util.CatalogLoadError{Path: source, Reason: fmt.Sprintf("duplicate category %q (line %d)", name, keyNode.Line)}
		}
		seen[name] = true

		var raw rawCategory
		if err := valueNode.Decode(&raw); err != nil {
			return nil, &util.CatalogLoadError{Path: source, Reason: fmt.Sprintf("category %q", name), Err: err}
		}

		entry, err := raw.toCategory(name)
		if err != nil {
			return nil, &util.CatalogLoadError{Path: source, Reason: fmt.Sprintf("category %q", name), Err: err}
		}
		cat.Categories = append(cat.Categories, entry)
	}

	if err := l.validator.Validate(cat); err != nil {
		return nil, &util.CatalogLoadError{Path: source, Reason: "invalid catalog", Err: err}
	}
	return cat, nil
}

func (r rawCategory) toCategory(name string) (model.Category, error) {
	goal := firstNonEmpty(r.Kernziel, r.CoreGoal)
	items := r.Unterkapitel
	if len(items) == 0 {
		items = r.Subtopics
	}

	c := model.Category{
		Name:      name,
		CoreGoal:  goal,
		Subtopics: make([]model.Subtopic, 0, len(items)),
	}
	titles := make(map[string]bool, len(items))
	for _, it := range items {
		title := strings.TrimSpace(firstNonEmpty(it.Titel, it.Title))
		if title != "" && titles[title] {
			return c, errors.New("duplicate subtopic " + title)
		}
		titles[title] = true
		c.Subtopics = append(c.Subtopics, model.Subtopic{
			Title: title,
			Hint:  firstNonEmpty(it.Beschreibung, it.Description),
		})
	}
	return c, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
