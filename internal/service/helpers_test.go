package service

import (
	"org_diagnostics/internal/catalog"
	"org_diagnostics/internal/model"
	"testing"
	"time"
)

func twoCategoryCatalog() *model.Catalog {
	return &model.Catalog{
		Source: "test",
		Categories: []model.Category{
			{Name: "A", CoreGoal: "Ziel A", Subtopics: []model.Subtopic{{Title: "a1"}}},
			{Name: "B", CoreGoal: "Ziel B", Subtopics: []model.Subtopic{{Title: "b1"}}},
		},
	}
}

// 两个要素下的子项同名
func sharedTitleCatalog() *model.Catalog {
	return &model.Catalog{
		Source: "test",
		Categories: []model.Category{
			{Name: "Kultur", CoreGoal: "k", Subtopics: []model.Subtopic{{Title: "Werte"}, {Title: "Rituale"}}},
			{Name: "Führung", CoreGoal: "f", Subtopics: []model.Subtopic{{Title: "Werte"}}},
		},
	}
}

func newTestServices(t *testing.T, cat *model.Catalog) (*SessionService, *ReportService) {
	t.Helper()
	sessions := NewSessionService(catalog.NewStaticStore(cat), 16, time.Hour)
	reports := NewReportService(NewCollector(), sessions, &StorageService{})
	return sessions, reports
}
