package service

import (
	"org_diagnostics/internal/model"
	"org_diagnostics/internal/util"
)

// BuildExport 生成 "Detail" 与 "Overview" 两张表；列顺序与列名是对外约定
func BuildExport(records []model.ResponseRecord, summaries []model.CategorySummary) []model.Dataset {
	detail := model.Dataset{
		Name:    util.SheetDetail,
		Columns: []string{util.ColumnCategory, util.ColumnSubtopic, util.ColumnTarget, util.ColumnActual, util.ColumnDeviation},
		Rows:    make([][]interface{}, 0, len(records)),
	}
	for _, r := range records {
		detail.Rows = append(detail.Rows, []interface{}{r.Category, r.Subtopic, r.Target, r.Actual, r.Deviation})
	}

	overview := model.Dataset{
		Name:    util.SheetOverview,
		Columns: []string{util.ColumnCategory, util.ColumnTarget, util.ColumnActual, util.ColumnDeviation},
		Rows:    make([][]interface{}, 0, len(summaries)),
	}
	for _, s := range summaries {
		overview.Rows = append(overview.Rows, []interface{}{s.Category, s.TargetSum, s.ActualSum, s.DeviationSum})
	}

	return []model.Dataset{detail, overview}
}
