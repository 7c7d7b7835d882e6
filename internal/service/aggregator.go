package service

import (
	"org_diagnostics/internal/model"
	"org_diagnostics/internal/util"
)

// Aggregate 按要素首次出现的顺序分组求和，并选出总偏差最大的要素。
// 并列时取目录顺序中靠前者（严格大于才替换）。
func Aggregate(records []model.ResponseRecord) (*model.Aggregation, error) {
	if len(records) == 0 {
		return nil, util.ErrEmptyInput
	}

	index := make(map[string]int)
	summaries := make([]model.CategorySummary, 0)

	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(summaries)
			index[r.Category] = i
			summaries = append(summaries, model.CategorySummary{Category: r.Category})
		}
		summaries[i].TargetSum += r.Target
		summaries[i].ActualSum += r.Actual
		summaries[i].DeviationSum += r.Deviation
	}

	peak := summaries[0]
	for _, s := range summaries[1:] {
		if s.DeviationSum > peak.DeviationSum {
			peak = s
		}
	}

	out := make([]model.ResponseRecord, len(records))
	copy(out, records)

	return &model.Aggregation{
		Records:   out,
		Summaries: summaries,
		Peak:      peak,
	}, nil
}
