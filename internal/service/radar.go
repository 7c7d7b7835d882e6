package service

import (
	"math"
	"org_diagnostics/internal/model"
	"org_diagnostics/internal/util"
)

// Project 将汇总映射为闭合雷达多边形。
// 第 i 个要素对应角度 2π·i/k（k 个点均分 [0, 2π)），末尾再重复首点以闭合。
func Project(summaries []model.CategorySummary) (*model.RadarSeries, error) {
	k := len(summaries)
	if k == 0 {
		return nil, util.ErrEmptyInput
	}

	rs := &model.RadarSeries{
		Categories: make([]string, k),
		Angles:     make([]float64, k+1),
		Target:     make([]float64, k+1),
		Actual:     make([]float64, k+1),
	}
	for i, s := range summaries {
		rs.Categories[i] = s.Category
		rs.Angles[i] = 2 * math.Pi * float64(i) / float64(k)
		rs.Target[i] = float64(s.TargetSum)
		rs.Actual[i] = float64(s.ActualSum)
	}
	rs.Angles[k] = rs.Angles[0]
	rs.Target[k] = rs.Target[0]
	rs.Actual[k] = rs.Actual[0]

	return rs, nil
}
