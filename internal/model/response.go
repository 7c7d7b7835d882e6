package model

import "time"

// ResponseRecord 单个子项的 SOLL/IST 评分，创建后不再修改
type ResponseRecord struct {
	Category  string `json:"category"`
	Subtopic  string `json:"subtopic"`
	Target    int    `json:"target"`
	Actual    int    `json:"actual"`
	Deviation int    `json:"deviation"`
}

// CategorySummary 按要素汇总
type CategorySummary struct {
	Category     string `json:"category"`
	TargetSum    int    `json:"targetSum"`
	ActualSum    int    `json:"actualSum"`
	DeviationSum int    `json:"deviationSum"`
}

type Aggregation struct {
	Records   []ResponseRecord  `json:"records"`
	Summaries []CategorySummary `json:"summaries"`
	Peak      CategorySummary   `json:"peak"`
}

// RadarSeries 闭合多边形：Angles/Target/Actual 长度为 k+1，末位重复首位
type RadarSeries struct {
	Categories []string  `json:"categories"`
	Angles     []float64 `json:"angles"`
	Target     []float64 `json:"target"`
	Actual     []float64 `json:"actual"`
}

type Report struct {
	SessionID string `json:"sessionId"`
	Aggregation
	Radar       RadarSeries `json:"radar"`
	GeneratedAt time.Time   `json:"generatedAt"`
}
