package service

import (
	"fmt"
	"net/url"
	"org_diagnostics/internal/model"
	"org_diagnostics/internal/util"
	"strings"
)

type RatingKind string

const (
	KindTarget RatingKind = "soll"
	KindActual RatingKind = "ist"
)

// RatingRequest 向控件层请求一个有界整数
type RatingRequest struct {
	Label   string
	Min     int
	Max     int
	Default int
	Key     string
	Hint    string
}

// RatingSource 控件层：HTML 表单、JSON 请求体或离线评分文件
type RatingSource interface {
	RequestInteger(req RatingRequest) (int, error)
}

// RatingKey 由 (要素, 子项, 类型) 派生稳定键。
// 各段先做 QueryEscape，分隔符 "|" 不会出现在段内，因此不同要素下的同名子项不会冲突。
func RatingKey(category, title string, kind RatingKind) string {
	return url.QueryEscape(category) + "|" + url.QueryEscape(title) + "|" + string(kind)
}

// ParseRatingKey RatingKey 的逆操作
func ParseRatingKey(key string) (category, title string, kind RatingKind, err error) {
	parts := strings.Split(key, "|")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("%w: %q", util.ErrInvalidRatingKey, key)
	}
	if category, err = url.QueryUnescape(parts[0]); err != nil {
		return "", "", "", fmt.Errorf("%w: %q", util.ErrInvalidRatingKey, key)
	}
	if title, err = url.QueryUnescape(parts[1]); err != nil {
		return "", "", "", fmt.Errorf("%w: %q", util.ErrInvalidRatingKey, key)
	}
	kind = RatingKind(parts[2])
	if kind != KindTarget && kind != KindActual {
		return "", "", "", fmt.Errorf("%w: %q", util.ErrInvalidRatingKey, key)
	}
	return category, title, kind, nil
}

// NewRecord 直接构造记录，越界时返回 RangeError
func NewRecord(category, title string, target, actual int) (model.ResponseRecord, error) {
	if err := util.CheckRating(RatingKey(category, title, KindTarget), target); err != nil {
		return model.ResponseRecord{}, err
	}
	if err := util.CheckRating(RatingKey(category, title, KindActual), actual); err != nil {
		return model.ResponseRecord{}, err
	}
	return model.ResponseRecord{
		Category:  category,
		Subtopic:  title,
		Target:    target,
		Actual:    actual,
		Deviation: target - actual,
	}, nil
}

// Collector 按目录顺序为每个子项收集 SOLL/IST
type Collector struct{}

func NewCollector() *Collector {
	return &Collector{}
}

// Collect 返回与目录一一对应的记录，以及本次提交的原始键值（用于重置后回填表单）
func (c *Collector) Collect(cat *model.Catalog, src RatingSource) ([]model.ResponseRecord, map[string]int, error) {
	records := make([]model.ResponseRecord, 0, cat.SubtopicCount())
	values := make(map[string]int, 2*cat.SubtopicCount())

	for _, category := range cat.Categories {
		for _, sub := range category.Subtopics {
			target, err := c.request(src, category.Name, sub, KindTarget)
			if err != nil {
				return nil, nil, err
			}
			actual, err := c.request(src, category.Name, sub, KindActual)
			if err != nil {
				return nil, nil, err
			}

			rec, err := NewRecord(category.Name, sub.Title, target, actual)
			if err != nil {
				return nil, nil, err
			}
			records = append(records, rec)
			values[RatingKey(category.Name, sub.Title, KindTarget)] = target
			values[RatingKey(category.Name, sub.Title, KindActual)] = actual
		}
	}
	return records, values, nil
}

func (c *Collector) request(src RatingSource, category string, sub model.Subtopic, kind RatingKind) (int, error) {
	return src.RequestInteger(NewRatingRequest(category, sub, kind))
}

func NewRatingRequest(category string, sub model.Subtopic, kind RatingKind) RatingRequest {
	req := RatingRequest{
		Min:  util.RatingMin,
		Max:  util.RatingMax,
		Key:  RatingKey(category, sub.Title, kind),
		Hint: sub.Hint,
	}
	if kind == KindTarget {
		req.Label = "SOLL – " + sub.Title
		req.Default = util.DefaultTarget
	} else {
		req.Label = "IST – " + sub.Title
		req.Default = util.DefaultActual
	}
	return req
}

// MapRatingSource 基于键值表的评分来源；缺失的键取默认值
type MapRatingSource map[string]int

func (m MapRatingSource) RequestInteger(req RatingRequest) (int, error) {
	v, ok := m[req.Key]
	if !ok {
		return req.Default, nil
	}
	if v < req.Min || v > req.Max {
		return 0, &util.RangeError{Key: req.Key, Value: fmt.Sprint(v), Min: req.Min, Max: req.Max}
	}
	return v, nil
}

// FormRatingSource 读取表单字符串值，空值取默认值
type FormRatingSource func(key string) (string, bool)

func (f FormRatingSource) RequestInteger(req RatingRequest) (int, error) {
	raw, ok := f(req.Key)
	if !ok || strings.TrimSpace(raw) == "" {
		return req.Default, nil
	}
	return util.ParseRating(req.Key, raw)
}

// Rating 外部直接提交的一条评分（JSON 接口、离线评分文件）。
// Target/Actual 为 nil 表示未填写，收集时取默认值。
type Rating struct {
	Category string `json:"category" yaml:"category"`
	Subtopic string `json:"subtopic" yaml:"subtopic"`
	Target   *int   `json:"target" yaml:"target"`
	Actual   *int   `json:"actual" yaml:"actual"`
}

// NewRatingsSource 校验评分是否属于目录，越界值留给 Collect 报 RangeError
func NewRatingsSource(cat *model.Catalog, ratings []Rating) (MapRatingSource, error) {
	known := make(map[string]bool, cat.SubtopicCount())
	for _, c := range cat.Categories {
		for _, sub := range c.Subtopics {
			known[RatingKey(c.Name, sub.Title, KindTarget)] = true
		}
	}

	src := make(MapRatingSource, 2*len(ratings))
	for _, r := range ratings {
		targetKey := RatingKey(r.Category, r.Subtopic, KindTarget)
		if !known[targetKey] {
			return nil, fmt.Errorf("%w: unknown subtopic %q in %q", util.ErrInvalidRatingKey, r.Subtopic, r.Category)
		}
		if r.Target != nil {
			src[targetKey] = *r.Target
		}
		if r.Actual != nil {
			src[RatingKey(r.Category, r.Subtopic, KindActual)] = *r.Actual
		}
	}
	return src, nil
}
