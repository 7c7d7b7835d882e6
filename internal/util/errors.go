package util

import (
	"errors"
	"fmt"
)

var (
	ErrRange            = errors.New("rating out of range")
	ErrEmptyInput       = errors.New("no response records to aggregate")
	ErrCatalogLoad      = errors.New("catalog load failed")
	ErrSessionNotFound  = errors.New("session not found")
	ErrAlreadyReported  = errors.New("session already reported")
	ErrNotReported      = errors.New("session has no report yet")
	ErrUnknownStorage   = errors.New("unknown storage type")
	ErrArchiveDisabled  = errors.New("export archive disabled")
	ErrInvalidRatingKey = errors.New("invalid rating key")
)

// RangeError 评分超出 [Min, Max] 区间，不做截断
type RangeError struct {
	Key   string
	Value string
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("rating %q = %s is outside [%d,%d]", e.Key, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error {
	return ErrRange
}

// CatalogLoadError 题目目录缺失或格式错误，会话无法启动
type CatalogLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CatalogLoadError) Error() string {
	msg := "catalog " + e.Path + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CatalogLoadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCatalogLoad, e.Err}
	}
	return []error{ErrCatalogLoad}
}
