package util

import (
	"strconv"
	"strings"
)

// ParseRating 解析表单中的评分，非整数或越界时返回 RangeError
func ParseRating(key, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &RangeError{Key: key, Value: strconv.Quote(raw), Min: RatingMin, Max: RatingMax}
	}
	return v, CheckRating(key, v)
}

// CheckRating 校验评分是否在 [RatingMin, RatingMax] 内
func CheckRating(key string, v int) error {
	if v < RatingMin || v > RatingMax {
		return &RangeError{Key: key, Value: strconv.Itoa(v), Min: RatingMin, Max: RatingMax}
	}
	return nil
}
