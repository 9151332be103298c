package util

import (
	"strconv"
	"time"
)

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}

// PtrInt64 用于将 int64 转换为 *int64
func PtrInt64(i int64) *int64 {
	return &i
}

// PtrStr 用于将 string 转换为 *string
func PtrStr(s string) *string {
	return &s
}

// StrToUint64 解析十进制字符串为 uint64
func StrToUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// StrSliceToUInt64Slice 批量解析，遇到非法值直接跳过
func StrSliceToUInt64Slice(strs []string) []uint64 {
	result := make([]uint64, 0, len(strs))
	for _, s := range strs {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			continue
		}
		result = append(result, v)
	}
	return result
}

// UTCDate 截断到 UTC 日历日零点
func UTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetweenUTC 按 UTC 日历日计算 b 相对 a 过去了多少天
func DaysBetweenUTC(a, b time.Time) int {
	return int(UTCDate(b).Sub(UTCDate(a)) / (24 * time.Hour))
}
