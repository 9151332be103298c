package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetweenUTC(t *testing.T) {
	base := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetweenUTC(base, base.Add(8*time.Hour)))
	assert.Equal(t, 1, DaysBetweenUTC(base, base.Add(10*time.Hour)))
	assert.Equal(t, 3, DaysBetweenUTC(base, base.Add(72*time.Hour)))
	assert.Equal(t, -1, DaysBetweenUTC(base.Add(10*time.Hour), base))
}

func TestDaysBetweenUTCIgnoresTimezone(t *testing.T) {
	// 东京时间 8/30 01:00 仍是 UTC 8/29，按 UTC 日历日算同一天
	tokyo := time.FixedZone("JST", 9*3600)
	a := time.Date(2026, 8, 29, 20, 0, 0, 0, time.UTC)
	b := time.Date(2026, 8, 30, 5, 30, 0, 0, tokyo)

	assert.Equal(t, 0, DaysBetweenUTC(a, b))
}

func TestStrSliceToUInt64Slice(t *testing.T) {
	ids := StrSliceToUInt64Slice([]string{"1", "42", "9000"})
	assert.Equal(t, []uint64{1, 42, 9000}, ids)

	// 非法值跳过，不中断整批
	ids = StrSliceToUInt64Slice([]string{"1", "abc", "2"})
	assert.Equal(t, []uint64{1, 2}, ids)
}
