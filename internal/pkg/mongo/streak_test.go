package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "JP", NormalizeCountry("jp"))
	assert.Equal(t, "USA", NormalizeCountry(" usa "))
	assert.Equal(t, BucketKeyUnknown, NormalizeCountry(""))
	assert.Equal(t, BucketKeyUnknown, NormalizeCountry("日本"))
	assert.Equal(t, BucketKeyUnknown, NormalizeCountry("a.b"))
}

func TestNormalizeGender(t *testing.T) {
	assert.Equal(t, "male", NormalizeGender("Male"))
	assert.Equal(t, "female", NormalizeGender(" female"))
	assert.Equal(t, BucketKeyUnknown, NormalizeGender(""))
	assert.Equal(t, BucketKeyUnknown, NormalizeGender("other"))
}

func TestStreakRecordIsActive(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	today := &StreakRecord{LastActionDate: now.Add(-2 * time.Hour)}
	assert.True(t, today.IsActive(now))

	yesterday := &StreakRecord{LastActionDate: now.Add(-24 * time.Hour)}
	assert.True(t, yesterday.IsActive(now))

	// 昨天没有动作，连击读出来已是断裂状态
	stale := &StreakRecord{LastActionDate: now.Add(-48 * time.Hour)}
	assert.False(t, stale.IsActive(now))
}
