package service

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/pkg/mongo"
	"WikiStars/internal/pkg/redis"
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// 指向一个不存在的地址，缓存操作全部失败降级，不影响被测逻辑
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
}

type fakeTxnRunner struct {
	err error
}

func (f *fakeTxnRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeStreakRepo struct {
	getFn        func(ctx context.Context, userID, figureID uint64) (*mongo.StreakRecord, error)
	upsertErr    error
	upserts      []*mongo.StreakRecord
	listUserFn   func(ctx context.Context, userID uint64, limit int64) ([]*mongo.StreakRecord, error)
	listFigureFn func(ctx context.Context, figureID uint64, limit int64) ([]*mongo.StreakRecord, error)
}

func (f *fakeStreakRepo) GetUserStreak(ctx context.Context, userID, figureID uint64) (*mongo.StreakRecord, error) {
	if f.getFn != nil {
		return f.getFn(ctx, userID, figureID)
	}
	return nil, nil
}

func (f *fakeStreakRepo) UpsertStreakPair(ctx context.Context, rec *mongo.StreakRecord) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, rec)
	return nil
}

func (f *fakeStreakRepo) ListUserStreaks(ctx context.Context, userID uint64, limit int64) ([]*mongo.StreakRecord, error) {
	if f.listUserFn != nil {
		return f.listUserFn(ctx, userID, limit)
	}
	return nil, nil
}

func (f *fakeStreakRepo) ListFigureStreaks(ctx context.Context, figureID uint64, limit int64) ([]*mongo.StreakRecord, error) {
	if f.listFigureFn != nil {
		return f.listFigureFn(ctx, figureID, limit)
	}
	return nil, nil
}

type bucketOp struct {
	streakLength int
	country      string
	gender       string
	delta        int64
}

type fakeStatRepo struct {
	ops     []bucketOp
	incrErr error
	statsFn func(ctx context.Context, figureID uint64) ([]*mongo.StreakStatBucket, error)
}

func (f *fakeStatRepo) IncrBucket(ctx context.Context, figureID uint64, streakLength int, country, gender string, delta int64) error {
	if f.incrErr != nil {
		return f.incrErr
	}
	f.ops = append(f.ops, bucketOp{streakLength: streakLength, country: country, gender: gender, delta: delta})
	return nil
}

func (f *fakeStatRepo) GetFigureStats(ctx context.Context, figureID uint64) ([]*mongo.StreakStatBucket, error) {
	if f.statsFn != nil {
		return f.statsFn(ctx, figureID)
	}
	return nil, nil
}

func streakActivity() *dto.StreakActivityDTO {
	return &dto.StreakActivityDTO{
		UserID:   1,
		FigureID: 42,
		Country:  "JP",
		Gender:   "female",
	}
}

func existingStreak(streak int, lastAction time.Time) *mongo.StreakRecord {
	return &mongo.StreakRecord{
		UserID:         1,
		FigureID:       42,
		CurrentStreak:  streak,
		LastActionDate: lastAction,
		Country:        "JP",
		Gender:         "female",
	}
}

func TestRecordActivityFirstAction(t *testing.T) {
	streakRepo := &fakeStreakRepo{}
	statRepo := &fakeStatRepo{}
	svc := NewStreakService(&fakeTxnRunner{}, streakRepo, statRepo)

	res, err := svc.RecordActivity(context.Background(), streakActivity())
	require.NoError(t, err)
	assert.True(t, res.StreakGained)
	assert.Equal(t, 1, res.NewStreakCount)

	require.Len(t, streakRepo.upserts, 1)
	assert.Equal(t, 1, streakRepo.upserts[0].CurrentStreak)

	// 首次动作没有旧桶可减，只在长度 1 上加一
	require.Len(t, statRepo.ops, 1)
	assert.Equal(t, bucketOp{streakLength: 1, country: "JP", gender: "female", delta: 1}, statRepo.ops[0])
}

func TestRecordActivitySameDayIsNoop(t *testing.T) {
	now := time.Now()
	streakRepo := &fakeStreakRepo{
		getFn: func(ctx context.Context, userID, figureID uint64) (*mongo.StreakRecord, error) {
			return existingStreak(4, now), nil
		},
	}
	statRepo := &fakeStatRepo{}
	svc := NewStreakService(&fakeTxnRunner{}, streakRepo, statRepo)

	res, err := svc.RecordActivity(context.Background(), streakActivity())
	require.NoError(t, err)
	assert.False(t, res.StreakGained)
	assert.Equal(t, 4, res.NewStreakCount)

	// 同日重复动作仍会重写记录以刷新展示字段，但直方图不动
	require.Len(t, streakRepo.upserts, 1)
	assert.Equal(t, 4, streakRepo.upserts[0].CurrentStreak)
	assert.Empty(t, statRepo.ops)
}

func TestRecordActivityConsecutiveDay(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour)
	streakRepo := &fakeStreakRepo{
		getFn: func(ctx context.Context, userID, figureID uint64) (*mongo.StreakRecord, error) {
			return existingStreak(4, yesterday), nil
		},
	}
	statRepo := &fakeStatRepo{}
	svc := NewStreakService(&fakeTxnRunner{}, streakRepo, statRepo)

	res, err := svc.RecordActivity(context.Background(), streakActivity())
	require.NoError(t, err)
	assert.True(t, res.StreakGained)
	assert.Equal(t, 5, res.NewStreakCount)

	// 用户从长度 4 的桶挪到长度 5 的桶
	require.Len(t, statRepo.ops, 2)
	assert.Equal(t, bucketOp{streakLength: 4, country: "JP", gender: "female", delta: -1}, statRepo.ops[0])
	assert.Equal(t, bucketOp{streakLength: 5, country: "JP", gender: "female", delta: 1}, statRepo.ops[1])
}

func TestRecordActivityGapResets(t *testing.T) {
	threeDaysAgo := time.Now().Add(-72 * time.Hour)
	streakRepo := &fakeStreakRepo{
		getFn: func(ctx context.Context, userID, figureID uint64) (*mongo.StreakRecord, error) {
			return existingStreak(7, threeDaysAgo), nil
		},
	}
	statRepo := &fakeStatRepo{}
	svc := NewStreakService(&fakeTxnRunner{}, streakRepo, statRepo)

	res, err := svc.RecordActivity(context.Background(), streakActivity())
	require.NoError(t, err)
	assert.True(t, res.StreakGained)
	assert.Equal(t, 1, res.NewStreakCount)

	require.Len(t, statRepo.ops, 2)
	assert.Equal(t, bucketOp{streakLength: 7, country: "JP", gender: "female", delta: -1}, statRepo.ops[0])
	assert.Equal(t, bucketOp{streakLength: 1, country: "JP", gender: "female", delta: 1}, statRepo.ops[1])
}

func TestRecordActivityResetToSameLengthSkipsBuckets(t *testing.T) {
	threeDaysAgo := time.Now().Add(-72 * time.Hour)
	streakRepo := &fakeStreakRepo{
		getFn: func(ctx context.Context, userID, figureID uint64) (*mongo.StreakRecord, error) {
			return existingStreak(1, threeDaysAgo), nil
		},
	}
	statRepo := &fakeStatRepo{}
	svc := NewStreakService(&fakeTxnRunner{}, streakRepo, statRepo)

	res, err := svc.RecordActivity(context.Background(), streakActivity())
	require.NoError(t, err)
	assert.True(t, res.StreakGained)
	assert.Equal(t, 1, res.NewStreakCount)

	// 1 → 1 的重置长度不变，桶不迁移
	assert.Empty(t, statRepo.ops)
}

func TestRecordActivityUpsertErrorRollsBack(t *testing.T) {
	streakRepo := &fakeStreakRepo{upsertErr: errors.New("write conflict")}
	statRepo := &fakeStatRepo{}
	svc := NewStreakService(&fakeTxnRunner{}, streakRepo, statRepo)

	res, err := svc.RecordActivity(context.Background(), streakActivity())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Empty(t, statRepo.ops)
}

func TestGetUserStreaksMarksActive(t *testing.T) {
	now := time.Now()
	streakRepo := &fakeStreakRepo{
		listUserFn: func(ctx context.Context, userID uint64, limit int64) ([]*mongo.StreakRecord, error) {
			return []*mongo.StreakRecord{
				existingStreak(5, now),
				existingStreak(9, now.Add(-96*time.Hour)),
			}, nil
		},
	}
	svc := NewStreakService(&fakeTxnRunner{}, streakRepo, &fakeStatRepo{})

	streaks, err := svc.GetUserStreaks(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, streaks, 2)
	assert.True(t, streaks[0].IsActive)
	assert.False(t, streaks[1].IsActive)
}

func TestGetFigureStreakStatsAggregates(t *testing.T) {
	statRepo := &fakeStatRepo{
		statsFn: func(ctx context.Context, figureID uint64) ([]*mongo.StreakStatBucket, error) {
			return []*mongo.StreakStatBucket{
				{
					FigureID:     42,
					StreakLength: 3,
					Countries: map[string]mongo.GenderBucket{
						"JP": {Total: 5, Male: 2, Female: 3},
						"US": {Total: 1, Unknown: 1},
					},
				},
			}, nil
		},
	}
	svc := NewStreakService(&fakeTxnRunner{}, &fakeStreakRepo{}, statRepo)

	stats, err := svc.GetFigureStreakStats(context.Background(), 42)
	require.NoError(t, err)
	require.Contains(t, stats.Buckets, 3)
	assert.Equal(t, int64(6), stats.Buckets[3].Total)
	assert.Equal(t, int64(3), stats.Buckets[3].Countries["JP"].Female)
}
