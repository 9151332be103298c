package service

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/pkg/mongo"
	"WikiStars/internal/pkg/redis"
	"WikiStars/internal/pkg/util"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const streakStatsCacheExpiration = 5 * time.Minute

type StreakService interface {
	// RecordActivity 记录一次合格动作，推进或重置连击
	RecordActivity(ctx context.Context, activity *dto.StreakActivityDTO) (*dto.StreakResultDTO, error)
	GetUserStreaks(ctx context.Context, userID uint64, limit int64) ([]*dto.StreakDTO, error)
	GetFigureLoyalFans(ctx context.Context, figureID uint64, limit int64) ([]*dto.StreakDTO, error)
	GetFigureStreakStats(ctx context.Context, figureID uint64) (*dto.StreakStatsDTO, error)
}

type streakServiceImpl struct {
	txn        mongo.TxnRunner
	streakRepo mongo.StreakRepo
	statRepo   mongo.StreakStatRepo
}

func NewStreakService(txn mongo.TxnRunner, streakRepo mongo.StreakRepo, statRepo mongo.StreakStatRepo) StreakService {
	return &streakServiceImpl{
		txn:        txn,
		streakRepo: streakRepo,
		statRepo:   statRepo,
	}
}

// RecordActivity 在单个事务内完成：读旧记录、判定连击走向、双副本写入、直方图迁移
// 任何一步失败整个事务回滚，调用方拿到 error 时不应假设任何状态已变更
func (s *streakServiceImpl) RecordActivity(ctx context.Context, activity *dto.StreakActivityDTO) (*dto.StreakResultDTO, error) {
	now := time.Now()
	result := &dto.StreakResultDTO{}

	err := s.txn.Run(ctx, func(ctx context.Context) error {
		old, err := s.streakRepo.GetUserStreak(ctx, activity.UserID, activity.FigureID)
		if err != nil {
			return err
		}

		oldStreak := 0
		if old != nil {
			oldStreak = old.CurrentStreak
		}

		// 连击判定统一按 UTC 日历日：同日不动，昨日加一，其余情况（含首次）重置为 1
		newStreak := 1
		gained := true
		if old != nil {
			switch util.DaysBetweenUTC(old.LastActionDate, now) {
			case 0:
				newStreak = oldStreak
				gained = false
			case 1:
				newStreak = oldStreak + 1
			}
		}

		rec := &mongo.StreakRecord{
			UserID:         activity.UserID,
			FigureID:       activity.FigureID,
			CurrentStreak:  newStreak,
			LastActionDate: now,
			FigureName:     activity.FigureName,
			FigureImageURL: activity.FigureImageURL,
			UserNickname:   activity.UserNickname,
			UserAvatarURL:  activity.UserAvatarURL,
			Country:        activity.Country,
			Gender:         activity.Gender,
		}

		// 同日重复动作也重写记录，刷新时间戳与冗余展示字段
		if err = s.streakRepo.UpsertStreakPair(ctx, rec); err != nil {
			return err
		}

		// 直方图迁移：用户从长度 old 挪到长度 new
		// 同日重复与 1→1 重置都不动桶，桶里保存的是最近一次写入的长度
		if gained && oldStreak != newStreak {
			if oldStreak > 0 {
				if err = s.statRepo.IncrBucket(ctx, activity.FigureID, oldStreak, activity.Country, activity.Gender, -1); err != nil {
					return err
				}
			}
			if err = s.statRepo.IncrBucket(ctx, activity.FigureID, newStreak, activity.Country, activity.Gender, 1); err != nil {
				return err
			}
		}

		result.StreakGained = gained
		result.NewStreakCount = newStreak
		return nil
	})
	if err != nil {
		log.ErrorContext(ctx, "连击事务失败",
			"user_id", activity.UserID,
			"figure_id", activity.FigureID,
			"err", err)
		return nil, err
	}

	if result.StreakGained {
		_ = redis.DeleteKey(ctx, consts.FigureStreakStatsKey+strconv.FormatUint(activity.FigureID, 10))
	}

	return result, nil
}

func (s *streakServiceImpl) GetUserStreaks(ctx context.Context, userID uint64, limit int64) ([]*dto.StreakDTO, error) {
	records, err := s.streakRepo.ListUserStreaks(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return toStreakDTOs(records), nil
}

func (s *streakServiceImpl) GetFigureLoyalFans(ctx context.Context, figureID uint64, limit int64) ([]*dto.StreakDTO, error) {
	records, err := s.streakRepo.ListFigureStreaks(ctx, figureID, limit)
	if err != nil {
		return nil, err
	}
	return toStreakDTOs(records), nil
}

// GetFigureStreakStats 人物连击直方图，带短期缓存
func (s *streakServiceImpl) GetFigureStreakStats(ctx context.Context, figureID uint64) (*dto.StreakStatsDTO, error) {
	cacheKey := consts.FigureStreakStatsKey + strconv.FormatUint(figureID, 10)
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		stats := &dto.StreakStatsDTO{}
		if err = json.Unmarshal([]byte(cached), stats); err == nil {
			return stats, nil
		}
	}

	buckets, err := s.statRepo.GetFigureStats(ctx, figureID)
	if err != nil {
		return nil, err
	}

	stats := &dto.StreakStatsDTO{
		FigureID: figureID,
		Buckets:  make(map[int]*dto.StreakStatBucketDTO, len(buckets)),
	}
	for _, b := range buckets {
		bucketDTO := &dto.StreakStatBucketDTO{
			Countries: make(map[string]*dto.GenderStatDTO, len(b.Countries)),
		}
		for cc, g := range b.Countries {
			bucketDTO.Total += g.Total
			bucketDTO.Countries[cc] = &dto.GenderStatDTO{
				Total:   g.Total,
				Male:    g.Male,
				Female:  g.Female,
				Unknown: g.Unknown,
			}
		}
		stats.Buckets[b.StreakLength] = bucketDTO
	}

	if data, err := json.Marshal(stats); err == nil {
		_ = redis.SetWithExpiration(ctx, cacheKey, data, streakStatsCacheExpiration)
	}

	return stats, nil
}

func toStreakDTOs(records []*mongo.StreakRecord) []*dto.StreakDTO {
	now := time.Now()
	result := make([]*dto.StreakDTO, 0, len(records))
	for _, rec := range records {
		result = append(result, &dto.StreakDTO{
			UserID:         rec.UserID,
			FigureID:       rec.FigureID,
			CurrentStreak:  rec.CurrentStreak,
			LastActionDate: rec.LastActionDate,
			IsActive:       rec.IsActive(now),
			FigureName:     rec.FigureName,
			FigureImageURL: rec.FigureImageURL,
			UserNickname:   rec.UserNickname,
			UserAvatarURL:  rec.UserAvatarURL,
		})
	}
	return result
}
