package service

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/model"
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/pkg/redis"
	"WikiStars/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const metricTrendCacheExpiration = 1 * time.Hour

type FigureMetricService interface {
	// SnapshotDailyMetrics 把 Redis 中的累计计数回刷到 MySQL 并留存当日快照，由定时任务调用
	SnapshotDailyMetrics(ctx context.Context) error
	GetFigureTrend(ctx context.Context, figureID uint64, days int) (*dto.FigureMetricTrendDTO, error)
}

type figureMetricServiceImpl struct {
	metricRepo  repository.FigureMetricRepo
	figureRepo  repository.FigureRepo
	voteRepo    repository.VoteRepo
	commentRepo repository.CommentRepo
}

func NewFigureMetricService(
	metricRepo repository.FigureMetricRepo,
	figureRepo repository.FigureRepo,
	voteRepo repository.VoteRepo,
	commentRepo repository.CommentRepo,
) FigureMetricService {
	return &figureMetricServiceImpl{
		metricRepo:  metricRepo,
		figureRepo:  figureRepo,
		voteRepo:    voteRepo,
		commentRepo: commentRepo,
	}
}

func (s *figureMetricServiceImpl) SnapshotDailyMetrics(ctx context.Context) error {
	ids, err := redis.GetSet(ctx, consts.FigureDirtyKey)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	_ = redis.DeleteKey(ctx, consts.FigureDirtyKey)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, idStr := range ids {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			continue
		}

		// 以数据库为准重算全量计数，Redis 里的增量只用来标脏
		votes, err := s.voteRepo.CountVotesByFigure(ctx, id)
		if err != nil {
			log.ErrorContext(ctx, "人物票数统计失败", "figure_id", id, "err", err)
			continue
		}
		comments, err := s.commentRepo.CountCommentsByFigure(ctx, id)
		if err != nil {
			log.ErrorContext(ctx, "人物评论数统计失败", "figure_id", id, "err", err)
			continue
		}

		if err = s.figureRepo.UpdateFigureCounts(ctx, id, votes, comments); err != nil {
			log.ErrorContext(ctx, "人物计数回刷失败", "figure_id", id, "err", err)
			continue
		}

		if err = s.metricRepo.SaveOrUpdateMetric(ctx, &model.FigureDailyMetric{
			FigureID:      id,
			MetricDate:    today,
			TotalVotes:    int(votes),
			TotalComments: int(comments),
		}); err != nil {
			log.ErrorContext(ctx, "人物日快照写入失败", "figure_id", id, "err", err)
			continue
		}

		_ = redis.DeleteKey(ctx, consts.FigureDetailKey+idStr)
		_ = redis.DeleteKey(ctx, consts.FigureMetrics7DaysKey+idStr)
	}
	return nil
}

func (s *figureMetricServiceImpl) GetFigureTrend(ctx context.Context, figureID uint64, days int) (*dto.FigureMetricTrendDTO, error) {
	var cacheKey string
	if days == 7 {
		cacheKey = consts.FigureMetrics7DaysKey + strconv.FormatUint(figureID, 10)
		if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
			trend := &dto.FigureMetricTrendDTO{}
			if err = json.Unmarshal([]byte(cached), trend); err == nil {
				return trend, nil
			}
		}
	}

	var metrics []*model.FigureDailyMetric
	var err error
	if days <= 7 {
		metrics, err = s.metricRepo.GetMetricsBy7Days(ctx, figureID)
	} else {
		metrics, err = s.metricRepo.GetMetricsBy30Days(ctx, figureID)
	}
	if err != nil {
		return nil, err
	}

	trend := &dto.FigureMetricTrendDTO{
		FigureID: figureID,
		Points:   make([]*dto.FigureMetricPointDTO, 0, len(metrics)),
	}
	for _, metric := range metrics {
		trend.Points = append(trend.Points, &dto.FigureMetricPointDTO{
			MetricDate:    metric.MetricDate.Format("2006-01-02"),
			TotalVotes:    metric.TotalVotes,
			TotalComments: metric.TotalComments,
		})
	}

	if cacheKey != "" {
		if data, err := json.Marshal(trend); err == nil {
			_ = redis.SetWithExpiration(ctx, cacheKey, data, metricTrendCacheExpiration)
		}
	}
	return trend, nil
}
