package repository

import (
	"WikiStars/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FigureMetricRepo interface {
	SaveOrUpdateMetric(ctx context.Context, metric *model.FigureDailyMetric) error
	GetMetricsBy7Days(ctx context.Context, figureID uint64) ([]*model.FigureDailyMetric, error)
	GetMetricsBy30Days(ctx context.Context, figureID uint64) ([]*model.FigureDailyMetric, error)
}

type figureMetricRepoImpl struct {
	db *gorm.DB
}

func NewFigureMetricRepository(db *gorm.DB) FigureMetricRepo {
	return &figureMetricRepoImpl{db: db}
}

// SaveOrUpdateMetric 采用 Upsert 逻辑。如果 figure_id + metric_date 已存在，则更新各项数值
func (r *figureMetricRepoImpl) SaveOrUpdateMetric(ctx context.Context, metric *model.FigureDailyMetric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "figure_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_votes",
			"total_comments",
		}),
	}).Create(metric).Error
}

// GetMetricsBy7Days 获取人物最近 7 天的趋势数据
func (r *figureMetricRepoImpl) GetMetricsBy7Days(ctx context.Context, figureID uint64) ([]*model.FigureDailyMetric, error) {
	metrics := make([]*model.FigureDailyMetric, 0)
	result := r.db.WithContext(ctx).
		Where("figure_id = ?", figureID).
		Where("metric_date >= ?", time.Now().AddDate(0, 0, -7)).
		Order("metric_date ASC").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}

// GetMetricsBy30Days 获取人物最近 30 天的趋势数据
func (r *figureMetricRepoImpl) GetMetricsBy30Days(ctx context.Context, figureID uint64) ([]*model.FigureDailyMetric, error) {
	metrics := make([]*model.FigureDailyMetric, 0)
	result := r.db.WithContext(ctx).
		Where("figure_id = ?", figureID).
		Where("metric_date >= ?", time.Now().AddDate(0, 0, -30)).
		Order("metric_date ASC").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}
