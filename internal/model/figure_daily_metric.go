package model

import (
	"time"
)

type FigureDailyMetric struct {
	ID            uint64    `gorm:"primaryKey"`
	FigureID      uint64    `gorm:"not null;index:idx_figure_date,unique" json:"figureId"`
	MetricDate    time.Time `gorm:"not null;index:idx_figure_date,unique;column:metric_date" json:"metricDate"`
	TotalVotes    int       `gorm:"not null;default:0" json:"totalVotes"`
	TotalComments int       `gorm:"not null;default:0" json:"totalComments"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (FigureDailyMetric) TableName() string {
	return "figure_daily_metrics"
}
