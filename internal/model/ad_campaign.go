package model

import (
	"time"
)

// AdCampaign 广告活动（演示用）
// 展示与点击计数先落 Redis，由定时任务批量回刷
type AdCampaign struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	ImageURL    string    `gorm:"type:varchar(512);column:image_url" json:"imageUrl"`
	TargetURL   string    `gorm:"type:varchar(512);column:target_url" json:"targetUrl"`
	FigureID    *uint64   `gorm:"index:idx_campaign_figure" json:"figureId"`
	Status      int8      `gorm:"type:tinyint;default:0" json:"status"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	Impressions int64     `gorm:"not null;default:0" json:"impressions"`
	Clicks      int64     `gorm:"not null;default:0" json:"clicks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (AdCampaign) TableName() string {
	return "ad_campaigns"
}
