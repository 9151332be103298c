package model

import (
	"time"
)

// Figure 公众人物档案
type Figure struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"type:varchar(100);not null;index:idx_figure_name" json:"name"`
	Category  string  `gorm:"type:varchar(50);index:idx_figure_category" json:"category"`
	Country   *string `gorm:"type:varchar(8)" json:"country"`
	Gender    *uint8  `gorm:"type:tinyint;default:0" json:"gender"`
	Birthday  *string `gorm:"type:date" json:"birthday"`
	ImageURL  string  `gorm:"type:varchar(512);column:image_url" json:"imageUrl"`
	Bio       *string `gorm:"type:varchar(1024)" json:"bio"`
	Status    int8    `gorm:"type:tinyint;default:1" json:"status"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// 由每日任务从 Redis 计数回刷
	VotesCount    int `gorm:"not null;default:0" json:"votesCount"`
	CommentsCount int `gorm:"not null;default:0" json:"commentsCount"`
}

func (Figure) TableName() string {
	return "figures"
}
