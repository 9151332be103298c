package model

import (
	"time"
)

// Comment 人物页评论
type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	FigureID  uint64    `gorm:"not null;index:idx_comment_figure" json:"figureId"`
	UserID    uint64    `gorm:"not null;index:idx_comment_user" json:"userId"`
	Content   string    `gorm:"type:varchar(1024);not null" json:"content"`
	IsDelete  bool      `gorm:"type:tinyint(1);default:0" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Comment) TableName() string {
	return "comments"
}
