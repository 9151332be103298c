package model

import (
	"time"
)

// Vote 用户对人物的态度投票，一人一票可改票
type Vote struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	FigureID  uint64    `gorm:"primaryKey;index:idx_vote_figure" json:"figureId"`
	Attitude  int8      `gorm:"type:tinyint;not null" json:"attitude"`
	Emotion   *string   `gorm:"type:varchar(32)" json:"emotion"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Vote) TableName() string {
	return "votes"
}
