package dto

import "time"

// StreakActivityDTO 一次合格动作携带的全部冗余字段
// 展示字段由调用方负责解析，连击账本自身不回表
type StreakActivityDTO struct {
	UserID   uint64
	FigureID uint64

	FigureName     string
	FigureImageURL string
	UserNickname   string
	UserAvatarURL  string

	Country string
	Gender  string
}

type StreakResultDTO struct {
	StreakGained   bool `json:"streak_gained"`
	NewStreakCount int  `json:"new_streak_count"`
}

type StreakDTO struct {
	UserID         uint64    `json:"user_id"`
	FigureID       uint64    `json:"figure_id"`
	CurrentStreak  int       `json:"current_streak"`
	LastActionDate time.Time `json:"last_action_date"`
	IsActive       bool      `json:"is_active"`

	FigureName     string `json:"figure_name"`
	FigureImageURL string `json:"figure_image_url"`
	UserNickname   string `json:"user_nickname"`
	UserAvatarURL  string `json:"user_avatar_url"`
}

// StreakStatsDTO 人物连击直方图，key 为连击长度
type StreakStatsDTO struct {
	FigureID uint64                       `json:"figure_id"`
	Buckets  map[int]*StreakStatBucketDTO `json:"buckets"`
}

type StreakStatBucketDTO struct {
	Total     int64                     `json:"total"`
	Countries map[string]*GenderStatDTO `json:"countries"`
}

type GenderStatDTO struct {
	Total   int64 `json:"total"`
	Male    int64 `json:"male"`
	Female  int64 `json:"female"`
	Unknown int64 `json:"unknown"`
}
