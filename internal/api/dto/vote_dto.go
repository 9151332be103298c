package dto

import "time"

type VoteCastDTO struct {
	FigureID uint64  `json:"figure_id" validate:"required"`
	Attitude int8    `json:"attitude" validate:"required,min=1,max=3"`
	Emotion  *string `json:"emotion,omitempty" validate:"omitempty,max=32"`
}

// CelebrationDTO 客户端据此触发庆祝动画
type CelebrationDTO struct {
	StreakGained    bool     `json:"streak_gained"`
	StreakCount     int      `json:"streak_count"`
	NewAchievements []string `json:"new_achievements,omitempty"`
}

type VoteResultDTO struct {
	FigureID    uint64          `json:"figure_id"`
	Attitude    int8            `json:"attitude"`
	Emotion     *string         `json:"emotion,omitempty"`
	FirstVote   bool            `json:"first_vote"`
	Celebration *CelebrationDTO `json:"celebration,omitempty"`
}

type VoteDTO struct {
	FigureID  uint64    `json:"figure_id"`
	Attitude  int8      `json:"attitude"`
	Emotion   *string   `json:"emotion,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VoteSummaryDTO struct {
	FigureID uint64   `json:"figure_id"`
	Positive int64    `json:"positive"`
	Neutral  int64    `json:"neutral"`
	Negative int64    `json:"negative"`
	Total    int64    `json:"total"`
	MyVote   *VoteDTO `json:"my_vote,omitempty"`
}
