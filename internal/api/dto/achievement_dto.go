package dto

import "time"

type AchievementDTO struct {
	UserID        uint64    `json:"user_id"`
	FigureID      uint64    `json:"figure_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
	UserNickname  string    `json:"user_nickname"`
	UserAvatarURL string    `json:"user_avatar_url"`
}

type AchievementLeaderboardDTO struct {
	FigureID      uint64            `json:"figure_id"`
	AchievementID string            `json:"achievement_id"`
	Grants        []*AchievementDTO `json:"grants"`
}
