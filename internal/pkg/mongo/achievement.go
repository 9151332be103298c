package mongo

import (
	"time"
)

const (
	ColUserAchievements   = "user_achievements"
	ColFigureAchievements = "figure_achievements"
)

// 成就类型
const (
	AchievementPioneer   = "pioneer_voter"
	AchievementRecruiter = "recruiter"
)

// PioneerGrantLimit 每个人物的开拓者成就全局上限
const PioneerGrantLimit = 1000

// AchievementGrant 一次性成就记录，创建后不再修改
// 私有副本按 (user, figure, achievement) 唯一，公开副本按 (figure, achievement, user) 唯一
type AchievementGrant struct {
	UserID        uint64    `bson:"user_id" json:"userId"`
	FigureID      uint64    `bson:"figure_id" json:"figureId"`
	AchievementID string    `bson:"achievement_id" json:"achievementId"`
	UnlockedAt    time.Time `bson:"unlocked_at" json:"unlockedAt"`
	UserNickname  string    `bson:"user_nickname" json:"userNickname"`
	UserAvatarURL string    `bson:"user_avatar_url" json:"userAvatarUrl"`
}
