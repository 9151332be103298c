package mongo

import (
	"time"
)

const (
	ColUserStreaks   = "user_streaks"
	ColFigureStreaks = "figure_streaks"
	ColStreakStats   = "streak_stats"
)

// StreakRecord 用户在某个人物上的连击记录
// 同一份数据写两处：user_streaks（用户侧视图）与 figure_streaks（人物忠实粉丝视图），
// 两份副本必须在同一事务内写入，字段完全一致
type StreakRecord struct {
	UserID         uint64    `bson:"user_id" json:"userId"`
	FigureID       uint64    `bson:"figure_id" json:"figureId"`
	CurrentStreak  int       `bson:"current_streak" json:"currentStreak"`
	LastActionDate time.Time `bson:"last_action_date" json:"lastActionDate"`

	// 冗余展示字段，避免读取时回表
	FigureName     string `bson:"figure_name" json:"figureName"`
	FigureImageURL string `bson:"figure_image_url" json:"figureImageUrl"`
	UserNickname   string `bson:"user_nickname" json:"userNickname"`
	UserAvatarURL  string `bson:"user_avatar_url" json:"userAvatarUrl"`

	Country string `bson:"country" json:"country"`
	Gender  string `bson:"gender" json:"gender"`
}

// IsActive 判断连击是否仍在延续（今天或昨天有过动作）
// 活跃性在读取时计算，不落库
func (s *StreakRecord) IsActive(now time.Time) bool {
	last := s.LastActionDate.UTC()
	today := now.UTC().Truncate(24 * time.Hour)
	day := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	diff := int(today.Sub(day).Hours() / 24)
	return diff == 0 || diff == 1
}

// GenderBucket 单个国家维度下的计数
type GenderBucket struct {
	Total   int64 `bson:"total" json:"total"`
	Male    int64 `bson:"male" json:"male"`
	Female  int64 `bson:"female" json:"female"`
	Unknown int64 `bson:"unknown" json:"unknown"`
}

// StreakStatBucket 某人物处于某连击长度的人数直方图，按国家与性别分桶
type StreakStatBucket struct {
	FigureID     uint64                  `bson:"figure_id" json:"figureId"`
	StreakLength int                     `bson:"streak_length" json:"streakLength"`
	Countries    map[string]GenderBucket `bson:"countries" json:"countries"`
}
