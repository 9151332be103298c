package api

import "WikiStars/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler        *handler.UserHandler
	FigureHandler      *handler.FigureHandler
	VoteHandler        *handler.VoteHandler
	CommentHandler     *handler.CommentHandler
	StreakHandler      *handler.StreakHandler
	AchievementHandler *handler.AchievementHandler
	ReferralHandler    *handler.ReferralHandler
	CampaignHandler    *handler.CampaignHandler
	MediaHandler       *handler.MediaHandler
}
