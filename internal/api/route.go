package api

import (
	"WikiStars/internal/api/middleware"
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/sms/send", group.UserHandler.SendSmsCode)
			userGroup.POST("/sms/check", group.UserHandler.CheckSmsCode)
			userGroup.GET("/:user_id/home", group.UserHandler.GetUserHomeInfo)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetMyInfo)
				authGroup.PUT("/info", group.UserHandler.UpdateMyInfo)
				authGroup.PUT("/password", group.UserHandler.ChangePassword)
				authGroup.POST("/avatar", group.UserHandler.UploadAvatar)
				authGroup.POST("/cancel", group.UserHandler.CancelUser)
			}

			// 需要登录 & 拥有 admin 角色
			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdminName))
			{
				adminGroup.POST("/:user_id/ban", group.UserHandler.BanUser)
				adminGroup.POST("/:user_id/unban", group.UserHandler.UnBanUser)
				adminGroup.GET("/roles", group.UserHandler.GetAllRoles)
				adminGroup.POST("/:user_id/role/:role_id", group.UserHandler.AddUserRole)
				adminGroup.DELETE("/:user_id/role/:role_id", group.UserHandler.DeleteUserRole)
			}
		}

		figureGroup := apiGroup.Group("/figures")
		{
			figureGroup.GET("", group.FigureHandler.ListFigures)
			figureGroup.GET("/search", group.FigureHandler.SearchFigures)
			figureGroup.GET("/:figure_id", group.FigureHandler.GetFigureDetail)
			figureGroup.GET("/:figure_id/trend", group.FigureHandler.GetFigureTrend)
			figureGroup.GET("/:figure_id/votes/summary", middleware.AuthOptionalMiddleware(), group.VoteHandler.GetVoteSummary)
			figureGroup.GET("/:figure_id/comments", group.CommentHandler.GetFigureComments)
			figureGroup.GET("/:figure_id/streaks/fans", group.StreakHandler.GetFigureLoyalFans)
			figureGroup.GET("/:figure_id/streaks/stats", group.StreakHandler.GetFigureStreakStats)
			figureGroup.GET("/:figure_id/achievements", group.AchievementHandler.GetFigureLeaderboard)

			adminGroup := figureGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdminName))
			{
				adminGroup.POST("", group.FigureHandler.CreateFigure)
				adminGroup.PUT("/:figure_id", group.FigureHandler.UpdateFigure)
				adminGroup.PUT("/:figure_id/status", group.FigureHandler.UpdateFigureStatus)
			}
		}

		voteGroup := apiGroup.Group("/votes")
		voteGroup.Use(middleware.AuthMiddleware())
		{
			voteGroup.POST("", group.VoteHandler.CastVote)
			voteGroup.GET("/mine", group.VoteHandler.GetMyVotes)
			voteGroup.GET("/mine/:figure_id", group.VoteHandler.GetMyVote)
		}

		commentGroup := apiGroup.Group("/comments")
		commentGroup.Use(middleware.AuthMiddleware())
		{
			commentGroup.POST("", group.CommentHandler.CreateComment)
			commentGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
		}

		streakGroup := apiGroup.Group("/streaks")
		streakGroup.Use(middleware.AuthMiddleware())
		{
			streakGroup.GET("/mine", group.StreakHandler.GetMyStreaks)
		}

		achievementGroup := apiGroup.Group("/achievements")
		{
			achievementGroup.GET("/user/:user_id", group.AchievementHandler.GetUserAchievements)

			authGroup := achievementGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/mine", group.AchievementHandler.GetMyAchievements)
			}
		}

		referralGroup := apiGroup.Group("/referrals")
		referralGroup.Use(middleware.AuthMiddleware())
		{
			referralGroup.POST("/claim", group.ReferralHandler.ClaimReferral)
			referralGroup.GET("/mine", group.ReferralHandler.GetMyReferrals)
		}

		campaignGroup := apiGroup.Group("/campaigns")
		{
			campaignGroup.GET("/active", group.CampaignHandler.GetActiveCampaigns)
			campaignGroup.POST("/:campaign_id/impression", group.CampaignHandler.TrackImpression)
			campaignGroup.POST("/:campaign_id/click", group.CampaignHandler.TrackClick)

			adminGroup := campaignGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdminName))
			{
				adminGroup.POST("", group.CampaignHandler.CreateCampaign)
				adminGroup.PUT("/:campaign_id/status", group.CampaignHandler.UpdateCampaignStatus)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
