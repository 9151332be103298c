package handler

import (
	"WikiStars/internal/pkg/response"
	"WikiStars/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AchievementHandler struct {
	achievementSvc service.AchievementService
}

func NewAchievementHandler(achievementSvc service.AchievementService) *AchievementHandler {
	return &AchievementHandler{
		achievementSvc: achievementSvc,
	}
}

func (s *AchievementHandler) GetMyAchievements(c *gin.Context) {
	userID := c.GetUint64("user_id")
	achievements, err := s.achievementSvc.GetUserAchievements(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, achievements)
}

func (s *AchievementHandler) GetUserAchievements(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	achievements, err := s.achievementSvc.GetUserAchievements(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, achievements)
}

func (s *AchievementHandler) GetFigureLeaderboard(c *gin.Context) {
	figureID, err := strconv.ParseUint(c.Param("figure_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	achievementID := c.DefaultQuery("achievement_id", "pioneer")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	board, err := s.achievementSvc.GetFigureLeaderboard(c.Request.Context(), figureID, achievementID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, board)
}
