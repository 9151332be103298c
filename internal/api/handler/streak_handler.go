package handler

import (
	"WikiStars/internal/pkg/response"
	"WikiStars/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StreakHandler struct {
	streakSvc service.StreakService
}

func NewStreakHandler(streakSvc service.StreakService) *StreakHandler {
	return &StreakHandler{
		streakSvc: streakSvc,
	}
}

func (s *StreakHandler) GetMyStreaks(c *gin.Context) {
	userID := c.GetUint64("user_id")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	streaks, err := s.streakSvc.GetUserStreaks(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, streaks)
}

func (s *StreakHandler) GetFigureLoyalFans(c *gin.Context) {
	figureID, err := strconv.ParseUint(c.Param("figure_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	fans, err := s.streakSvc.GetFigureLoyalFans(c.Request.Context(), figureID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, fans)
}

func (s *StreakHandler) GetFigureStreakStats(c *gin.Context) {
	figureID, err := strconv.ParseUint(c.Param("figure_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	stats, err := s.streakSvc.GetFigureStreakStats(c.Request.Context(), figureID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
