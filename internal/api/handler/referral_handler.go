package handler

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/pkg/response"
	"WikiStars/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	referralSvc service.ReferralService
}

func NewReferralHandler(referralSvc service.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		referralSvc: referralSvc,
	}
}

// ClaimReferral 经邀请链接到达的用户认领邀请关系，一个用户只能被邀请一次
func (s *ReferralHandler) ClaimReferral(c *gin.Context) {
	claimDTO := &dto.ReferralClaimDTO{}
	if err := c.ShouldBindJSON(claimDTO); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	if err := s.referralSvc.ClaimReferral(c.Request.Context(), claimDTO.ReferrerID, userID, claimDTO.SourceFigureID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ReferralHandler) GetMyReferrals(c *gin.Context) {
	userID := c.GetUint64("user_id")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	referrals, err := s.referralSvc.GetMyReferrals(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, referrals)
}
