package handler

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/pkg/response"
	"WikiStars/internal/pkg/util"
	"WikiStars/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteSvc service.VoteService
}

func NewVoteHandler(voteSvc service.VoteService) *VoteHandler {
	return &VoteHandler{
		voteSvc: voteSvc,
	}
}

func (s *VoteHandler) CastVote(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var voteDTO dto.VoteCastDTO
	if err := c.ShouldBindJSON(&voteDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&voteDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.voteSvc.CastVote(c.Request.Context(), userID, &voteDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *VoteHandler) GetMyVote(c *gin.Context) {
	userID := c.GetUint64("user_id")
	figureID, err := strconv.ParseUint(c.Param("figure_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	vote, err := s.voteSvc.GetMyVote(c.Request.Context(), userID, figureID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vote)
}

func (s *VoteHandler) GetMyVotes(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	votes, err := s.voteSvc.GetMyVotes(c.Request.Context(), userID, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, votes)
}

func (s *VoteHandler) GetVoteSummary(c *gin.Context) {
	figureID, err := strconv.ParseUint(c.Param("figure_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	summary, err := s.voteSvc.GetVoteSummary(c.Request.Context(), figureID)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 已登录用户附带本人的投票，缓存里只存公共分布
	if userID := c.GetUint64("user_id"); userID != 0 {
		if myVote, err := s.voteSvc.GetMyVote(c.Request.Context(), userID, figureID); err == nil {
			summary.MyVote = myVote
		}
	}
	response.Success(c, summary)
}
