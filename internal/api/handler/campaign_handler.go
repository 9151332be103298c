package handler

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/pkg/response"
	"WikiStars/internal/pkg/util"
	"WikiStars/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignSvc service.CampaignService
}

func NewCampaignHandler(campaignSvc service.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignSvc: campaignSvc,
	}
}

func (s *CampaignHandler) CreateCampaign(c *gin.Context) {
	var createDTO dto.CampaignCreateDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	campaign, err := s.campaignSvc.CreateCampaign(c.Request.Context(), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, campaign)
}

func (s *CampaignHandler) GetActiveCampaigns(c *gin.Context) {
	campaigns, err := s.campaignSvc.GetActiveCampaigns(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, campaigns)
}

func (s *CampaignHandler) UpdateCampaignStatus(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("campaign_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	statusInt, err := strconv.Atoi(c.Query("status"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.campaignSvc.UpdateCampaignStatus(c.Request.Context(), campaignID, int8(statusInt)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CampaignHandler) TrackImpression(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("campaign_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.campaignSvc.TrackImpression(c.Request.Context(), campaignID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CampaignHandler) TrackClick(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("campaign_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.campaignSvc.TrackClick(c.Request.Context(), campaignID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
