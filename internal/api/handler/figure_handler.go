package handler

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/pkg/response"
	"WikiStars/internal/pkg/util"
	"WikiStars/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FigureHandler struct {
	figureSvc       service.FigureService
	figureMetricSvc service.FigureMetricService
}

func NewFigureHandler(figureSvc service.FigureService, figureMetricSvc service.FigureMetricService) *FigureHandler {
	return &FigureHandler{
		figureSvc:       figureSvc,
		figureMetricSvc: figureMetricSvc,
	}
}

func (s *FigureHandler) CreateFigure(c *gin.Context) {
	var createDTO dto.FigureCreateDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	figure, err := s.figureSvc.CreateFigure(c.Request.Context(), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, figure)
}

func (s *FigureHandler) GetFigureDetail(c *gin.Context) {
	figureID, err := strconv.ParseUint(c.Param("figure_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	figure, err := s.figureSvc.GetFigureDetail(c.Request.Context(), figureID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, figure)
}

func (s *FigureHandler) ListFigures(c *gin.Context) {
	var query dto.FigureQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}
	figures, err := s.figureSvc.ListFigures(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, figures)
}

func (s *FigureHandler) SearchFigures(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	figures, err := s.figureSvc.SearchFigures(c.Request.Context(), keyword)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, figures)
}

func (s *FigureHandler) UpdateFigure(c *gin.Context) {
	figureID, err := strconv.ParseUint(c.Param("figure_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var updateDTO dto.FigureUpdateDTO
	if err = c.ShouldBindJSON(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = s.figureSvc.UpdateFigure(c.Request.Context(), figureID, &updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FigureHandler) UpdateFigureStatus(c *gin.Context) {
	figureID, err := strconv.ParseUint(c.Param("figure_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	statusInt, err := strconv.Atoi(c.Query("status"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.figureSvc.UpdateFigureStatus(c.Request.Context(), figureID, int8(statusInt)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FigureHandler) GetFigureTrend(c *gin.Context) {
	figureID, err := strconv.ParseUint(c.Param("figure_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	trend, err := s.figureMetricSvc.GetFigureTrend(c.Request.Context(), figureID, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, trend)
}
