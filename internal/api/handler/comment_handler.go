package handler

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/pkg/response"
	"WikiStars/internal/pkg/util"
	"WikiStars/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var commentDTO dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&commentDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&commentDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.commentSvc.CreateComment(c.Request.Context(), userID, &commentDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *CommentHandler) GetFigureComments(c *gin.Context) {
	figureID, err := strconv.ParseUint(c.Param("figure_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	comments, err := s.commentSvc.GetFigureComments(c.Request.Context(), figureID, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.commentSvc.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
