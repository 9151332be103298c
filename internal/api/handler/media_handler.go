package handler

import (
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/pkg/minio"
	"WikiStars/internal/pkg/response"
	"WikiStars/internal/pkg/util"
	"WikiStars/internal/service"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Upload 人物头像、广告素材等图片的统一上传入口
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	ext := path.Ext(file.Filename)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType)
	if err != nil {
		log.ErrorContext(c, "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	res := map[string]interface{}{
		"url":      fileKey,
		"public":   minio.GetPublicURL(fileKey),
		"mime":     contentType,
		"size":     file.Size,
		"original": file.Filename,
	}

	log.InfoContext(c, "media upload success", "fileKey", fileKey, "type", contentType)
	response.Success(c, res)
}
