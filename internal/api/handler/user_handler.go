package handler

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/pkg/minio"
	"WikiStars/internal/pkg/response"
	"WikiStars/internal/pkg/util"
	"WikiStars/internal/service"
	log "log/slog"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userSvc      service.UserService
	userRolesSvc service.UserRolesService
	smsSvc       service.SmsService
}

func NewUserHandler(userSvc service.UserService, userRolesSvc service.UserRolesService, smsSvc service.SmsService) *UserHandler {
	return &UserHandler{
		userSvc:      userSvc,
		userRolesSvc: userRolesSvc,
		smsSvc:       smsSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	err := c.ShouldBind(&registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !util.ValidateRegDTO(&registerDTO) {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	if err = util.ValidateDTO(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.userSvc.Register(c.Request.Context(), &registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) SendSmsCode(c *gin.Context) {
	var req dto.SmsSendDTO
	err := c.ShouldBind(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}
	err = s.smsSvc.SendSms(c.Request.Context(), req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) CheckSmsCode(c *gin.Context) {
	var req dto.SmsCheckDTO
	err := c.ShouldBind(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}
	token, err := s.smsSvc.CheckCode(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{
		"phone_token": token,
	})
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	err := c.ShouldBind(&loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !util.ValidateLoginDTO(&loginDTO) {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	isByPassword := loginDTO.Username != nil
	if !isByPassword {
		// 验证码登录需要先校验短信验证码
		if loginDTO.Code == nil {
			response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
			return
		}
		if _, err = s.smsSvc.CheckCode(c.Request.Context(), *loginDTO.Phone, *loginDTO.Code); err != nil {
			response.Error(c, err)
			return
		}
	}
	token, err := s.userSvc.Login(c.Request.Context(), &loginDTO, isByPassword)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{
		"token": token,
	})
}

func (s *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	err := s.userSvc.Logout(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetMyInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")
	userDTO, err := s.userSvc.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, userDTO)
}

func (s *UserHandler) GetUserHomeInfo(c *gin.Context) {
	userIDStr := c.Param("user_id")
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userDTO, err := s.userSvc.GetUserHomeInfoById(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, userDTO)
}

func (s *UserHandler) UpdateMyInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var userDTO dto.UserDTO
	err := c.ShouldBind(&userDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&userDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.userSvc.UpdateUserInfo(c.Request.Context(), userID, &userDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) ChangePassword(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var changePasswordDTO dto.ChangePasswordDTO
	err := c.ShouldBind(&changePasswordDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&changePasswordDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.userSvc.UpdatePasswordFromOld(c.Request.Context(), userID, &changePasswordDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) BanUser(c *gin.Context) {
	operatorID := c.GetUint64("user_id")
	userIDStr := c.Param("user_id")
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	err = s.userSvc.BanUser(c.Request.Context(), operatorID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) UnBanUser(c *gin.Context) {
	operatorID := c.GetUint64("user_id")
	userIDStr := c.Param("user_id")
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	err = s.userSvc.UnBanUser(c.Request.Context(), operatorID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetUint64("user_id")
	file, err := c.FormFile("file")
	if err != nil || file == nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() {
		_ = reader.Close()
	}()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	// 头像只保留压缩后的缩略图
	thumb, size, err := util.MakeThumbnail(reader, contentType)
	if err != nil {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	objectName := "avatars/" + uuid.NewString() + ".jpg"
	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, thumb, size, "image/jpeg")
	if err != nil {
		log.ErrorContext(c, "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	err = s.userSvc.UpdateAvatar(c.Request.Context(), userID, fileKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetAllRoles(c *gin.Context) {
	roles, err := s.userRolesSvc.GetRoles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, roles)
}

func (s *UserHandler) AddUserRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	roleID, err := strconv.ParseUint(c.Param("role_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.userRolesSvc.AddRoleToUser(c.Request.Context(), userID, roleID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) DeleteUserRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	roleID, err := strconv.ParseUint(c.Param("role_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.userRolesSvc.DeleteRoleFromUser(c.Request.Context(), userID, roleID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) CancelUser(c *gin.Context) {
	userID := c.GetUint64("user_id")
	err := s.userSvc.CancelUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
