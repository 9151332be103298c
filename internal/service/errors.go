package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserBan                 = errors.New("用户已被封禁")
	ErrUserBanSelf             = errors.New("不能封禁自己")
	ErrUserBanAdmin            = errors.New("不能封禁管理员")
	ErrUserExist               = errors.New("用户已存在")
	ErrUserPhoneNotFound       = errors.New("手机号未注册")
	ErrUserPhoneExist          = errors.New("手机号已注册")
	ErrUserUsernameExist       = errors.New("用户名已存在")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrCodeIncorrect           = errors.New("验证码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrSmsRegTokenIncorrect    = errors.New("短信注册token错误")
	ErrSmsTooFrequent          = errors.New("验证码发送过于频繁")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	ErrUserHasRole             = errors.New("用户已拥有此角色")
	ErrFigureNotFound          = errors.New("人物不存在")
	ErrFigureHidden            = errors.New("人物已下架")
	ErrAttitudeInvalid         = errors.New("无效的态度取值")
	ErrCommentNotFound         = errors.New("评论不存在")
	ErrCommentTooLong          = errors.New("评论内容过长")
	ErrReferralSelf            = errors.New("不能推荐自己")
	ErrReferralExist           = errors.New("该用户已被推荐过")
	ErrCampaignNotFound        = errors.New("广告不存在")
	ErrCampaignNotActive       = errors.New("广告未投放")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserBan:                 Unauthorized,
	ErrUserBanSelf:             Unauthorized,
	ErrUserBanAdmin:            Unauthorized,
	ErrUserExist:               BadRequest,
	ErrUserPhoneNotFound:       NotFound,
	ErrUserPhoneExist:          BadRequest,
	ErrUserUsernameExist:       BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrCodeIncorrect:           Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrSmsRegTokenIncorrect:    Unauthorized,
	ErrSmsTooFrequent:          BadRequest,
	ErrFileNotSupported:        BadRequest,
	ErrUserHasRole:             BadRequest,
	ErrFigureNotFound:          NotFound,
	ErrFigureHidden:            NotFound,
	ErrAttitudeInvalid:         BadRequest,
	ErrCommentNotFound:         NotFound,
	ErrCommentTooLong:          BadRequest,
	ErrReferralSelf:            BadRequest,
	ErrReferralExist:           Conflict,
	ErrCampaignNotFound:        NotFound,
	ErrCampaignNotActive:       BadRequest,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}
