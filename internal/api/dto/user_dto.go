package dto

import "time"

type UserDTO struct {
	UserID    *uint64    `json:"user_id,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Nickname  *string    `json:"nickname,omitempty"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	Bio       *string    `json:"bio,omitempty" validate:"omitempty,max=200"`
	Gender    *uint8     `json:"gender,omitempty" validate:"omitempty,min=0,max=2"`
	Country   *string    `json:"country,omitempty"`
	Birthday  *string    `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type RegisterDTO struct {
	// 方式一 使用 用户名&密码
	Username *string `json:"username"`
	Password *string `json:"password"`

	// 方式二 使用 手机号&临时签发令牌
	Phone      *string `json:"phone"`
	PhoneToken *string `json:"phone_token"`

	Nickname  string  `json:"nickname" validate:"required,min=1,max=15"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Gender    uint8   `json:"gender,omitempty"`
	Country   *string `json:"country,omitempty"`
	Birthday  string  `json:"birthday,omitempty" validate:"required"`

	// 经邀请链接注册时携带
	ReferrerID     *uint64 `json:"referrer_id,omitempty"`
	SourceFigureID *uint64 `json:"source_figure_id,omitempty"`
}

type CredentialDTO struct {
	Username *string `json:"username"`
	Password *string `json:"password"`

	Phone *string `json:"phone"`
	Code  *string `json:"code"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=20"`
}

type SmsSendDTO struct {
	Phone string `json:"phone" validate:"required,len=11"`
}

type SmsCheckDTO struct {
	Phone string `json:"phone" validate:"required,len=11"`
	Code  string `json:"code" validate:"required,len=6"`
}
