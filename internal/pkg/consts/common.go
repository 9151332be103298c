package consts

const (
	MimePrefixImage = "image"
)

const (
	FigureStatusNormal int8 = 1
	FigureStatusHidden int8 = 2
)

const (
	AttitudePositive int8 = 1
	AttitudeNeutral  int8 = 2
	AttitudeNegative int8 = 3
)

const (
	CampaignStatusDraft  int8 = 0
	CampaignStatusActive int8 = 1
	CampaignStatusPaused int8 = 2
)

const (
	DefaultAvatarURL = "default_avatar.png"
)

// 角色 ID 与 roles 表种子数据对应
const (
	RoleUserID  uint64 = 1
	RoleAdminID uint64 = 2
)

const (
	RoleAdminName = "admin"
)

// GenderUnknown / GenderMale / GenderFemale 对应 user_detail.gender 的取值
const (
	GenderUnknown uint8 = 0
	GenderMale    uint8 = 1
	GenderFemale  uint8 = 2
)
