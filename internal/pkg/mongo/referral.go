package mongo

import (
	"time"
)

const ColReferrals = "referrals"

// ReferralRecord 邀请记录
// 新用户经他人邀请链接到达时创建；referred_id 全局唯一，一个用户只能被邀请一次
// has_voted 只会从 false 翻转为 true 一次，是招募者成就的幂等闸门
type ReferralRecord struct {
	ReferrerID     uint64    `bson:"referrer_id" json:"referrerId"`
	ReferredID     uint64    `bson:"referred_id" json:"referredId"`
	SourceFigureID uint64    `bson:"source_figure_id" json:"sourceFigureId"`
	HasVoted       bool      `bson:"has_voted" json:"hasVoted"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
