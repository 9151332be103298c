package dto

import "time"

type ReferralClaimDTO struct {
	ReferrerID     uint64 `json:"referrer_id" binding:"required"`
	SourceFigureID uint64 `json:"source_figure_id" binding:"required"`
}

type ReferralDTO struct {
	ReferredID     uint64    `json:"referred_id"`
	SourceFigureID uint64    `json:"source_figure_id"`
	HasVoted       bool      `json:"has_voted"`
	CreatedAt      time.Time `json:"created_at"`
}

type ReferralListDTO struct {
	Referrals []*ReferralDTO `json:"referrals"`
	Converted int            `json:"converted"`
}
