package service

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/pkg/mongo"
	"WikiStars/internal/repository"
	"context"
	"time"
)

type ReferralService interface {
	// ClaimReferral 新用户经邀请链接注册后认领邀请关系，一个用户只能被邀请一次
	ClaimReferral(ctx context.Context, referrerID, referredID, sourceFigureID uint64) error
	GetMyReferrals(ctx context.Context, referrerID uint64, limit, offset int64) (*dto.ReferralListDTO, error)
}

type referralServiceImpl struct {
	refRepo    mongo.ReferralRepo
	userRepo   repository.UserRepo
	figureRepo repository.FigureRepo
}

func NewReferralService(refRepo mongo.ReferralRepo, userRepo repository.UserRepo, figureRepo repository.FigureRepo) ReferralService {
	return &referralServiceImpl{
		refRepo:    refRepo,
		userRepo:   userRepo,
		figureRepo: figureRepo,
	}
}

func (s *referralServiceImpl) ClaimReferral(ctx context.Context, referrerID, referredID, sourceFigureID uint64) error {
	if referrerID == referredID {
		return ErrReferralSelf
	}

	referrer, err := s.userRepo.GetUserById(ctx, referrerID)
	if err != nil {
		return err
	}
	if referrer == nil {
		return ErrUserNotFound
	}

	figure, err := s.figureRepo.GetFigureById(ctx, sourceFigureID)
	if err != nil {
		return err
	}
	if figure == nil {
		return ErrFigureNotFound
	}

	err = s.refRepo.CreateReferral(ctx, &mongo.ReferralRecord{
		ReferrerID:     referrerID,
		ReferredID:     referredID,
		SourceFigureID: sourceFigureID,
		HasVoted:       false,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		if mongo.IsDuplicateReferral(err) {
			return ErrReferralExist
		}
		return err
	}
	return nil
}

func (s *referralServiceImpl) GetMyReferrals(ctx context.Context, referrerID uint64, limit, offset int64) (*dto.ReferralListDTO, error) {
	records, err := s.refRepo.ListByReferrer(ctx, referrerID, limit, offset)
	if err != nil {
		return nil, err
	}

	result := &dto.ReferralListDTO{
		Referrals: make([]*dto.ReferralDTO, 0, len(records)),
	}
	for _, rec := range records {
		if rec.HasVoted {
			result.Converted++
		}
		result.Referrals = append(result.Referrals, &dto.ReferralDTO{
			ReferredID:     rec.ReferredID,
			SourceFigureID: rec.SourceFigureID,
			HasVoted:       rec.HasVoted,
			CreatedAt:      rec.CreatedAt,
		})
	}
	return result, nil
}
