package service

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/pkg/mongo"
	"WikiStars/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type AchievementService interface {
	// GrantPioneerIfEligible 人物的前 1000 个投票者获得开拓者成就，返回本次是否新发放
	GrantPioneerIfEligible(ctx context.Context, userID, figureID uint64, nickname, avatarURL string) (bool, error)
	// GrantRecruiterIfApplicable 被邀请用户完成首次投票时给邀请人发放招募者成就
	GrantRecruiterIfApplicable(ctx context.Context, votingUserID uint64) (bool, error)
	GetUserAchievements(ctx context.Context, userID uint64) ([]*dto.AchievementDTO, error)
	GetFigureLeaderboard(ctx context.Context, figureID uint64, achievementID string, limit, offset int64) (*dto.AchievementLeaderboardDTO, error)
}

type achievementServiceImpl struct {
	txn      mongo.TxnRunner
	achRepo  mongo.AchievementRepo
	refRepo  mongo.ReferralRepo
	userRepo repository.UserRepo
}

func NewAchievementService(
	txn mongo.TxnRunner,
	achRepo mongo.AchievementRepo,
	refRepo mongo.ReferralRepo,
	userRepo repository.UserRepo,
) AchievementService {
	return &achievementServiceImpl{
		txn:      txn,
		achRepo:  achRepo,
		refRepo:  refRepo,
		userRepo: userRepo,
	}
}

func (s *achievementServiceImpl) GrantPioneerIfEligible(ctx context.Context, userID, figureID uint64, nickname, avatarURL string) (bool, error) {
	// 事务外预检，把绝大多数不合格请求挡在开销较大的事务之前
	existing, err := s.achRepo.GetGrant(ctx, userID, figureID, mongo.AchievementPioneer)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	count, err := s.achRepo.CountFigureGrants(ctx, figureID, mongo.AchievementPioneer, mongo.PioneerGrantLimit)
	if err != nil {
		return false, err
	}
	if count >= mongo.PioneerGrantLimit {
		return false, nil
	}

	granted := false
	err = s.txn.Run(ctx, func(ctx context.Context) error {
		// 事务内复核名额与既有成就，预检到提交之间的窗口不会导致超发
		grant, err := s.achRepo.GetGrant(ctx, userID, figureID, mongo.AchievementPioneer)
		if err != nil {
			return err
		}
		if grant != nil {
			return nil
		}

		count, err := s.achRepo.CountFigureGrants(ctx, figureID, mongo.AchievementPioneer, mongo.PioneerGrantLimit)
		if err != nil {
			return err
		}
		if count >= mongo.PioneerGrantLimit {
			return nil
		}

		if err = s.achRepo.InsertGrantPair(ctx, &mongo.AchievementGrant{
			UserID:        userID,
			FigureID:      figureID,
			AchievementID: mongo.AchievementPioneer,
			UnlockedAt:    time.Now(),
			UserNickname:  nickname,
			UserAvatarURL: avatarURL,
		}); err != nil {
			return err
		}

		granted = true
		return nil
	})
	if err != nil {
		// 唯一索引兜底：并发重试下另一个事务先写入了同一成就
		if mongo.IsDuplicateGrant(err) {
			return false, nil
		}
		log.ErrorContext(ctx, "开拓者成就事务失败",
			"user_id", userID,
			"figure_id", figureID,
			"err", err)
		return false, err
	}

	return granted, nil
}

func (s *achievementServiceImpl) GrantRecruiterIfApplicable(ctx context.Context, votingUserID uint64) (bool, error) {
	voter, err := s.userRepo.GetUserById(ctx, votingUserID)
	if err != nil {
		return false, err
	}
	if voter == nil {
		return false, nil
	}

	referral, err := s.refRepo.FindByReferredUser(ctx, votingUserID)
	if err != nil {
		return false, err
	}
	if referral == nil || referral.HasVoted {
		return false, nil
	}
	if referral.ReferrerID == 0 || referral.SourceFigureID == 0 {
		return false, nil
	}

	// 邀请人的展示字段来自 MySQL，读取放在 Mongo 事务之外
	referrerDetail, err := s.userRepo.GetUserHomeInfoById(ctx, referral.ReferrerID)
	if err != nil {
		return false, err
	}
	if referrerDetail == nil {
		return false, nil
	}

	granted := false
	err = s.txn.Run(ctx, func(ctx context.Context) error {
		// has_voted 的条件翻转在事务内完成，翻转失败说明已被并发触发过
		flipped, err := s.refRepo.MarkVoted(ctx, votingUserID)
		if err != nil {
			return err
		}
		if !flipped {
			return nil
		}

		// 同一邀请人在同一人物上只可能拿到一次招募者成就
		// 后续邀请转化只消费邀请记录，不再发放
		existing, err := s.achRepo.GetGrant(ctx, referral.ReferrerID, referral.SourceFigureID, mongo.AchievementRecruiter)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		if err = s.achRepo.InsertGrantPair(ctx, &mongo.AchievementGrant{
			UserID:        referral.ReferrerID,
			FigureID:      referral.SourceFigureID,
			AchievementID: mongo.AchievementRecruiter,
			UnlockedAt:    time.Now(),
			UserNickname:  referrerDetail.Nickname,
			UserAvatarURL: referrerDetail.AvatarURL,
		}); err != nil {
			return err
		}

		granted = true
		return nil
	})
	if err != nil {
		if mongo.IsDuplicateGrant(err) {
			return false, nil
		}
		log.ErrorContext(ctx, "招募者成就事务失败",
			"voting_user_id", votingUserID,
			"referrer_id", referral.ReferrerID,
			"err", err)
		return false, err
	}

	return granted, nil
}

func (s *achievementServiceImpl) GetUserAchievements(ctx context.Context, userID uint64) ([]*dto.AchievementDTO, error) {
	grants, err := s.achRepo.ListUserGrants(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAchievementDTOs(grants), nil
}

func (s *achievementServiceImpl) GetFigureLeaderboard(ctx context.Context, figureID uint64, achievementID string, limit, offset int64) (*dto.AchievementLeaderboardDTO, error) {
	if achievementID != mongo.AchievementPioneer && achievementID != mongo.AchievementRecruiter {
		return nil, ErrParamInvalid
	}

	grants, err := s.achRepo.ListFigureGrants(ctx, figureID, achievementID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &dto.AchievementLeaderboardDTO{
		FigureID:      figureID,
		AchievementID: achievementID,
		Grants:        toAchievementDTOs(grants),
	}, nil
}

func toAchievementDTOs(grants []*mongo.AchievementGrant) []*dto.AchievementDTO {
	result := make([]*dto.AchievementDTO, 0, len(grants))
	for _, g := range grants {
		result = append(result, &dto.AchievementDTO{
			UserID:        g.UserID,
			FigureID:      g.FigureID,
			AchievementID: g.AchievementID,
			UnlockedAt:    g.UnlockedAt,
			UserNickname:  g.UserNickname,
			UserAvatarURL: g.UserAvatarURL,
		})
	}
	return result
}
