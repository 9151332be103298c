package service

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/model"
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/pkg/mongo"
	"WikiStars/internal/pkg/redis"
	"WikiStars/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const voteSummaryCacheExpiration = 5 * time.Minute

type VoteService interface {
	// CastVote 投票或改票，串联连击账本与成就发放，返回庆祝载荷
	CastVote(ctx context.Context, userID uint64, voteDTO *dto.VoteCastDTO) (*dto.VoteResultDTO, error)
	GetMyVote(ctx context.Context, userID, figureID uint64) (*dto.VoteDTO, error)
	GetMyVotes(ctx context.Context, userID uint64, page, size int) ([]*dto.VoteDTO, error)
	GetVoteSummary(ctx context.Context, figureID uint64) (*dto.VoteSummaryDTO, error)
}

type voteServiceImpl struct {
	voteRepo           repository.VoteRepo
	figureRepo         repository.FigureRepo
	userRepo           repository.UserRepo
	streakService      StreakService
	achievementService AchievementService
}

func NewVoteService(
	voteRepo repository.VoteRepo,
	figureRepo repository.FigureRepo,
	userRepo repository.UserRepo,
	streakService StreakService,
	achievementService AchievementService,
) VoteService {
	return &voteServiceImpl{
		voteRepo:           voteRepo,
		figureRepo:         figureRepo,
		userRepo:           userRepo,
		streakService:      streakService,
		achievementService: achievementService,
	}
}

// genderBucketKey 把档案里的性别枚举转成直方图桶键
func genderBucketKey(gender *uint8) string {
	if gender == nil {
		return "unknown"
	}
	switch *gender {
	case consts.GenderMale:
		return "male"
	case consts.GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

func (s *voteServiceImpl) CastVote(ctx context.Context, userID uint64, voteDTO *dto.VoteCastDTO) (*dto.VoteResultDTO, error) {
	if voteDTO.Attitude < consts.AttitudePositive || voteDTO.Attitude > consts.AttitudeNegative {
		return nil, ErrAttitudeInvalid
	}

	figure, err := s.figureRepo.GetFigureById(ctx, voteDTO.FigureID)
	if err != nil {
		return nil, err
	}
	if figure == nil {
		return nil, ErrFigureNotFound
	}
	if figure.Status != consts.FigureStatusNormal {
		return nil, ErrFigureHidden
	}

	detail, err := s.userRepo.GetUserHomeInfoById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrUserNotFound
	}

	created, err := s.voteRepo.UpsertVote(ctx, &model.Vote{
		UserID:   userID,
		FigureID: voteDTO.FigureID,
		Attitude: voteDTO.Attitude,
		Emotion:  voteDTO.Emotion,
	})
	if err != nil {
		return nil, err
	}

	_ = redis.DeleteKey(ctx, consts.FigureVoteSummaryKey+strconv.FormatUint(voteDTO.FigureID, 10))

	result := &dto.VoteResultDTO{
		FigureID:  voteDTO.FigureID,
		Attitude:  voteDTO.Attitude,
		Emotion:   voteDTO.Emotion,
		FirstVote: created,
	}

	// 票已落库，后续的连击与成就对调用方而言是尽力而为
	// 任何一步失败只会让庆祝动画不触发，不会回滚投票
	celebration := &dto.CelebrationDTO{}

	country := ""
	if detail.Country != nil {
		country = *detail.Country
	}

	streakRes, err := s.streakService.RecordActivity(ctx, &dto.StreakActivityDTO{
		UserID:         userID,
		FigureID:       figure.ID,
		FigureName:     figure.Name,
		FigureImageURL: figure.ImageURL,
		UserNickname:   detail.Nickname,
		UserAvatarURL:  detail.AvatarURL,
		Country:        country,
		Gender:         genderBucketKey(detail.Gender),
	})
	if err == nil {
		celebration.StreakGained = streakRes.StreakGained
		celebration.StreakCount = streakRes.NewStreakCount
	}

	if created {
		if granted, err := s.achievementService.GrantPioneerIfEligible(ctx, userID, figure.ID, detail.Nickname, detail.AvatarURL); err != nil {
			log.ErrorContext(ctx, "开拓者成就检查失败", "user_id", userID, "figure_id", figure.ID, "err", err)
		} else if granted {
			celebration.NewAchievements = append(celebration.NewAchievements, mongo.AchievementPioneer)
		}

		if granted, err := s.achievementService.GrantRecruiterIfApplicable(ctx, userID); err != nil {
			log.ErrorContext(ctx, "招募者成就检查失败", "user_id", userID, "err", err)
		} else if granted {
			celebration.NewAchievements = append(celebration.NewAchievements, mongo.AchievementRecruiter)
		}
	}

	result.Celebration = celebration
	return result, nil
}

func (s *voteServiceImpl) GetMyVote(ctx context.Context, userID, figureID uint64) (*dto.VoteDTO, error) {
	vote, err := s.voteRepo.GetVote(ctx, userID, figureID)
	if err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, nil
	}
	return toVoteDTO(vote), nil
}

func (s *voteServiceImpl) GetMyVotes(ctx context.Context, userID uint64, page, size int) ([]*dto.VoteDTO, error) {
	votes, err := s.voteRepo.ListVotesByUser(ctx, userID, page, size)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.VoteDTO, 0, len(votes))
	for _, vote := range votes {
		result = append(result, toVoteDTO(vote))
	}
	return result, nil
}

// GetVoteSummary 人物态度分布，带短期缓存
func (s *voteServiceImpl) GetVoteSummary(ctx context.Context, figureID uint64) (*dto.VoteSummaryDTO, error) {
	cacheKey := consts.FigureVoteSummaryKey + strconv.FormatUint(figureID, 10)
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		summary := &dto.VoteSummaryDTO{}
		if err = json.Unmarshal([]byte(cached), summary); err == nil {
			return summary, nil
		}
	}

	rows, err := s.voteRepo.SummarizeVotes(ctx, figureID)
	if err != nil {
		return nil, err
	}

	summary := &dto.VoteSummaryDTO{FigureID: figureID}
	for _, row := range rows {
		switch row.Attitude {
		case consts.AttitudePositive:
			summary.Positive = row.Count
		case consts.AttitudeNeutral:
			summary.Neutral = row.Count
		case consts.AttitudeNegative:
			summary.Negative = row.Count
		}
		summary.Total += row.Count
	}

	if data, err := json.Marshal(summary); err == nil {
		_ = redis.SetWithExpiration(ctx, cacheKey, data, voteSummaryCacheExpiration)
	}

	return summary, nil
}

func toVoteDTO(vote *model.Vote) *dto.VoteDTO {
	return &dto.VoteDTO{
		FigureID:  vote.FigureID,
		Attitude:  vote.Attitude,
		Emotion:   vote.Emotion,
		UpdatedAt: vote.UpdatedAt,
	}
}
