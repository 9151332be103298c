package service

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/model"
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/pkg/mongo"
	"WikiStars/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVoteRepo struct {
	upsertFn    func(ctx context.Context, vote *model.Vote) (bool, error)
	getFn       func(ctx context.Context, userId uint64, figureId uint64) (*model.Vote, error)
	summarizeFn func(ctx context.Context, figureId uint64) ([]*repository.VoteSummary, error)
}

func (f *fakeVoteRepo) UpsertVote(ctx context.Context, vote *model.Vote) (bool, error) {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, vote)
	}
	return true, nil
}

func (f *fakeVoteRepo) GetVote(ctx context.Context, userId uint64, figureId uint64) (*model.Vote, error) {
	if f.getFn != nil {
		return f.getFn(ctx, userId, figureId)
	}
	return nil, nil
}

func (f *fakeVoteRepo) ListVotesByUser(ctx context.Context, userId uint64, page int, size int) ([]*model.Vote, error) {
	return nil, nil
}

func (f *fakeVoteRepo) CountVotesByFigure(ctx context.Context, figureId uint64) (int64, error) {
	return 0, nil
}

func (f *fakeVoteRepo) SummarizeVotes(ctx context.Context, figureId uint64) ([]*repository.VoteSummary, error) {
	if f.summarizeFn != nil {
		return f.summarizeFn(ctx, figureId)
	}
	return nil, nil
}

type fakeFigureRepo struct {
	getFn func(ctx context.Context, id uint64) (*model.Figure, error)
}

func (f *fakeFigureRepo) CreateFigure(ctx context.Context, figure *model.Figure) error { return nil }

func (f *fakeFigureRepo) GetFigureById(ctx context.Context, id uint64) (*model.Figure, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &model.Figure{ID: id, Name: "有名人", Status: consts.FigureStatusNormal}, nil
}

func (f *fakeFigureRepo) GetFiguresByIds(ctx context.Context, ids []uint64) ([]*model.Figure, error) {
	return nil, nil
}

func (f *fakeFigureRepo) ListFigures(ctx context.Context, category string, country string, page int, size int) ([]*model.Figure, int64, error) {
	return nil, 0, nil
}

func (f *fakeFigureRepo) SearchFiguresByName(ctx context.Context, keyword string, limit int) ([]*model.Figure, error) {
	return nil, nil
}

func (f *fakeFigureRepo) UpdateFigure(ctx context.Context, figure *model.Figure) error { return nil }

func (f *fakeFigureRepo) UpdateFigureStatus(ctx context.Context, id uint64, status int8) (int64, error) {
	return 1, nil
}

func (f *fakeFigureRepo) UpdateFigureCounts(ctx context.Context, id uint64, votesCount int64, commentsCount int64) error {
	return nil
}

type fakeStreakService struct {
	recordFn   func(ctx context.Context, activity *dto.StreakActivityDTO) (*dto.StreakResultDTO, error)
	activities []*dto.StreakActivityDTO
}

func (f *fakeStreakService) RecordActivity(ctx context.Context, activity *dto.StreakActivityDTO) (*dto.StreakResultDTO, error) {
	f.activities = append(f.activities, activity)
	if f.recordFn != nil {
		return f.recordFn(ctx, activity)
	}
	return &dto.StreakResultDTO{StreakGained: true, NewStreakCount: 1}, nil
}

func (f *fakeStreakService) GetUserStreaks(ctx context.Context, userID uint64, limit int64) ([]*dto.StreakDTO, error) {
	return nil, nil
}

func (f *fakeStreakService) GetFigureLoyalFans(ctx context.Context, figureID uint64, limit int64) ([]*dto.StreakDTO, error) {
	return nil, nil
}

func (f *fakeStreakService) GetFigureStreakStats(ctx context.Context, figureID uint64) (*dto.StreakStatsDTO, error) {
	return nil, nil
}

type fakeAchievementService struct {
	pioneerFn   func(ctx context.Context, userID, figureID uint64, nickname, avatarURL string) (bool, error)
	recruiterFn func(ctx context.Context, votingUserID uint64) (bool, error)
	pioneers    int
	recruiters  int
}

func (f *fakeAchievementService) GrantPioneerIfEligible(ctx context.Context, userID, figureID uint64, nickname, avatarURL string) (bool, error) {
	f.pioneers++
	if f.pioneerFn != nil {
		return f.pioneerFn(ctx, userID, figureID, nickname, avatarURL)
	}
	return false, nil
}

func (f *fakeAchievementService) GrantRecruiterIfApplicable(ctx context.Context, votingUserID uint64) (bool, error) {
	f.recruiters++
	if f.recruiterFn != nil {
		return f.recruiterFn(ctx, votingUserID)
	}
	return false, nil
}

func (f *fakeAchievementService) GetUserAchievements(ctx context.Context, userID uint64) ([]*dto.AchievementDTO, error) {
	return nil, nil
}

func (f *fakeAchievementService) GetFigureLeaderboard(ctx context.Context, figureID uint64, achievementID string, limit, offset int64) (*dto.AchievementLeaderboardDTO, error) {
	return nil, nil
}

func newVoteServiceForTest(voteRepo *fakeVoteRepo, figureRepo *fakeFigureRepo, streakSvc *fakeStreakService, achSvc *fakeAchievementService) VoteService {
	country := "JP"
	gender := consts.GenderFemale
	userRepo := &fakeUserRepo{
		homeInfoFn: func(ctx context.Context, id uint64) (*model.UserDetail, error) {
			return &model.UserDetail{
				UserID:    id,
				Nickname:  "tester",
				AvatarURL: "avatar.png",
				Country:   &country,
				Gender:    &gender,
			}, nil
		},
	}
	return NewVoteService(voteRepo, figureRepo, userRepo, streakSvc, achSvc)
}

func TestCastVoteFirstVoteTriggersAchievements(t *testing.T) {
	streakSvc := &fakeStreakService{
		recordFn: func(ctx context.Context, activity *dto.StreakActivityDTO) (*dto.StreakResultDTO, error) {
			return &dto.StreakResultDTO{StreakGained: true, NewStreakCount: 3}, nil
		},
	}
	achSvc := &fakeAchievementService{
		pioneerFn: func(ctx context.Context, userID, figureID uint64, nickname, avatarURL string) (bool, error) {
			return true, nil
		},
		recruiterFn: func(ctx context.Context, votingUserID uint64) (bool, error) {
			return true, nil
		},
	}
	svc := newVoteServiceForTest(&fakeVoteRepo{}, &fakeFigureRepo{}, streakSvc, achSvc)

	res, err := svc.CastVote(context.Background(), 1, &dto.VoteCastDTO{FigureID: 42, Attitude: consts.AttitudePositive})
	require.NoError(t, err)
	assert.True(t, res.FirstVote)
	require.NotNil(t, res.Celebration)
	assert.True(t, res.Celebration.StreakGained)
	assert.Equal(t, 3, res.Celebration.StreakCount)
	assert.Equal(t, []string{mongo.AchievementPioneer, mongo.AchievementRecruiter}, res.Celebration.NewAchievements)

	// 连击账本拿到的是已解析好的冗余字段
	require.Len(t, streakSvc.activities, 1)
	assert.Equal(t, "JP", streakSvc.activities[0].Country)
	assert.Equal(t, "female", streakSvc.activities[0].Gender)
}

func TestCastVoteChangedVoteSkipsAchievements(t *testing.T) {
	voteRepo := &fakeVoteRepo{
		upsertFn: func(ctx context.Context, vote *model.Vote) (bool, error) {
			return false, nil
		},
	}
	streakSvc := &fakeStreakService{}
	achSvc := &fakeAchievementService{}
	svc := newVoteServiceForTest(voteRepo, &fakeFigureRepo{}, streakSvc, achSvc)

	res, err := svc.CastVote(context.Background(), 1, &dto.VoteCastDTO{FigureID: 42, Attitude: consts.AttitudeNegative})
	require.NoError(t, err)
	assert.False(t, res.FirstVote)

	// 改票仍推进连击，但不再触发成就检查
	assert.Len(t, streakSvc.activities, 1)
	assert.Zero(t, achSvc.pioneers)
	assert.Zero(t, achSvc.recruiters)
}

func TestCastVoteStreakFailureDoesNotFailVote(t *testing.T) {
	streakSvc := &fakeStreakService{
		recordFn: func(ctx context.Context, activity *dto.StreakActivityDTO) (*dto.StreakResultDTO, error) {
			return nil, errors.New("txn aborted")
		},
	}
	svc := newVoteServiceForTest(&fakeVoteRepo{}, &fakeFigureRepo{}, streakSvc, &fakeAchievementService{})

	res, err := svc.CastVote(context.Background(), 1, &dto.VoteCastDTO{FigureID: 42, Attitude: consts.AttitudeNeutral})
	require.NoError(t, err)
	assert.True(t, res.FirstVote)
	assert.False(t, res.Celebration.StreakGained)
	assert.Zero(t, res.Celebration.StreakCount)
}

func TestCastVoteInvalidAttitude(t *testing.T) {
	svc := newVoteServiceForTest(&fakeVoteRepo{}, &fakeFigureRepo{}, &fakeStreakService{}, &fakeAchievementService{})

	_, err := svc.CastVote(context.Background(), 1, &dto.VoteCastDTO{FigureID: 42, Attitude: 9})
	assert.ErrorIs(t, err, ErrAttitudeInvalid)
}

func TestCastVoteHiddenFigure(t *testing.T) {
	figureRepo := &fakeFigureRepo{
		getFn: func(ctx context.Context, id uint64) (*model.Figure, error) {
			return &model.Figure{ID: id, Status: consts.FigureStatusHidden}, nil
		},
	}
	svc := newVoteServiceForTest(&fakeVoteRepo{}, figureRepo, &fakeStreakService{}, &fakeAchievementService{})

	_, err := svc.CastVote(context.Background(), 1, &dto.VoteCastDTO{FigureID: 42, Attitude: consts.AttitudePositive})
	assert.ErrorIs(t, err, ErrFigureHidden)
}

func TestGetVoteSummaryAggregates(t *testing.T) {
	voteRepo := &fakeVoteRepo{
		summarizeFn: func(ctx context.Context, figureId uint64) ([]*repository.VoteSummary, error) {
			return []*repository.VoteSummary{
				{Attitude: consts.AttitudePositive, Count: 10},
				{Attitude: consts.AttitudeNeutral, Count: 4},
				{Attitude: consts.AttitudeNegative, Count: 2},
			}, nil
		},
	}
	svc := newVoteServiceForTest(voteRepo, &fakeFigureRepo{}, &fakeStreakService{}, &fakeAchievementService{})

	summary, err := svc.GetVoteSummary(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(10), summary.Positive)
	assert.Equal(t, int64(4), summary.Neutral)
	assert.Equal(t, int64(2), summary.Negative)
	assert.Equal(t, int64(16), summary.Total)
}
