package service

import (
	"WikiStars/internal/model"
	"WikiStars/internal/pkg/mongo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
)

type fakeAchievementRepo struct {
	getFn      func(ctx context.Context, userID, figureID uint64, achievementID string) (*mongo.AchievementGrant, error)
	countFn    func(ctx context.Context, figureID uint64, achievementID string, limit int64) (int64, error)
	insertErr  error
	inserts    []*mongo.AchievementGrant
	listUserFn func(ctx context.Context, userID uint64) ([]*mongo.AchievementGrant, error)
	listFigFn  func(ctx context.Context, figureID uint64, achievementID string, limit, offset int64) ([]*mongo.AchievementGrant, error)
}

func (f *fakeAchievementRepo) GetGrant(ctx context.Context, userID, figureID uint64, achievementID string) (*mongo.AchievementGrant, error) {
	if f.getFn != nil {
		return f.getFn(ctx, userID, figureID, achievementID)
	}
	return nil, nil
}

func (f *fakeAchievementRepo) CountFigureGrants(ctx context.Context, figureID uint64, achievementID string, limit int64) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx, figureID, achievementID, limit)
	}
	return 0, nil
}

func (f *fakeAchievementRepo) InsertGrantPair(ctx context.Context, grant *mongo.AchievementGrant) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserts = append(f.inserts, grant)
	return nil
}

func (f *fakeAchievementRepo) ListUserGrants(ctx context.Context, userID uint64) ([]*mongo.AchievementGrant, error) {
	if f.listUserFn != nil {
		return f.listUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeAchievementRepo) ListFigureGrants(ctx context.Context, figureID uint64, achievementID string, limit, offset int64) ([]*mongo.AchievementGrant, error) {
	if f.listFigFn != nil {
		return f.listFigFn(ctx, figureID, achievementID, limit, offset)
	}
	return nil, nil
}

type fakeReferralRepo struct {
	createErr error
	findFn    func(ctx context.Context, referredID uint64) (*mongo.ReferralRecord, error)
	markFn    func(ctx context.Context, referredID uint64) (bool, error)
	marked    []uint64
	listFn    func(ctx context.Context, referrerID uint64, limit, offset int64) ([]*mongo.ReferralRecord, error)
}

func (f *fakeReferralRepo) CreateReferral(ctx context.Context, rec *mongo.ReferralRecord) error {
	return f.createErr
}

func (f *fakeReferralRepo) FindByReferredUser(ctx context.Context, referredID uint64) (*mongo.ReferralRecord, error) {
	if f.findFn != nil {
		return f.findFn(ctx, referredID)
	}
	return nil, nil
}

func (f *fakeReferralRepo) MarkVoted(ctx context.Context, referredID uint64) (bool, error) {
	if f.markFn != nil {
		return f.markFn(ctx, referredID)
	}
	f.marked = append(f.marked, referredID)
	return true, nil
}

func (f *fakeReferralRepo) ListByReferrer(ctx context.Context, referrerID uint64, limit, offset int64) ([]*mongo.ReferralRecord, error) {
	if f.listFn != nil {
		return f.listFn(ctx, referrerID, limit, offset)
	}
	return nil, nil
}

type fakeUserRepo struct {
	getByIdFn  func(ctx context.Context, id uint64) (*model.User, error)
	homeInfoFn func(ctx context.Context, id uint64) (*model.UserDetail, error)
}

func (f *fakeUserRepo) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	if f.getByIdFn != nil {
		return f.getByIdFn(ctx, id)
	}
	return &model.User{ID: id}, nil
}

func (f *fakeUserRepo) GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetUserHomeInfoById(ctx context.Context, id uint64) (*model.UserDetail, error) {
	if f.homeInfoFn != nil {
		return f.homeInfoFn(ctx, id)
	}
	return &model.UserDetail{UserID: id, Nickname: "tester"}, nil
}

func (f *fakeUserRepo) GetUserSimpleInfoByIds(ctx context.Context, ids []uint64) ([]*model.UserDetail, error) {
	return nil, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User, detail *model.UserDetail, roles *[]*model.UserRole) error {
	return nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *model.User) error { return nil }

func (f *fakeUserRepo) UpdateUserIsBan(ctx context.Context, id uint64, isBan bool) (int64, error) {
	return 1, nil
}

func (f *fakeUserRepo) UpdateUserDetail(ctx context.Context, detail *model.UserDetail) error {
	return nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id uint64) error { return nil }

func TestGrantPioneerFirstVoter(t *testing.T) {
	achRepo := &fakeAchievementRepo{}
	svc := NewAchievementService(&fakeTxnRunner{}, achRepo, &fakeReferralRepo{}, &fakeUserRepo{})

	granted, err := svc.GrantPioneerIfEligible(context.Background(), 1, 42, "tester", "avatar.png")
	require.NoError(t, err)
	assert.True(t, granted)

	require.Len(t, achRepo.inserts, 1)
	assert.Equal(t, mongo.AchievementPioneer, achRepo.inserts[0].AchievementID)
	assert.Equal(t, uint64(1), achRepo.inserts[0].UserID)
	assert.Equal(t, uint64(42), achRepo.inserts[0].FigureID)
}

func TestGrantPioneerAlreadyGranted(t *testing.T) {
	achRepo := &fakeAchievementRepo{
		getFn: func(ctx context.Context, userID, figureID uint64, achievementID string) (*mongo.AchievementGrant, error) {
			return &mongo.AchievementGrant{UserID: userID, FigureID: figureID, AchievementID: achievementID}, nil
		},
	}
	svc := NewAchievementService(&fakeTxnRunner{}, achRepo, &fakeReferralRepo{}, &fakeUserRepo{})

	granted, err := svc.GrantPioneerIfEligible(context.Background(), 1, 42, "tester", "avatar.png")
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Empty(t, achRepo.inserts)
}

func TestGrantPioneerCapReached(t *testing.T) {
	achRepo := &fakeAchievementRepo{
		countFn: func(ctx context.Context, figureID uint64, achievementID string, limit int64) (int64, error) {
			return mongo.PioneerGrantLimit, nil
		},
	}
	svc := NewAchievementService(&fakeTxnRunner{}, achRepo, &fakeReferralRepo{}, &fakeUserRepo{})

	granted, err := svc.GrantPioneerIfEligible(context.Background(), 1, 42, "tester", "avatar.png")
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Empty(t, achRepo.inserts)
}

func TestGrantPioneerDuplicateKeySwallowed(t *testing.T) {
	// 并发竞争下唯一索引冲突让事务失败，调用方只应看到"未发放"
	dupErr := mongodrv.WriteException{WriteErrors: mongodrv.WriteErrors{{Code: 11000}}}
	achRepo := &fakeAchievementRepo{insertErr: dupErr}
	svc := NewAchievementService(&fakeTxnRunner{}, achRepo, &fakeReferralRepo{}, &fakeUserRepo{})

	granted, err := svc.GrantPioneerIfEligible(context.Background(), 1, 42, "tester", "avatar.png")
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestGrantRecruiterConvertsReferral(t *testing.T) {
	achRepo := &fakeAchievementRepo{}
	refRepo := &fakeReferralRepo{
		findFn: func(ctx context.Context, referredID uint64) (*mongo.ReferralRecord, error) {
			return &mongo.ReferralRecord{
				ReferrerID:     7,
				ReferredID:     referredID,
				SourceFigureID: 42,
				HasVoted:       false,
				CreatedAt:      time.Now(),
			}, nil
		},
	}
	svc := NewAchievementService(&fakeTxnRunner{}, achRepo, refRepo, &fakeUserRepo{})

	granted, err := svc.GrantRecruiterIfApplicable(context.Background(), 8)
	require.NoError(t, err)
	assert.True(t, granted)

	// 成就记在邀请人头上，关联来源人物
	require.Len(t, achRepo.inserts, 1)
	assert.Equal(t, mongo.AchievementRecruiter, achRepo.inserts[0].AchievementID)
	assert.Equal(t, uint64(7), achRepo.inserts[0].UserID)
	assert.Equal(t, uint64(42), achRepo.inserts[0].FigureID)
}

func TestGrantRecruiterNoReferral(t *testing.T) {
	achRepo := &fakeAchievementRepo{}
	svc := NewAchievementService(&fakeTxnRunner{}, achRepo, &fakeReferralRepo{}, &fakeUserRepo{})

	granted, err := svc.GrantRecruiterIfApplicable(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Empty(t, achRepo.inserts)
}

func TestGrantRecruiterAlreadyConverted(t *testing.T) {
	achRepo := &fakeAchievementRepo{}
	refRepo := &fakeReferralRepo{
		findFn: func(ctx context.Context, referredID uint64) (*mongo.ReferralRecord, error) {
			return &mongo.ReferralRecord{ReferrerID: 7, ReferredID: referredID, SourceFigureID: 42, HasVoted: true}, nil
		},
	}
	svc := NewAchievementService(&fakeTxnRunner{}, achRepo, refRepo, &fakeUserRepo{})

	granted, err := svc.GrantRecruiterIfApplicable(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Empty(t, achRepo.inserts)
}

func TestGrantRecruiterConcurrentFlipLoses(t *testing.T) {
	achRepo := &fakeAchievementRepo{}
	refRepo := &fakeReferralRepo{
		findFn: func(ctx context.Context, referredID uint64) (*mongo.ReferralRecord, error) {
			return &mongo.ReferralRecord{ReferrerID: 7, ReferredID: referredID, SourceFigureID: 42}, nil
		},
		markFn: func(ctx context.Context, referredID uint64) (bool, error) {
			return false, nil
		},
	}
	svc := NewAchievementService(&fakeTxnRunner{}, achRepo, refRepo, &fakeUserRepo{})

	granted, err := svc.GrantRecruiterIfApplicable(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Empty(t, achRepo.inserts)
}

func TestGrantRecruiterSecondConversionConsumesOnly(t *testing.T) {
	// 同一邀请人、同一来源人物只能拿到一次招募者成就
	// 第二个被邀请用户投票时只消费邀请记录
	achRepo := &fakeAchievementRepo{
		getFn: func(ctx context.Context, userID, figureID uint64, achievementID string) (*mongo.AchievementGrant, error) {
			if achievementID == mongo.AchievementRecruiter {
				return &mongo.AchievementGrant{UserID: userID, FigureID: figureID, AchievementID: achievementID}, nil
			}
			return nil, nil
		},
	}
	refRepo := &fakeReferralRepo{
		findFn: func(ctx context.Context, referredID uint64) (*mongo.ReferralRecord, error) {
			return &mongo.ReferralRecord{ReferrerID: 7, ReferredID: referredID, SourceFigureID: 42}, nil
		},
	}
	svc := NewAchievementService(&fakeTxnRunner{}, achRepo, refRepo, &fakeUserRepo{})

	granted, err := svc.GrantRecruiterIfApplicable(context.Background(), 9)
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Empty(t, achRepo.inserts)
	assert.Equal(t, []uint64{9}, refRepo.marked)
}

func TestGetFigureLeaderboardRejectsUnknownAchievement(t *testing.T) {
	svc := NewAchievementService(&fakeTxnRunner{}, &fakeAchievementRepo{}, &fakeReferralRepo{}, &fakeUserRepo{})

	_, err := svc.GetFigureLeaderboard(context.Background(), 42, "time_traveler", 50, 0)
	assert.ErrorIs(t, err, ErrParamInvalid)
}
