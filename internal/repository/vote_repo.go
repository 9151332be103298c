package repository

import (
	"WikiStars/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteSummary 各态度的票数汇总
type VoteSummary struct {
	Attitude int8  `json:"attitude"`
	Count    int64 `json:"count"`
}

type VoteRepo interface {
	// UpsertVote 一人一票，重复投票视为改票，返回是否为首次投票
	UpsertVote(ctx context.Context, vote *model.Vote) (bool, error)
	GetVote(ctx context.Context, userId uint64, figureId uint64) (*model.Vote, error)
	ListVotesByUser(ctx context.Context, userId uint64, page int, size int) ([]*model.Vote, error)
	CountVotesByFigure(ctx context.Context, figureId uint64) (int64, error)
	SummarizeVotes(ctx context.Context, figureId uint64) ([]*VoteSummary, error)
}

type VoteRepoImpl struct {
	db *gorm.DB
}

func NewVoteRepo(db *gorm.DB) VoteRepo {
	return &VoteRepoImpl{db: db}
}

func (s *VoteRepoImpl) UpsertVote(ctx context.Context, vote *model.Vote) (bool, error) {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "figure_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"attitude", "emotion", "updated_at"}),
	}).Create(vote)
	if result.Error != nil {
		return false, result.Error
	}

	// MySQL 的 ON DUPLICATE KEY：插入影响 1 行，更新影响 2 行
	return result.RowsAffected == 1, nil
}

func (s *VoteRepoImpl) GetVote(ctx context.Context, userId uint64, figureId uint64) (*model.Vote, error) {
	vote := &model.Vote{}
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Where("figure_id = ?", figureId).
		First(vote)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return vote, nil
}

func (s *VoteRepoImpl) ListVotesByUser(ctx context.Context, userId uint64, page int, size int) ([]*model.Vote, error) {
	votes := make([]*model.Vote, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("updated_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&votes)
	if result.Error != nil {
		return nil, result.Error
	}
	return votes, nil
}

func (s *VoteRepoImpl) CountVotesByFigure(ctx context.Context, figureId uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Vote{}).
		Where("figure_id = ?", figureId).
		Count(&count)
	return count, result.Error
}

func (s *VoteRepoImpl) SummarizeVotes(ctx context.Context, figureId uint64) ([]*VoteSummary, error) {
	summaries := make([]*VoteSummary, 0)
	result := s.db.WithContext(ctx).
		Model(&model.Vote{}).
		Select("attitude, COUNT(*) AS count").
		Where("figure_id = ?", figureId).
		Group("attitude").
		Find(&summaries)
	if result.Error != nil {
		return nil, result.Error
	}
	return summaries, nil
}
