package repository

import (
	"WikiStars/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentById(ctx context.Context, id uint64) (*model.Comment, error)
	ListCommentsByFigure(ctx context.Context, figureId uint64, page int, size int) ([]*model.Comment, int64, error)
	DeleteComment(ctx context.Context, id uint64, userId uint64) (int64, error)
	CountCommentsByFigure(ctx context.Context, figureId uint64) (int64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *CommentRepoImpl) GetCommentById(ctx context.Context, id uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	result := s.db.WithContext(ctx).
		Where("is_delete = ?", false).
		First(comment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return comment, nil
}

func (s *CommentRepoImpl) ListCommentsByFigure(ctx context.Context, figureId uint64, page int, size int) ([]*model.Comment, int64, error) {
	comments := make([]*model.Comment, 0)

	query := s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("figure_id = ?", figureId).
		Where("is_delete = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&comments)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return comments, total, nil
}

// DeleteComment 软删除，只有作者本人能删
func (s *CommentRepoImpl) DeleteComment(ctx context.Context, id uint64, userId uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Where("user_id = ?", userId).
		Update("is_delete", true)
	return result.RowsAffected, result.Error
}

func (s *CommentRepoImpl) CountCommentsByFigure(ctx context.Context, figureId uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("figure_id = ?", figureId).
		Where("is_delete = ?", false).
		Count(&count)
	return count, result.Error
}
