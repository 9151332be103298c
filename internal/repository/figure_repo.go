package repository

import (
	"WikiStars/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type FigureRepo interface {
	CreateFigure(ctx context.Context, figure *model.Figure) error
	GetFigureById(ctx context.Context, id uint64) (*model.Figure, error)
	GetFiguresByIds(ctx context.Context, ids []uint64) ([]*model.Figure, error)
	ListFigures(ctx context.Context, category string, country string, page int, size int) ([]*model.Figure, int64, error)
	SearchFiguresByName(ctx context.Context, keyword string, limit int) ([]*model.Figure, error)
	UpdateFigure(ctx context.Context, figure *model.Figure) error
	UpdateFigureStatus(ctx context.Context, id uint64, status int8) (int64, error)
	UpdateFigureCounts(ctx context.Context, id uint64, votesCount int64, commentsCount int64) error
}

type FigureRepoImpl struct {
	db *gorm.DB
}

func NewFigureRepo(db *gorm.DB) FigureRepo {
	return &FigureRepoImpl{db: db}
}

func (s *FigureRepoImpl) CreateFigure(ctx context.Context, figure *model.Figure) error {
	return s.db.WithContext(ctx).Create(figure).Error
}

func (s *FigureRepoImpl) GetFigureById(ctx context.Context, id uint64) (*model.Figure, error) {
	figure := &model.Figure{}
	result := s.db.WithContext(ctx).First(figure, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return figure, nil
}

func (s *FigureRepoImpl) GetFiguresByIds(ctx context.Context, ids []uint64) ([]*model.Figure, error) {
	figures := make([]*model.Figure, 0)
	result := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&figures)
	if result.Error != nil {
		return nil, result.Error
	}
	return figures, nil
}

// ListFigures 按分类/国家分页查询，只返回正常状态的档案
func (s *FigureRepoImpl) ListFigures(ctx context.Context, category string, country string, page int, size int) ([]*model.Figure, int64, error) {
	figures := make([]*model.Figure, 0)

	query := s.db.WithContext(ctx).Model(&model.Figure{}).Where("status = ?", 1)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if country != "" {
		query = query.Where("country = ?", country)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.
		Order("votes_count DESC, id ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&figures)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return figures, total, nil
}

func (s *FigureRepoImpl) SearchFiguresByName(ctx context.Context, keyword string, limit int) ([]*model.Figure, error) {
	figures := make([]*model.Figure, 0)
	result := s.db.WithContext(ctx).
		Where("status = ?", 1).
		Where("name LIKE ?", "%"+keyword+"%").
		Limit(limit).
		Find(&figures)
	if result.Error != nil {
		return nil, result.Error
	}
	return figures, nil
}

func (s *FigureRepoImpl) UpdateFigure(ctx context.Context, figure *model.Figure) error {
	result := s.db.WithContext(ctx).Model(&model.Figure{}).Where("id = ?", figure.ID).Updates(figure)
	return result.Error
}

func (s *FigureRepoImpl) UpdateFigureStatus(ctx context.Context, id uint64, status int8) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Figure{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// UpdateFigureCounts 由定时任务把 Redis 中累计的计数回刷到 MySQL
func (s *FigureRepoImpl) UpdateFigureCounts(ctx context.Context, id uint64, votesCount int64, commentsCount int64) error {
	return s.db.WithContext(ctx).Model(&model.Figure{}).Where("id = ?", id).Updates(map[string]interface{}{
		"votes_count":    votesCount,
		"comments_count": commentsCount,
	}).Error
}
