package repository

import (
	"WikiStars/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type CampaignRepo interface {
	CreateCampaign(ctx context.Context, campaign *model.AdCampaign) error
	GetCampaignById(ctx context.Context, id uint64) (*model.AdCampaign, error)
	ListActiveCampaigns(ctx context.Context, now time.Time) ([]*model.AdCampaign, error)
	UpdateCampaignStatus(ctx context.Context, id uint64, status int8) (int64, error)
	AddCampaignCounters(ctx context.Context, id uint64, impressions int64, clicks int64) error
}

type CampaignRepoImpl struct {
	db *gorm.DB
}

func NewCampaignRepo(db *gorm.DB) CampaignRepo {
	return &CampaignRepoImpl{db: db}
}

func (s *CampaignRepoImpl) CreateCampaign(ctx context.Context, campaign *model.AdCampaign) error {
	return s.db.WithContext(ctx).Create(campaign).Error
}

func (s *CampaignRepoImpl) GetCampaignById(ctx context.Context, id uint64) (*model.AdCampaign, error) {
	campaign := &model.AdCampaign{}
	result := s.db.WithContext(ctx).First(campaign, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return campaign, nil
}

func (s *CampaignRepoImpl) ListActiveCampaigns(ctx context.Context, now time.Time) ([]*model.AdCampaign, error) {
	campaigns := make([]*model.AdCampaign, 0)
	result := s.db.WithContext(ctx).
		Where("status = ?", 1).
		Where("start_at <= ?", now).
		Where("end_at > ?", now).
		Find(&campaigns)
	if result.Error != nil {
		return nil, result.Error
	}
	return campaigns, nil
}

func (s *CampaignRepoImpl) UpdateCampaignStatus(ctx context.Context, id uint64, status int8) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.AdCampaign{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// AddCampaignCounters 定时任务把 Redis 中累计的增量加到 MySQL
func (s *CampaignRepoImpl) AddCampaignCounters(ctx context.Context, id uint64, impressions int64, clicks int64) error {
	return s.db.WithContext(ctx).
		Model(&model.AdCampaign{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"impressions": gorm.Expr("impressions + ?", impressions),
			"clicks":      gorm.Expr("clicks + ?", clicks),
		}).Error
}
