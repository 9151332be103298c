package service

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/model"
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/pkg/redis"
	"WikiStars/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const campaignCacheExpiration = 1 * time.Minute

type CampaignService interface {
	CreateCampaign(ctx context.Context, createDTO *dto.CampaignCreateDTO) (*dto.CampaignDTO, error)
	GetActiveCampaigns(ctx context.Context) ([]*dto.CampaignDTO, error)
	UpdateCampaignStatus(ctx context.Context, id uint64, status int8) error
	// TrackImpression / TrackClick 只写 Redis 计数，由定时任务批量回刷
	TrackImpression(ctx context.Context, id uint64) error
	TrackClick(ctx context.Context, id uint64) error
	// FlushCounters 把 Redis 中的增量计数回刷到 MySQL，由定时任务调用
	FlushCounters(ctx context.Context) error
}

type campaignServiceImpl struct {
	campaignRepo repository.CampaignRepo
}

func NewCampaignService(campaignRepo repository.CampaignRepo) CampaignService {
	return &campaignServiceImpl{campaignRepo: campaignRepo}
}

func (s *campaignServiceImpl) CreateCampaign(ctx context.Context, createDTO *dto.CampaignCreateDTO) (*dto.CampaignDTO, error) {
	campaign := &model.AdCampaign{}
	if err := copier.Copy(campaign, createDTO); err != nil {
		return nil, err
	}
	campaign.Status = consts.CampaignStatusDraft

	if err := s.campaignRepo.CreateCampaign(ctx, campaign); err != nil {
		return nil, err
	}
	return toCampaignDTO(campaign), nil
}

func (s *campaignServiceImpl) GetActiveCampaigns(ctx context.Context) ([]*dto.CampaignDTO, error) {
	if cached, err := redis.GetValue(ctx, consts.CampaignActiveListKey); err == nil && cached != "" {
		var campaigns []*dto.CampaignDTO
		if err = json.Unmarshal([]byte(cached), &campaigns); err == nil {
			return campaigns, nil
		}
	}

	campaigns, err := s.campaignRepo.ListActiveCampaigns(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CampaignDTO, 0, len(campaigns))
	for _, campaign := range campaigns {
		result = append(result, toCampaignDTO(campaign))
	}

	if data, err := json.Marshal(result); err == nil {
		_ = redis.SetWithExpiration(ctx, consts.CampaignActiveListKey, data, campaignCacheExpiration)
	}
	return result, nil
}

func (s *campaignServiceImpl) UpdateCampaignStatus(ctx context.Context, id uint64, status int8) error {
	if status < consts.CampaignStatusDraft || status > consts.CampaignStatusPaused {
		return ErrParamInvalid
	}

	affected, err := s.campaignRepo.UpdateCampaignStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCampaignNotFound
	}

	_ = redis.DeleteKey(ctx, consts.CampaignActiveListKey)
	return nil
}

func (s *campaignServiceImpl) TrackImpression(ctx context.Context, id uint64) error {
	return s.track(ctx, consts.CampaignImpressionKey, id)
}

func (s *campaignServiceImpl) TrackClick(ctx context.Context, id uint64) error {
	return s.track(ctx, consts.CampaignClickKey, id)
}

func (s *campaignServiceImpl) track(ctx context.Context, keyPrefix string, id uint64) error {
	idStr := strconv.FormatUint(id, 10)
	if err := redis.IncrBy(ctx, keyPrefix+idStr, 1); err != nil {
		return err
	}
	return redis.SAdd(ctx, consts.CampaignDirtyKey, idStr)
}

func (s *campaignServiceImpl) FlushCounters(ctx context.Context) error {
	ids, err := redis.GetSet(ctx, consts.CampaignDirtyKey)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	_ = redis.DeleteKey(ctx, consts.CampaignDirtyKey)

	for _, idStr := range ids {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			continue
		}

		impressions := s.takeCounter(ctx, consts.CampaignImpressionKey+idStr)
		clicks := s.takeCounter(ctx, consts.CampaignClickKey+idStr)
		if impressions == 0 && clicks == 0 {
			continue
		}

		if err = s.campaignRepo.AddCampaignCounters(ctx, id, impressions, clicks); err != nil {
			log.ErrorContext(ctx, "广告计数回刷失败", "campaign_id", id, "err", err)
		}
	}
	return nil
}

// takeCounter 读出计数并清零，返回 0 表示无增量
func (s *campaignServiceImpl) takeCounter(ctx context.Context, key string) int64 {
	value, err := redis.GetInt64(ctx, key)
	if err != nil {
		return 0
	}
	_ = redis.DeleteKey(ctx, key)
	return value
}

func toCampaignDTO(campaign *model.AdCampaign) *dto.CampaignDTO {
	return &dto.CampaignDTO{
		ID:          campaign.ID,
		Title:       campaign.Title,
		ImageURL:    campaign.ImageURL,
		TargetURL:   campaign.TargetURL,
		FigureID:    campaign.FigureID,
		Status:      campaign.Status,
		StartAt:     campaign.StartAt,
		EndAt:       campaign.EndAt,
		Impressions: campaign.Impressions,
		Clicks:      campaign.Clicks,
	}
}
