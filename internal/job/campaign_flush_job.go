package job

import (
	"WikiStars/internal/pkg/logger"
	"WikiStars/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

type CampaignFlushJob struct {
	campaignSvc service.CampaignService
}

func NewCampaignFlushJob(campaignSvc service.CampaignService) *CampaignFlushJob {
	return &CampaignFlushJob{
		campaignSvc: campaignSvc,
	}
}

func (s *CampaignFlushJob) Run() {
	traceID := "job-campaign-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.campaignSvc.FlushCounters(ctx); err != nil {
		log.ErrorContext(ctx, "flush campaign counters error", "err", err)
	}
}
