package job

import (
	"WikiStars/internal/pkg/logger"
	"WikiStars/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

type FigureMetricJob struct {
	figureMetricSvc service.FigureMetricService
}

func NewFigureMetricJob(figureMetricSvc service.FigureMetricService) *FigureMetricJob {
	return &FigureMetricJob{
		figureMetricSvc: figureMetricSvc,
	}
}

func (s *FigureMetricJob) Run() {
	traceID := "job-figure-metric-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.figureMetricSvc.SnapshotDailyMetrics(ctx); err != nil {
		log.ErrorContext(ctx, "snapshot daily metrics error", "err", err)
		return
	}

	log.InfoContext(ctx, "FigureMetricJob finished")
}
