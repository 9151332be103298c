package cron

import (
	"WikiStars/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine           *cron.Cron
	figureMetricJob  *job.FigureMetricJob
	campaignFlushJob *job.CampaignFlushJob
}

func NewCronManager(figureMetricJob *job.FigureMetricJob, campaignFlushJob *job.CampaignFlushJob) *Manager {
	return &Manager{
		engine:           cron.New(cron.WithSeconds()),
		figureMetricJob:  figureMetricJob,
		campaignFlushJob: campaignFlushJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@daily", s.figureMetricJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("0 */5 * * * *", s.campaignFlushJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
