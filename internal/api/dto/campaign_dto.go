package dto

import "time"

type CampaignCreateDTO struct {
	Title     string    `json:"title" validate:"required,max=100"`
	ImageURL  string    `json:"image_url" validate:"required"`
	TargetURL string    `json:"target_url" validate:"required,url"`
	FigureID  *uint64   `json:"figure_id,omitempty"`
	StartAt   time.Time `json:"start_at" validate:"required"`
	EndAt     time.Time `json:"end_at" validate:"required,gtfield=StartAt"`
}

type CampaignDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"image_url"`
	TargetURL   string    `json:"target_url"`
	FigureID    *uint64   `json:"figure_id,omitempty"`
	Status      int8      `json:"status"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
}
