package dto

import "time"

type FigureCreateDTO struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Category string  `json:"category" validate:"required,max=50"`
	Country  *string `json:"country,omitempty"`
	Gender   *uint8  `json:"gender,omitempty" validate:"omitempty,min=0,max=2"`
	Birthday *string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ImageURL string  `json:"image_url"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=1024"`
}

type FigureUpdateDTO struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=50"`
	Country  *string `json:"country,omitempty"`
	Gender   *uint8  `json:"gender,omitempty" validate:"omitempty,min=0,max=2"`
	Birthday *string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ImageURL *string `json:"image_url,omitempty"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=1024"`
}

type FigureDTO struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Country       *string   `json:"country,omitempty"`
	Gender        *uint8    `json:"gender,omitempty"`
	Birthday      *string   `json:"birthday,omitempty"`
	ImageURL      string    `json:"image_url"`
	Bio           *string   `json:"bio,omitempty"`
	VotesCount    int       `json:"votes_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type FigureListDTO struct {
	Total   int64        `json:"total"`
	Figures []*FigureDTO `json:"figures"`
}

type FigureQueryDTO struct {
	Category string `form:"category"`
	Country  string `form:"country"`
	Page     int    `form:"page,default=1" validate:"omitempty,min=1"`
	Size     int    `form:"size,default=20" validate:"omitempty,min=1,max=100"`
}
