package dto

import "time"

type CommentCreateDTO struct {
	FigureID uint64 `json:"figure_id" validate:"required"`
	Content  string `json:"content" validate:"required,min=1,max=1024"`
}

type CommentDTO struct {
	ID            uint64    `json:"id"`
	FigureID      uint64    `json:"figure_id"`
	UserID        uint64    `json:"user_id"`
	UserNickname  string    `json:"user_nickname"`
	UserAvatarURL string    `json:"user_avatar_url"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}

type CommentListDTO struct {
	Total    int64         `json:"total"`
	Comments []*CommentDTO `json:"comments"`
}

type CommentResultDTO struct {
	CommentID   uint64          `json:"comment_id"`
	Celebration *CelebrationDTO `json:"celebration,omitempty"`
}
