package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// ReviewResponse exposes the author by username; pub_date never changes
// after creation.
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(r *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Score:   r.Score,
		Author:  r.Author.Username,
		PubDate: r.PubDate,
	}
}
