package dto

import (
	"math"

	"reviewhub/internal/http-api/models"
)

// CreateTitleRequest references category and genres by slug, the way the
// catalog is addressed everywhere else.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Genre       []string `json:"genre" binding:"required,min=1"`
}

// UpdateTitleRequest carries partial updates; nil fields stay untouched.
type UpdateTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Category    *CategoryResponse `json:"category"`
	Genre       []GenreResponse   `json:"genre"`
}

func FromModelToTitleResponse(t *models.Title) *TitleResponse {
	resp := &TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
	}
	if t.Rating != nil {
		rounded := math.Round(*t.Rating*10) / 10
		resp.Rating = &rounded
	}
	if t.Category != nil {
		resp.Category = FromModelToCategoryResponse(t.Category)
	}
	for i := range t.Genres {
		resp.Genre = append(resp.Genre, *FromModelToGenreResponse(&t.Genres[i]))
	}
	return resp
}
