package dto

import "reviewhub/internal/http-api/models"

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToCategoryResponse(c *models.Category) *CategoryResponse {
	return &CategoryResponse{Name: c.Name, Slug: c.Slug}
}
