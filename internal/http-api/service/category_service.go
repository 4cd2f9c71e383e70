package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error)
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error) {
	list, total, err := s.categories.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(list))
	for i := range list {
		responses = append(responses, *dto.FromModelToCategoryResponse(&list[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := models.ValidateSlug(req.Slug); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: category slug %q already exists", ErrConflict, req.Slug)
		}
		return nil, err
	}
	return dto.FromModelToCategoryResponse(category), nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.categories.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %q", ErrNotFound, slug)
		}
		return err
	}
	return nil
}
