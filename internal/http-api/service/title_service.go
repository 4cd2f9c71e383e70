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

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error)
	Get(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, req dto.CreateTitleRequest) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
}

func NewTitleService(
	titles repository.TitleRepository,
	categories repository.CategoryRepository,
	genres repository.GenreRepository,
) TitleService {
	return &titleService{titles: titles, categories: categories, genres: genres}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error) {
	list, total, err := s.titles.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(list))
	for i := range list {
		responses = append(responses, *dto.FromModelToTitleResponse(&list[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: title %d", ErrNotFound, id)
		}
		return nil, err
	}
	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleRequest) (*dto.TitleResponse, error) {
	if err := models.ValidateYear(req.Year); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
		Genres:      genres,
	}
	if err := s.titles.Create(ctx, title); err != nil {
		return nil, err
	}

	// reload for the embedded category and the derived rating shape
	created, err := s.titles.FindByID(ctx, title.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(created), nil
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*dto.TitleResponse, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: title %d", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := models.ValidateYear(*req.Year); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}
	if req.Genre != nil {
		genres, err := s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	if err := s.titles.Save(ctx, title); err != nil {
		return nil, err
	}

	updated, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(updated), nil
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titles.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: title %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// resolveCategory maps a slug onto its category; an unknown slug is a
// validation error on the payload, not a 404.
func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, slug)
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.genres.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		found := make(map[string]bool, len(genres))
		for _, g := range genres {
			found[g.Slug] = true
		}
		for _, slug := range slugs {
			if !found[slug] {
				return nil, fmt.Errorf("%w: unknown genre %q", ErrValidation, slug)
			}
		}
	}
	return genres, nil
}
