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

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error)
	Create(ctx context.Context, req dto.CreateGenreRequest) (*dto.GenreResponse, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	genres repository.GenreRepository
}

func NewGenreService(genres repository.GenreRepository) GenreService {
	return &genreService{genres: genres}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error) {
	list, total, err := s.genres.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GenreResponse, 0, len(list))
	for i := range list {
		responses = append(responses, *dto.FromModelToGenreResponse(&list[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreRequest) (*dto.GenreResponse, error) {
	if err := models.ValidateSlug(req.Slug); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.genres.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: genre slug %q already exists", ErrConflict, req.Slug)
		}
		return nil, err
	}
	return dto.FromModelToGenreResponse(genre), nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.genres.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: genre %q", ErrNotFound, slug)
		}
		return err
	}
	return nil
}
