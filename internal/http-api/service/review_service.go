package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/permission"
	"reviewhub/internal/http-api/repository"
)

type ReviewService interface {
	List(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, actor permission.Actor, titleID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Update(ctx context.Context, actor permission.Actor, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actor permission.Actor, titleID, reviewID int64) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
}

func NewReviewService(reviews repository.ReviewRepository, titles repository.TitleRepository) ReviewService {
	return &reviewService{reviews: reviews, titles: titles}
}

func (s *reviewService) List(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviews.ListByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.findForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

// Create adds a review authored by the acting user. The author always comes
// from the authenticated actor, never from the payload, so the
// one-review-per-author rule is evaluated against the real identity.
func (s *reviewService) Create(ctx context.Context, actor permission.Actor, titleID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if err := models.ValidateScore(req.Score); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: you have already reviewed this title", ErrConflict)
		}
		return nil, err
	}

	// reload to pick up the author association
	created, err := s.reviews.FindByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(created), nil
}

func (s *reviewService) Update(ctx context.Context, actor permission.Actor, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.findForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !permission.CanModifyContent(actor, review.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if err := models.ValidateScore(*req.Score); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		review.Score = *req.Score
	}

	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, actor permission.Actor, titleID, reviewID int64) error {
	review, err := s.findForTitle(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !permission.CanModifyContent(actor, review.AuthorID) {
		return ErrForbidden
	}
	return s.reviews.Delete(ctx, review.ID)
}

func (s *reviewService) checkTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: title %d", ErrNotFound, titleID)
		}
		return err
	}
	return nil
}

// findForTitle loads a review and verifies it belongs to the title in the
// URL; a mismatch is indistinguishable from absence.
func (s *reviewService) findForTitle(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
		}
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
	}
	return review, nil
}
