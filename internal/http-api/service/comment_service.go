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

type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(ctx context.Context, actor permission.Actor, titleID, reviewID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Update(ctx context.Context, actor permission.Actor, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actor permission.Actor, titleID, reviewID, commentID int64) error
}

type commentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
}

func NewCommentService(comments repository.CommentRepository, reviews repository.ReviewRepository) CommentService {
	return &commentService{comments: comments, reviews: reviews}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.comments.ListByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.findForReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Create(ctx context.Context, actor permission.Actor, titleID, reviewID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.comments.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(created), nil
}

func (s *commentService) Update(ctx context.Context, actor permission.Actor, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.findForReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !permission.CanModifyContent(actor, comment.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, actor permission.Actor, titleID, reviewID, commentID int64) error {
	comment, err := s.findForReview(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !permission.CanModifyContent(actor, comment.AuthorID) {
		return ErrForbidden
	}
	return s.comments.Delete(ctx, comment.ID)
}

// checkReview verifies the review exists under the title from the URL.
func (s *commentService) checkReview(ctx context.Context, titleID, reviewID int64) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
		}
		return err
	}
	if review.TitleID != titleID {
		return fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
	}
	return nil
}

func (s *commentService) findForReview(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
	}
	return comment, nil
}
