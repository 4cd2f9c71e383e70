package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/http-api/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Save(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts the review. A second review by the same author on the
// same title trips the composite unique index and comes back as
// ErrDuplicate.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return translateError(r.db.WithContext(ctx).Create(review).Error)
}

func (r *reviewRepository) Save(ctx context.Context, review *models.Review) error {
	return translateError(r.db.WithContext(ctx).Save(review).Error)
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("Author").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByTitle returns reviews newest first, ties broken by ascending score.
func (r *reviewRepository) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("title_id = ?", titleID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date DESC, score ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
