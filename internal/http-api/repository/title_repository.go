package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/http-api/models"
)

// ratingSelect computes the derived rating per title at query time, so it
// always reflects the current set of reviews.
const ratingSelect = "titles.*, (SELECT AVG(score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// TitleFilter narrows a title listing. Zero-value fields are ignored.
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	FindByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, title *models.Title) error
	Save(ctx context.Context, title *models.Title) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

// List pages through titles matching the filter. The count and page queries
// run on separate chains: Count rewrites the select clause and the Distinct
// flag is sticky, so a shared statement would corrupt the second query.
func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	if err := r.countQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.pageQuery(ctx, filter).
		Preload("Category").
		Preload("Genres").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// filtered starts a fresh title query with the filter's joins and
// conditions applied. Zero-value filter fields add nothing.
func (r *titleRepository) filtered(ctx context.Context, filter TitleFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Title{})
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		query = query.
			Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres ON genres.id = tg.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}
	return query
}

// countQuery counts distinct matching titles; the genre join can multiply
// rows.
func (r *titleRepository) countQuery(ctx context.Context, filter TitleFilter) *gorm.DB {
	return r.filtered(ctx, filter).Distinct("titles.id")
}

// pageQuery selects distinct matching titles with the derived rating,
// newest year first.
func (r *titleRepository) pageQuery(ctx context.Context, filter TitleFilter) *gorm.DB {
	return r.filtered(ctx, filter).
		Distinct(ratingSelect).
		Order("titles.year DESC, titles.name ASC")
}

func (r *titleRepository) FindByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	if err := r.db.WithContext(ctx).
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error; err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	return translateError(r.db.WithContext(ctx).Create(title).Error)
}

// Save persists scalar fields and replaces the genre associations with
// whatever the title carries, inside one transaction.
func (r *titleRepository) Save(ctx context.Context, title *models.Title) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres").Save(title).Error; err != nil {
			return translateError(err)
		}
		return tx.Model(title).Association("Genres").Replace(title.Genres)
	})
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
