package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
)

// MockTitleRepository mocks the TitleRepository interface
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	args := m.Called(filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleRepository) FindByID(ctx context.Context, id int64) (*models.Title, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleRepository) Create(ctx context.Context, title *models.Title) error {
	args := m.Called(title)
	return args.Error(0)
}

func (m *MockTitleRepository) Save(ctx context.Context, title *models.Title) error {
	args := m.Called(title)
	return args.Error(0)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(slug)
	return args.Error(0)
}

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenreRepository) Create(ctx context.Context, genre *models.Genre) error {
	args := m.Called(genre)
	return args.Error(0)
}

func (m *MockGenreRepository) FindBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	args := m.Called(slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(slug)
	return args.Error(0)
}

func newTitleServiceWithMocks() (TitleService, *MockTitleRepository, *MockCategoryRepository, *MockGenreRepository) {
	titles := new(MockTitleRepository)
	categories := new(MockCategoryRepository)
	genres := new(MockGenreRepository)
	return NewTitleService(titles, categories, genres), titles, categories, genres
}

func TestTitleCreate_Success(t *testing.T) {
	svc, titles, categories, genres := newTitleServiceWithMocks()

	category := &models.Category{ID: 1, Name: "Books", Slug: "books"}
	genre := models.Genre{ID: 2, Name: "Drama", Slug: "drama"}
	categories.On("FindBySlug", "books").Return(category, nil)
	genres.On("FindBySlugs", []string{"drama"}).Return([]models.Genre{genre}, nil)
	titles.On("Create", mock.AnythingOfType("*models.Title")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Title).ID = 42
	})
	titles.On("FindByID", int64(42)).Return(&models.Title{
		ID:       42,
		Name:     "Winter Road",
		Year:     2020,
		Category: category,
		Genres:   []models.Genre{genre},
	}, nil)

	resp, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "Winter Road",
		Year:     2020,
		Category: "books",
		Genre:    []string{"drama"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Nil(t, resp.Rating)
	assert.Equal(t, "books", resp.Category.Slug)
	assert.Len(t, resp.Genre, 1)
	titles.AssertExpectations(t)
}

func TestTitleCreate_FutureYear(t *testing.T) {
	svc, titles, _, _ := newTitleServiceWithMocks()

	resp, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "From the Future",
		Year:     time.Now().Year() + 1,
		Category: "books",
		Genre:    []string{"drama"},
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, resp)
	titles.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTitleCreate_UnknownCategory(t *testing.T) {
	svc, titles, categories, _ := newTitleServiceWithMocks()

	categories.On("FindBySlug", "nope").Return(nil, gorm.ErrRecordNotFound)

	resp, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "Winter Road",
		Year:     2020,
		Category: "nope",
		Genre:    []string{"drama"},
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, resp)
	titles.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTitleCreate_UnknownGenre(t *testing.T) {
	svc, titles, categories, genres := newTitleServiceWithMocks()

	categories.On("FindBySlug", "books").Return(&models.Category{ID: 1, Slug: "books"}, nil)
	genres.On("FindBySlugs", []string{"drama", "nope"}).Return([]models.Genre{{ID: 2, Slug: "drama"}}, nil)

	resp, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "Winter Road",
		Year:     2020,
		Category: "books",
		Genre:    []string{"drama", "nope"},
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "nope")
	assert.Nil(t, resp)
	titles.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTitleGet_RatingRounded(t *testing.T) {
	svc, titles, _, _ := newTitleServiceWithMocks()

	rating := 6.6666666
	titles.On("FindByID", int64(7)).Return(&models.Title{ID: 7, Name: "Winter Road", Year: 2020, Rating: &rating}, nil)

	resp, err := svc.Get(context.Background(), 7)

	assert.NoError(t, err)
	assert.NotNil(t, resp.Rating)
	assert.Equal(t, 6.7, *resp.Rating)
}

func TestTitleGet_NotFound(t *testing.T) {
	svc, titles, _, _ := newTitleServiceWithMocks()

	titles.On("FindByID", int64(7)).Return(nil, gorm.ErrRecordNotFound)

	resp, err := svc.Get(context.Background(), 7)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, resp)
}

func TestTitleUpdate_FutureYearRejected(t *testing.T) {
	svc, titles, _, _ := newTitleServiceWithMocks()

	titles.On("FindByID", int64(7)).Return(&models.Title{ID: 7, Name: "Winter Road", Year: 2020}, nil)

	badYear := time.Now().Year() + 1
	resp, err := svc.Update(context.Background(), 7, dto.UpdateTitleRequest{Year: &badYear})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, resp)
	titles.AssertNotCalled(t, "Save", mock.Anything)
}

func TestTitleDelete_NotFound(t *testing.T) {
	svc, titles, _, _ := newTitleServiceWithMocks()

	titles.On("Delete", int64(7)).Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 7)

	assert.ErrorIs(t, err, ErrNotFound)
}
