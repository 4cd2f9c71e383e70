package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/permission"
	"reviewhub/internal/http-api/repository"
)

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Save(ctx context.Context, review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func newReviewServiceWithMocks() (ReviewService, *MockReviewRepository, *MockTitleRepository) {
	reviews := new(MockReviewRepository)
	titles := new(MockTitleRepository)
	return NewReviewService(reviews, titles), reviews, titles
}

func authorActor() permission.Actor {
	return permission.Actor{ID: "author-id", Role: models.RoleUser, Authenticated: true}
}

func TestReviewCreate_Success(t *testing.T) {
	svc, reviews, titles := newReviewServiceWithMocks()

	titles.On("FindByID", int64(1)).Return(&models.Title{ID: 1, Name: "Winter Road", Year: 2020}, nil)
	reviews.On("Create", mock.AnythingOfType("*models.Review")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Review).ID = 5
	})
	reviews.On("FindByID", int64(5)).Return(&models.Review{
		ID:       5,
		TitleID:  1,
		AuthorID: "author-id",
		Text:     "great",
		Score:    8,
		Author:   models.User{Username: "testuser"},
	}, nil)

	resp, err := svc.Create(context.Background(), authorActor(), 1, dto.CreateReviewRequest{Text: "great", Score: 8})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "testuser", resp.Author)
	reviews.AssertExpectations(t)
}

func TestReviewCreate_SecondReviewConflict(t *testing.T) {
	svc, reviews, titles := newReviewServiceWithMocks()

	titles.On("FindByID", int64(1)).Return(&models.Title{ID: 1}, nil)
	reviews.On("Create", mock.AnythingOfType("*models.Review")).Return(repository.ErrDuplicate)

	resp, err := svc.Create(context.Background(), authorActor(), 1, dto.CreateReviewRequest{Text: "again", Score: 3})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, resp)
	reviews.AssertExpectations(t)
}

func TestReviewCreate_TitleNotFound(t *testing.T) {
	svc, reviews, titles := newReviewServiceWithMocks()

	titles.On("FindByID", int64(99)).Return(nil, gorm.ErrRecordNotFound)

	resp, err := svc.Create(context.Background(), authorActor(), 99, dto.CreateReviewRequest{Text: "great", Score: 8})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, resp)
	reviews.AssertNotCalled(t, "Create", mock.Anything)
}

func TestReviewCreate_BadScore(t *testing.T) {
	svc, reviews, titles := newReviewServiceWithMocks()

	titles.On("FindByID", int64(1)).Return(&models.Title{ID: 1}, nil)

	resp, err := svc.Create(context.Background(), authorActor(), 1, dto.CreateReviewRequest{Text: "great", Score: 11})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, resp)
	reviews.AssertNotCalled(t, "Create", mock.Anything)
}

func TestReviewGet_WrongTitle(t *testing.T) {
	svc, reviews, _ := newReviewServiceWithMocks()

	reviews.On("FindByID", int64(5)).Return(&models.Review{ID: 5, TitleID: 2}, nil)

	resp, err := svc.Get(context.Background(), 1, 5)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, resp)
}

func TestReviewUpdate_OtherUserForbidden(t *testing.T) {
	svc, reviews, _ := newReviewServiceWithMocks()

	reviews.On("FindByID", int64(5)).Return(&models.Review{ID: 5, TitleID: 1, AuthorID: "author-id"}, nil)

	other := permission.Actor{ID: "other-id", Role: models.RoleUser, Authenticated: true}
	text := "rewritten"
	resp, err := svc.Update(context.Background(), other, 1, 5, dto.UpdateReviewRequest{Text: &text})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, resp)
	reviews.AssertNotCalled(t, "Save", mock.Anything)
}

func TestReviewUpdate_ModeratorAllowed(t *testing.T) {
	svc, reviews, _ := newReviewServiceWithMocks()

	reviews.On("FindByID", int64(5)).Return(&models.Review{
		ID: 5, TitleID: 1, AuthorID: "author-id", Text: "old", Score: 4,
		Author: models.User{Username: "testuser"},
	}, nil)
	reviews.On("Save", mock.AnythingOfType("*models.Review")).Return(nil)

	moderator := permission.Actor{ID: "mod-id", Role: models.RoleModerator, Authenticated: true}
	text := "cleaned up"
	resp, err := svc.Update(context.Background(), moderator, 1, 5, dto.UpdateReviewRequest{Text: &text})

	assert.NoError(t, err)
	assert.Equal(t, "cleaned up", resp.Text)
	reviews.AssertExpectations(t)
}

func TestReviewDelete_AdminAllowed(t *testing.T) {
	svc, reviews, _ := newReviewServiceWithMocks()

	reviews.On("FindByID", int64(5)).Return(&models.Review{ID: 5, TitleID: 1, AuthorID: "author-id"}, nil)
	reviews.On("Delete", int64(5)).Return(nil)

	admin := permission.Actor{ID: "admin-id", Role: models.RoleAdmin, Authenticated: true}
	err := svc.Delete(context.Background(), admin, 1, 5)

	assert.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestReviewDelete_AuthorAllowed(t *testing.T) {
	svc, reviews, _ := newReviewServiceWithMocks()

	reviews.On("FindByID", int64(5)).Return(&models.Review{ID: 5, TitleID: 1, AuthorID: "author-id"}, nil)
	reviews.On("Delete", int64(5)).Return(nil)

	err := svc.Delete(context.Background(), authorActor(), 1, 5)

	assert.NoError(t, err)
	reviews.AssertExpectations(t)
}
