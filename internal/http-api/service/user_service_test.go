package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
)

func TestUserCreate_DefaultRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Run(func(args mock.Arguments) {
		assert.Equal(t, models.RoleUser, args.Get(0).(*models.User).Role)
	})

	resp, err := userService.Create(context.Background(), dto.CreateUserRequest{
		Username: "testuser",
		Email:    "test@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(models.RoleUser), resp.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUserCreate_UnknownRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	resp, err := userService.Create(context.Background(), dto.CreateUserRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Role:     "superuser",
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, resp)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserCreate_Duplicate(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicate)

	resp, err := userService.Create(context.Background(), dto.CreateUserRequest{
		Username: "testuser",
		Email:    "test@example.com",
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, resp)
}

func TestUserUpdate_RoleChange(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user := &models.User{ID: "user-id", Username: "testuser", Email: "test@example.com", Role: models.RoleUser}
	mockUserRepo.On("FindByUsername", "testuser").Return(user, nil)
	mockUserRepo.On("Save", mock.AnythingOfType("*models.User")).Return(nil)

	role := string(models.RoleModerator)
	resp, err := userService.Update(context.Background(), "testuser", dto.UpdateUserRequest{Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, string(models.RoleModerator), resp.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUserUpdateSelf_KeepsRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user := &models.User{ID: "user-id", Username: "testuser", Email: "test@example.com", Role: models.RoleUser}
	mockUserRepo.On("FindByID", "user-id").Return(user, nil)
	mockUserRepo.On("Save", mock.AnythingOfType("*models.User")).Return(nil)

	bio := "reader of long novels"
	resp, err := userService.UpdateSelf(context.Background(), "user-id", dto.UpdateSelfRequest{Bio: &bio})

	assert.NoError(t, err)
	assert.Equal(t, "reader of long novels", resp.Bio)
	assert.Equal(t, string(models.RoleUser), resp.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUserUpdateSelf_InvalidUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user := &models.User{ID: "user-id", Username: "testuser", Role: models.RoleUser}
	mockUserRepo.On("FindByID", "user-id").Return(user, nil)

	reserved := "me"
	resp, err := userService.UpdateSelf(context.Background(), "user-id", dto.UpdateSelfRequest{Username: &reserved})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, resp)
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestUserDelete_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Delete", "nonexistent").Return(gorm.ErrRecordNotFound)

	err := userService.Delete(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserList_Search(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	users := []models.User{
		{ID: "a", Username: "anna", Role: models.RoleUser},
		{ID: "b", Username: "hannah", Role: models.RoleModerator},
	}
	mockUserRepo.On("List", "ann", 1, 20).Return(users, int64(2), nil)

	resp, err := userService.List(context.Background(), "ann", 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "anna", resp.Data[0].Username)
	mockUserRepo.AssertExpectations(t)
}
