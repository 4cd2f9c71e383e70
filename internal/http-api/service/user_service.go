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

// UserService covers admin-side user management plus the /users/me
// self-service pair. Route middleware already guarantees the admin role for
// everything except GetByID and UpdateSelf.
type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Get(ctx context.Context, username string) (*dto.UserResponse, error)
	Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, username string) error
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	UpdateSelf(ctx context.Context, id string, req dto.UpdateSelfRequest) (*dto.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error) {
	users, total, err := s.users.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := models.ValidateUsername(req.Username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleUser
	} else if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Get(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.applyCommon(user, req.Username, req.Email, req.Bio); err != nil {
		return nil, err
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *req.Role)
		}
		user.Role = role
	}

	return s.save(ctx, user)
}

func (s *userService) Delete(ctx context.Context, username string) error {
	if err := s.users.Delete(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %q", ErrNotFound, username)
		}
		return err
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// UpdateSelf applies the same updates as Update minus the role: the request
// type has no role field, so a role value in the raw payload is silently
// discarded rather than rejected.
func (s *userService) UpdateSelf(ctx context.Context, id string, req dto.UpdateSelfRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	if err := s.applyCommon(user, req.Username, req.Email, req.Bio); err != nil {
		return nil, err
	}

	return s.save(ctx, user)
}

func (s *userService) findByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) applyCommon(user *models.User, username, email, bio *string) error {
	if username != nil {
		if err := models.ValidateUsername(*username); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		user.Username = *username
	}
	if email != nil {
		user.Email = *email
	}
	if bio != nil {
		user.Bio = *bio
	}
	return nil
}

func (s *userService) save(ctx context.Context, user *models.User) (*dto.UserResponse, error) {
	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}
