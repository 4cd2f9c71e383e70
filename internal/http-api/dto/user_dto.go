package dto

import "reviewhub/internal/http-api/models"

// CreateUserRequest: admin-side user creation. Role is optional and
// defaults to "user".
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Bio      string `json:"bio"`
	Role     string `json:"role"`
}

// UpdateUserRequest: admin-side partial update, role included.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Bio      *string `json:"bio"`
	Role     *string `json:"role"`
}

// UpdateSelfRequest deliberately has no role field: whatever role value a
// user puts in the payload of a /users/me PATCH is dropped on the floor,
// not rejected.
type UpdateSelfRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Bio      *string `json:"bio"`
}

type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Role     string `json:"role"`
}

func FromModelToUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		Username: u.Username,
		Email:    u.Email,
		Bio:      u.Bio,
		Role:     string(u.Role),
	}
}
