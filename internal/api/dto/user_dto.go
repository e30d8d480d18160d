package dto

import (
	"github.com/spec-kit/weight-tracker/internal/domain"
)

// UserCreateRequest is the registration payload. Role is server
// assigned and deliberately absent.
type UserCreateRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
}

// UserUpdateRequest carries optional fields for PATCH; absent fields
// stay untouched.
type UserUpdateRequest struct {
	Username *string  `json:"username"`
	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	Height   *float64 `json:"height"`
	Weight   *float64 `json:"weight"`
}

// UserResponse is the public account shape. The password hash is never
// part of any response.
type UserResponse struct {
	ID       int64            `json:"id"`
	RoleID   int64            `json:"role_id"`
	Username string           `json:"username"`
	Email    string           `json:"email"`
	Height   float64          `json:"height"`
	Weight   float64          `json:"weight"`
	Targets  []TargetResponse `json:"targets"`
}

// NewUserResponse maps a user and their targets to the wire shape.
func NewUserResponse(user *domain.User, targets []*domain.Target) UserResponse {
	return UserResponse{
		ID:       user.ID,
		RoleID:   user.RoleID,
		Username: user.Username,
		Email:    user.Email,
		Height:   user.Height,
		Weight:   user.Weight,
		Targets:  NewTargetResponses(targets),
	}
}

// NewUserResponses maps a list of users without expanding targets.
func NewUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user, nil))
	}
	return out
}
