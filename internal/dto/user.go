package dto

import (
	"time"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
)

// CreateUserRequest bootstraps the single administrator.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255" example:"Opa Owner"`
	Email    string `json:"email" binding:"required,email,max=255" example:"owner@example.com"`
	Password string `json:"password" binding:"required,min=6,max=128" example:"changeme"`
	IsActive *bool  `json:"isActive"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero values.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6,max=128"`
	IsActive *bool   `json:"isActive"`
}

// IsEmpty reports whether no field was supplied.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Password == nil && r.IsActive == nil
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUserResponse converts a domain.User into its API view.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToListUserResponse converts users into API views.
func ToListUserResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
