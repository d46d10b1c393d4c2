package services

import (
	"context"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/SscSPs/opahours_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID. Callers may only read themselves.
	GetUserByID(ctx context.Context, userID string, requestingUserID string) (*domain.User, error)

	// ListUsers returns the users visible to the caller, which is only the caller.
	ListUsers(ctx context.Context, requestingUserID string) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates the single administrator. Fails once any user exists.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes the user and revokes its sessions.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
