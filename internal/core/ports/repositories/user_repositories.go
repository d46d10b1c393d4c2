package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail looks a user up by normalised email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// CountUsers returns the number of stored users.
	CountUsers(ctx context.Context) (int64, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate on a taken email
	// or when a user already exists.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser removes the user and, by cascade, its refresh tokens.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// RefreshTokenRepositoryFacade persists refresh sessions.
type RefreshTokenRepositoryFacade interface {
	SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error
	// FindActiveRefreshTokenByID returns a token that has not been revoked,
	// expired or not. apperrors.ErrNotFound otherwise.
	FindActiveRefreshTokenByID(ctx context.Context, tokenID string) (*domain.RefreshToken, error)
	// RevokeRefreshToken revokes only a token that is still active, returning
	// apperrors.ErrNotFound when no row changed. Two concurrent rotations of
	// the same token therefore cannot both succeed.
	RevokeRefreshToken(ctx context.Context, tokenID string, revokedAt time.Time) error
	RevokeAllRefreshTokensForUser(ctx context.Context, userID string, revokedAt time.Time) error
}
