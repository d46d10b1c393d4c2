package services

import (
	"context"
	"time"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/SscSPs/opahours_backend/internal/dto"
)

// AuthResult is a freshly issued session.
type AuthResult struct {
	User             *domain.User
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthSvcFacade defines login and session management.
type AuthSvcFacade interface {
	// Login checks credentials, revokes previous sessions and issues a new token pair.
	Login(ctx context.Context, req dto.LoginRequest) (*AuthResult, error)

	// Refresh rotates a refresh token into a new pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)

	// Logout revokes the session behind refreshToken. Unknown or invalid tokens are ignored.
	Logout(ctx context.Context, refreshToken string) error

	// Me returns the authenticated user.
	Me(ctx context.Context, userID string) (*domain.User, error)
}
