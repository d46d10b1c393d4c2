package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/SscSPs/opahours_backend/internal/platform/config"
	"github.com/SscSPs/opahours_backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// authService issues and rotates access/refresh token pairs.
type authService struct {
	BaseService
	cfg              *config.Config
	userRepo         portsrepo.UserRepositoryFacade
	refreshTokenRepo portsrepo.RefreshTokenRepositoryFacade
}

// NewAuthService creates a new auth service with the provided dependencies
func NewAuthService(
	cfg *config.Config,
	userRepo portsrepo.UserRepositoryFacade,
	refreshTokenRepo portsrepo.RefreshTokenRepositoryFacade,
	opts ...ServiceOption,
) portssvc.AuthSvcFacade {
	return &authService{
		BaseService:      newBaseService(opts),
		cfg:              cfg,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// issueTokenPair signs both tokens and stores the hash of the refresh token.
func (s *authService) issueTokenPair(ctx context.Context, user *domain.User) (*portssvc.AuthResult, error) {
	tokenID := uuid.NewString()
	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return nil, err
	}

	now := s.Now()
	expiresAt := now.Add(s.cfg.RefreshTokenExpiryDuration)
	refreshToken, err := utils.GenerateRefreshJWT(user.UserID, tokenID, s.cfg.RefreshTokenSecret, expiresAt, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign refresh token", slog.String("user_id", user.UserID))
		return nil, err
	}

	if err := s.refreshTokenRepo.SaveRefreshToken(ctx, domain.RefreshToken{
		ID:        tokenID,
		UserID:    user.UserID,
		TokenHash: utils.HashRefreshToken(refreshToken),
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return nil, err
	}

	return &portssvc.AuthResult{
		User:             user,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: expiresAt,
	}, nil
}

// Login verifies credentials. Any session the user already had is revoked.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*portssvc.AuthResult, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, domain.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeInvalidCredentials, apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogInfo(ctx, "Login rejected", slog.String("user_id", user.UserID))
		return nil, apperrors.Wrap(apperrors.CodeInvalidCredentials, apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, apperrors.Wrap(apperrors.CodeUserInactive, apperrors.ErrForbidden)
	}

	if err := s.refreshTokenRepo.RevokeAllRefreshTokensForUser(ctx, user.UserID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to revoke previous sessions", slog.String("user_id", user.UserID))
		return nil, err
	}
	result, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return result, nil
}

func invalidRefresh(err error) error {
	return apperrors.Wrap(apperrors.CodeInvalidRefreshToken, err)
}

// Refresh rotates refreshToken: the presented session is revoked and a new
// pair is issued.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*portssvc.AuthResult, error) {
	if refreshToken == "" {
		return nil, apperrors.New(apperrors.CodeMissingRefreshToken)
	}

	claims, err := utils.ParseAndValidateJWT(refreshToken, s.cfg.RefreshTokenSecret, utils.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Wrap(apperrors.CodeRefreshTokenExpired, apperrors.ErrRefreshTokenExpired)
		}
		return nil, invalidRefresh(err)
	}

	record, err := s.refreshTokenRepo.FindActiveRefreshTokenByID(ctx, claims.TokenID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalidRefresh(err)
		}
		return nil, err
	}

	now := s.Now()
	if record.IsExpired(now) {
		if err := s.refreshTokenRepo.RevokeRefreshToken(ctx, record.ID, now); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.CodeRefreshTokenExpired, apperrors.ErrRefreshTokenExpired)
	}
	if !utils.CompareRefreshTokenHash(refreshToken, record.TokenHash) || record.UserID != claims.Subject {
		return nil, invalidRefresh(apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalidRefresh(err)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, invalidRefresh(apperrors.ErrForbidden)
	}

	if err := s.refreshTokenRepo.RevokeRefreshToken(ctx, record.ID, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// rotated by a concurrent request
			return nil, invalidRefresh(err)
		}
		s.LogError(ctx, err, "Failed to revoke rotated refresh token", slog.String("token_id", record.ID))
		return nil, err
	}
	return s.issueTokenPair(ctx, user)
}

// Logout revokes the session behind refreshToken if it can be identified.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := utils.ParseAndValidateJWT(refreshToken, s.cfg.RefreshTokenSecret, utils.TokenTypeRefresh)
	if err != nil {
		s.LogDebug(ctx, "Logout with unreadable refresh token", slog.String("error", err.Error()))
		return nil
	}
	if err := s.refreshTokenRepo.RevokeRefreshToken(ctx, claims.TokenID, s.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "Failed to revoke refresh token", slog.String("token_id", claims.TokenID))
		return err
	}
	return nil
}

// Me returns the authenticated user.
func (s *authService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeUserNotFound, err)
		}
		return nil, err
	}
	return user, nil
}
