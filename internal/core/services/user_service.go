package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/SscSPs/opahours_backend/internal/utils"
	"github.com/google/uuid"
)

// userService manages the single administrator account.
type userService struct {
	BaseService
	txManager        portsrepo.TransactionManager
	userRepo         portsrepo.UserRepositoryFacade
	refreshTokenRepo portsrepo.RefreshTokenRepositoryFacade
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(
	txManager portsrepo.TransactionManager,
	userRepo portsrepo.UserRepositoryFacade,
	refreshTokenRepo portsrepo.RefreshTokenRepositoryFacade,
	opts ...ServiceOption,
) portssvc.UserSvcFacade {
	return &userService{
		BaseService:      newBaseService(opts),
		txManager:        txManager,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func authorizeSelf(userID, requestingUserID string) error {
	if userID != requestingUserID {
		return apperrors.Wrap(apperrors.CodeForbidden, apperrors.ErrForbidden)
	}
	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return "", apperrors.New(apperrors.CodeInvalidName)
	}
	return name, nil
}

func (s *userService) findUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeUserNotFound, err)
		}
		s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

// ensureEmailFree fails when email belongs to a user other than selfID.
func (s *userService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.UserID != selfID {
		return apperrors.New(apperrors.CodeEmailAlreadyExists)
	}
	return nil
}

// CreateUser creates the administrator. Once a user exists every further
// attempt fails.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	count, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count users")
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.New(apperrors.CodeSingleUserMode)
	}

	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(req.Email)
	if email == "" {
		return nil, apperrors.New(apperrors.CodeInvalidEmail)
	}
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// lost a race with a concurrent bootstrap
			return nil, apperrors.Wrap(apperrors.CodeSingleUserMode, err)
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, err
	}
	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID returns the caller's own record.
func (s *userService) GetUserByID(ctx context.Context, userID string, requestingUserID string) (*domain.User, error) {
	if err := authorizeSelf(userID, requestingUserID); err != nil {
		return nil, err
	}
	return s.findUser(ctx, userID)
}

// ListUsers only ever contains the caller.
func (s *userService) ListUsers(ctx context.Context, requestingUserID string) ([]domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.User{}, nil
		}
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	return []domain.User{*user}, nil
}

// UpdateUser changes the caller's name, email, password or active flag.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if err := authorizeSelf(userID, requestingUserID); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, apperrors.New(apperrors.CodeValidation).WithDetails(map[string]any{"reason": "at least one field is required"})
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if user.Name, err = normalizeName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		email := domain.NormalizeEmail(*req.Email)
		if email == "" {
			return nil, apperrors.New(apperrors.CodeInvalidEmail)
		}
		if err := s.ensureEmailFree(ctx, email, userID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if req.Password != nil {
		if user.PasswordHash, err = utils.HashPassword(*req.Password); err != nil {
			s.LogError(ctx, err, "Failed to hash password")
			return nil, err
		}
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = s.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, apperrors.Wrap(apperrors.CodeEmailAlreadyExists, err)
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.Wrap(apperrors.CodeUserNotFound, err)
		}
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "User updated", slog.String("user_id", userID))
	return user, nil
}

// DeleteUser revokes the caller's sessions and removes the account.
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if err := authorizeSelf(userID, requestingUserID); err != nil {
		return err
	}
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.findUser(ctx, userID); err != nil {
			return err
		}
		if err := s.refreshTokenRepo.RevokeAllRefreshTokensForUser(ctx, userID, s.Now()); err != nil {
			return err
		}
		if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.Wrap(apperrors.CodeUserNotFound, err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}
