package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	"github.com/SscSPs/opahours_backend/internal/models"
	"github.com/SscSPs/opahours_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const userColumns = `user_id, name, email, password_hash, is_active, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(base BaseRepository) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: base}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(&m.UserID, &m.Name, &m.Email, &m.PasswordHash, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO auth_users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.q(ctx).Exec(ctx, query, m.UserID, m.Name, m.Email, m.PasswordHash, m.IsActive, m.CreatedAt, m.UpdatedAt)
	return mapError(err, "failed to save user")
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM auth_users WHERE ` + where + `;`
	m, err := scanUser(r.q(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapError(err, "failed to find user")
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = $1", domain.NormalizeEmail(email))
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	// Default limit if not specified or invalid
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + userColumns + `
        FROM auth_users
        ORDER BY created_at
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.q(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError(err, "failed to query users")
	}
	defer rows.Close()

	var ms []models.User
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return mapping.ToDomainUserSlice(ms), nil
}

func (r *PgxUserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q(ctx).QueryRow(ctx, `SELECT count(*) FROM auth_users;`).Scan(&count); err != nil {
		return 0, mapError(err, "failed to count users")
	}
	return count, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        UPDATE auth_users
        SET name = $2, email = $3, password_hash = $4, is_active = $5, updated_at = $6
        WHERE user_id = $1;
    `
	tag, err := r.q(ctx).Exec(ctx, query, m.UserID, m.Name, m.Email, m.PasswordHash, m.IsActive, m.UpdatedAt)
	if err != nil {
		return mapError(err, "failed to update user")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM auth_users WHERE user_id = $1;`, userID)
	if err != nil {
		return mapError(err, "failed to delete user")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxRefreshTokenRepository struct {
	BaseRepository
}

var _ portsrepo.RefreshTokenRepositoryFacade = (*PgxRefreshTokenRepository)(nil)

func (r *PgxRefreshTokenRepository) SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error {
	m := mapping.ToModelRefreshToken(token)
	query := `
        INSERT INTO auth_refresh_tokens (id, user_id, token_hash, expires_at, revoked_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.q(ctx).Exec(ctx, query, m.ID, m.UserID, m.TokenHash, m.ExpiresAt, m.RevokedAt, m.CreatedAt)
	return mapError(err, "failed to save refresh token")
}

func (r *PgxRefreshTokenRepository) FindActiveRefreshTokenByID(ctx context.Context, tokenID string) (*domain.RefreshToken, error) {
	query := `
        SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
        FROM auth_refresh_tokens
        WHERE id = $1 AND revoked_at IS NULL;
    `
	var m models.RefreshToken
	err := r.q(ctx).QueryRow(ctx, query, tokenID).Scan(&m.ID, &m.UserID, &m.TokenHash, &m.ExpiresAt, &m.RevokedAt, &m.CreatedAt)
	if err != nil {
		return nil, mapError(err, "failed to find refresh token")
	}
	token := mapping.ToDomainRefreshToken(m)
	return &token, nil
}

func (r *PgxRefreshTokenRepository) RevokeRefreshToken(ctx context.Context, tokenID string, revokedAt time.Time) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE auth_refresh_tokens SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL;`,
		tokenID, revokedAt)
	if err != nil {
		return mapError(err, "failed to revoke refresh token")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("refresh token %s not active: %w", tokenID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxRefreshTokenRepository) RevokeAllRefreshTokensForUser(ctx context.Context, userID string, revokedAt time.Time) error {
	_, err := r.q(ctx).Exec(ctx,
		`UPDATE auth_refresh_tokens SET revoked_at = $2 WHERE user_id = $1 AND revoked_at IS NULL;`,
		userID, revokedAt)
	return mapError(err, "failed to revoke refresh tokens")
}
