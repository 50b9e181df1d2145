// Package token implements the refresh-token repository using PostgreSQL.
package token

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/carbonaegis/aegis-backend/internal/adapter/postgres"
	"github.com/carbonaegis/aegis-backend/internal/domain"
)

// Repo provides refresh-token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createQuery = `
INSERT INTO auth_tokens (id, user_id, token_hash, expires_at, created_at)
VALUES ($1, $2, $3, $4, now())`

// Create inserts a new refresh token, assigning an ID when the caller
// left it zero.
func (r *Repo) Create(ctx context.Context, token *domain.AuthToken) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	_, err := q.Exec(ctx, createQuery,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt)
	if err != nil {
		return postgres.MapError(err, "auth_token", token.UserID)
	}
	return nil
}

const getByHashQuery = `
SELECT id, user_id, token_hash, expires_at, created_at, revoked_at
FROM auth_tokens
WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > now()`

// GetByHash returns an active (non-revoked, non-expired) refresh token by its
// hash. Returns domain.ErrNotFound if the token does not exist, is revoked,
// or is expired.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.AuthToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.AuthToken
	err := q.QueryRow(ctx, getByHashQuery, tokenHash).Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &t.RevokedAt)
	if err != nil {
		return nil, postgres.MapError(err, "auth_token", uuid.Nil)
	}
	return &t, nil
}

const revokeByIDQuery = `
UPDATE auth_tokens SET revoked_at = now()
WHERE id = $1 AND revoked_at IS NULL`

// RevokeByID revokes a specific refresh token by setting revoked_at.
// Idempotent: revoking an already-revoked token is not an error.
func (r *Repo) RevokeByID(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, revokeByIDQuery, id); err != nil {
		return postgres.MapError(err, "auth_token", id)
	}
	return nil
}

const revokeAllByUserQuery = `
UPDATE auth_tokens SET revoked_at = now()
WHERE user_id = $1 AND revoked_at IS NULL`

// RevokeAllByUser revokes all active refresh tokens for the given user.
func (r *Repo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, revokeAllByUserQuery, userID); err != nil {
		return postgres.MapError(err, "auth_token", userID)
	}
	return nil
}

const deleteExpiredQuery = `
DELETE FROM auth_tokens
WHERE expires_at < now() OR revoked_at IS NOT NULL`

// DeleteExpired removes all expired or revoked tokens from the database.
// Returns the count of deleted tokens. This is a maintenance operation.
func (r *Repo) DeleteExpired(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteExpiredQuery)
	if err != nil {
		return 0, postgres.MapError(err, "auth_token", uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}
