// Package organization implements the Organization repository using PostgreSQL.
package organization

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/carbonaegis/aegis-backend/internal/adapter/postgres"
	"github.com/carbonaegis/aegis-backend/internal/domain"
)

// Repo provides organization persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new organization repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createQuery = `
INSERT INTO organizations (id, name, industry, country, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, name, industry, country, created_at, updated_at`

// Create inserts a new organization and returns the persisted row.
func (r *Repo) Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createQuery,
		org.ID, org.Name, org.Industry, org.Country, org.CreatedAt, org.UpdatedAt)

	created, err := scanOrganization(row)
	if err != nil {
		return nil, postgres.MapError(err, "organization", org.ID)
	}
	return created, nil
}

const getByIDQuery = `
SELECT id, name, industry, country, created_at, updated_at
FROM organizations
WHERE id = $1`

// GetByID returns an organization by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	org, err := scanOrganization(q.QueryRow(ctx, getByIDQuery, id))
	if err != nil {
		return nil, postgres.MapError(err, "organization", id)
	}
	return org, nil
}

const listQuery = `
SELECT id, name, industry, country, created_at, updated_at
FROM organizations
ORDER BY name ASC`

// List returns all organizations ordered by name. Used by consultants and
// admins to pick a client organization.
func (r *Repo) List(ctx context.Context) ([]*domain.Organization, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listQuery)
	if err != nil {
		return nil, postgres.MapError(err, "organization", uuid.Nil)
	}
	defer rows.Close()

	var out []*domain.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, postgres.MapError(err, "organization", uuid.Nil)
		}
		out = append(out, org)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "organization", uuid.Nil)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrganization(row rowScanner) (*domain.Organization, error) {
	var org domain.Organization
	err := row.Scan(&org.ID, &org.Name, &org.Industry, &org.Country,
		&org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &org, nil
}
