// Package facility implements the Facility repository using PostgreSQL.
package facility

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/carbonaegis/aegis-backend/internal/adapter/postgres"
	"github.com/carbonaegis/aegis-backend/internal/domain"
)

// Repo provides facility persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new facility repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createQuery = `
INSERT INTO facilities (id, organization_id, name, city, country, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, organization_id, name, city, country, created_at`

// Create inserts a new facility and returns the persisted row.
func (r *Repo) Create(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createQuery,
		f.ID, f.OrganizationID, f.Name, f.City, f.Country, f.CreatedAt)

	created, err := scanFacility(row)
	if err != nil {
		return nil, postgres.MapError(err, "facility", f.ID)
	}
	return created, nil
}

const listByOrganizationQuery = `
SELECT id, organization_id, name, city, country, created_at
FROM facilities
WHERE organization_id = $1
ORDER BY name ASC`

// ListByOrganization returns all facilities of one organization, by name.
func (r *Repo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.Facility, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByOrganizationQuery, orgID)
	if err != nil {
		return nil, postgres.MapError(err, "facility", orgID)
	}
	defer rows.Close()

	var out []*domain.Facility
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, postgres.MapError(err, "facility", orgID)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "facility", orgID)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFacility(row rowScanner) (*domain.Facility, error) {
	var f domain.Facility
	err := row.Scan(&f.ID, &f.OrganizationID, &f.Name, &f.City, &f.Country, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
