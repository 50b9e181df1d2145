// Package factor implements the emission-factor repository using PostgreSQL.
package factor

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/carbonaegis/aegis-backend/internal/adapter/postgres"
	"github.com/carbonaegis/aegis-backend/internal/domain"
)

// Repo provides emission-factor persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new factor repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const factorColumns = `id, scope, category, level1, level2, level3, uom, factor, year`

// Lookup returns the factor matching the query coordinates exactly.
// Empty levels match rows with empty values, not "any value". A zero Year
// matches any dataset year, preferring the most recent.
// Returns domain.ErrFactorNotFound when no row matches.
func (r *Repo) Lookup(ctx context.Context, query domain.FactorQuery) (*domain.EmissionFactor, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sb := builder.
		Select("id", "scope", "category", "level1", "level2", "level3", "uom", "factor", "year").
		From("emission_factors").
		Where(squirrel.Eq{
			"scope":    query.Scope.String(),
			"category": query.Category,
			"level1":   query.Level1,
			"level2":   query.Level2,
			"level3":   query.Level3,
			"uom":      query.UOM,
		}).
		OrderBy("year DESC").
		Limit(1)

	if query.Year != 0 {
		sb = sb.Where(squirrel.Eq{"year": query.Year})
	}

	sql, args, err := sb.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "emission_factor", query.Category)
	}

	var f domain.EmissionFactor
	var scope string
	err = q.QueryRow(ctx, sql, args...).Scan(
		&f.ID, &scope, &f.Category, &f.Level1, &f.Level2, &f.Level3,
		&f.UOM, &f.Factor, &f.Year)
	if err != nil {
		mapped := postgres.MapError(err, "emission_factor", query.Category)
		if errors.Is(mapped, domain.ErrNotFound) {
			return nil, domain.ErrFactorNotFound
		}
		return nil, mapped
	}
	f.Scope = domain.Scope(scope)
	return &f, nil
}

const upsertQuery = `
INSERT INTO emission_factors (` + factorColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (scope, category, level1, level2, level3, uom, year)
DO UPDATE SET factor = EXCLUDED.factor`

// Upsert inserts a factor row, replacing the factor value when the same
// coordinate set and year already exists. Used by the dataset seeder.
func (r *Repo) Upsert(ctx context.Context, f *domain.EmissionFactor) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}

	_, err := q.Exec(ctx, upsertQuery,
		f.ID, f.Scope.String(), f.Category, f.Level1, f.Level2, f.Level3,
		f.UOM, f.Factor, f.Year)
	if err != nil {
		return postgres.MapError(err, "emission_factor", f.Category)
	}
	return nil
}

const countByYearQuery = `
SELECT COUNT(*) FROM emission_factors WHERE year = $1`

// CountByYear returns the number of factor rows for one dataset year.
func (r *Repo) CountByYear(ctx context.Context, year int) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countByYearQuery, year).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "emission_factor", year)
	}
	return count, nil
}
