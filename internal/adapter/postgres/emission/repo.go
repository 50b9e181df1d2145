// Package emission implements the EmissionRecord repository using PostgreSQL.
package emission

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/carbonaegis/aegis-backend/internal/adapter/postgres"
	"github.com/carbonaegis/aegis-backend/internal/domain"
	emissionsvc "github.com/carbonaegis/aegis-backend/internal/service/emission"
)

// Repo provides emission-record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new emission record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const recordColumns = `id, organization_id, facility_id, scope, category, source,
activity_data, unit, emission_factor, co2_equivalent, reporting_period,
created_by, created_at`

const createQuery = `
INSERT INTO ghg_emissions (id, organization_id, facility_id, scope, category,
	source, activity_data, unit, emission_factor, co2_equivalent,
	reporting_period, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + recordColumns

// Create inserts a new emission record and returns the persisted row.
func (r *Repo) Create(ctx context.Context, rec *domain.EmissionRecord) (*domain.EmissionRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	row := q.QueryRow(ctx, createQuery,
		rec.ID, rec.OrganizationID, rec.FacilityID, rec.Scope.String(),
		rec.Category, rec.Source, rec.ActivityData, rec.Unit,
		rec.EmissionFactor, rec.CO2Equivalent, rec.ReportingPeriod,
		rec.CreatedBy, rec.CreatedAt)

	created, err := scanRecord(row)
	if err != nil {
		return nil, postgres.MapError(err, "ghg_emission", rec.ID)
	}
	return created, nil
}

// List returns records matching the filter, newest first, plus the total
// count for pagination.
func (r *Repo) List(ctx context.Context, f emissionsvc.Filter) ([]*domain.EmissionRecord, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := squirrel.And{squirrel.Eq{"organization_id": f.OrganizationID}}
	if f.Scope != nil {
		where = append(where, squirrel.Eq{"scope": f.Scope.String()})
	}
	if f.Category != nil {
		where = append(where, squirrel.Eq{"category": *f.Category})
	}
	if f.ReportingPeriod != nil {
		where = append(where, squirrel.Eq{"reporting_period": *f.ReportingPeriod})
	}

	countSQL, countArgs, err := builder.
		Select("COUNT(*)").
		From("ghg_emissions").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, postgres.MapError(err, "ghg_emission", f.OrganizationID)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "ghg_emission", f.OrganizationID)
	}

	listSQL, listArgs, err := builder.
		Select("id", "organization_id", "facility_id", "scope", "category",
			"source", "activity_data", "unit", "emission_factor",
			"co2_equivalent", "reporting_period", "created_by", "created_at").
		From("ghg_emissions").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, postgres.MapError(err, "ghg_emission", f.OrganizationID)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "ghg_emission", f.OrganizationID)
	}
	defer rows.Close()

	var out []*domain.EmissionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, postgres.MapError(err, "ghg_emission", f.OrganizationID)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "ghg_emission", f.OrganizationID)
	}

	return out, total, nil
}

const listAllQuery = `
SELECT ` + recordColumns + `
FROM ghg_emissions
WHERE organization_id = $1
ORDER BY reporting_period ASC, created_at ASC`

// ListAllForOrganization returns every record of one organization, ordered by
// reporting period. Used by the reporting aggregates.
func (r *Repo) ListAllForOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.EmissionRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listAllQuery, orgID)
	if err != nil {
		return nil, postgres.MapError(err, "ghg_emission", orgID)
	}
	defer rows.Close()

	var out []*domain.EmissionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, postgres.MapError(err, "ghg_emission", orgID)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "ghg_emission", orgID)
	}
	return out, nil
}

const deleteQuery = `
DELETE FROM ghg_emissions
WHERE id = $1 AND organization_id = $2`

// Delete removes one record, scoped to its organization. Returns
// domain.ErrNotFound when no row matched.
func (r *Repo) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteQuery, id, orgID)
	if err != nil {
		return postgres.MapError(err, "ghg_emission", id)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.EmissionRecord, error) {
	var (
		rec   domain.EmissionRecord
		scope string
	)
	err := row.Scan(&rec.ID, &rec.OrganizationID, &rec.FacilityID, &scope,
		&rec.Category, &rec.Source, &rec.ActivityData, &rec.Unit,
		&rec.EmissionFactor, &rec.CO2Equivalent, &rec.ReportingPeriod,
		&rec.CreatedBy, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.Scope = domain.Scope(scope)
	return &rec, nil
}
