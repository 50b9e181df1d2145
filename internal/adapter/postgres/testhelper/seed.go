package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/carbonaegis/aegis-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedOrganization creates an organization row and returns it.
func SeedOrganization(t *testing.T, pool *pgxpool.Pool) domain.Organization {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	org := domain.Organization{
		ID:        uuid.New(),
		Name:      "Test Org " + uniqueSuffix(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO organizations (id, name, industry, country, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		org.ID, org.Name, org.Industry, org.Country, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedOrganization: %v", err)
	}

	return org
}

// SeedUser creates a user in the given organization and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool, orgID uuid.UUID, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Email:          "testuser-" + suffix + "@example.com",
		Name:           "Test User " + suffix,
		PasswordHash:   "$2a$04$testhashtesthashtesthash",
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, organization_id, email, name, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.OrganizationID, user.Email, user.Name,
		user.PasswordHash, user.Role.String(), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedFactor creates an emission-factor row and returns it.
func SeedFactor(t *testing.T, pool *pgxpool.Pool, f domain.EmissionFactor) domain.EmissionFactor {
	t.Helper()
	ctx := context.Background()

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Factor.IsZero() {
		f.Factor = decimal.NewFromFloat(1.0)
	}
	if f.Year == 0 {
		f.Year = 2025
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO emission_factors (id, scope, category, level1, level2, level3, uom, factor, year)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		f.ID, f.Scope.String(), f.Category, f.Level1, f.Level2, f.Level3,
		f.UOM, f.Factor, f.Year,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFactor: %v", err)
	}

	return f
}
