package factor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/carbonaegis/aegis-backend/internal/adapter/postgres/factor"
	"github.com/carbonaegis/aegis-backend/internal/adapter/postgres/testhelper"
	"github.com/carbonaegis/aegis-backend/internal/domain"
)

func newRepo(t *testing.T) (*factor.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return factor.New(pool), pool
}

func TestRepo_Lookup_ExactMatch(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedFactor(t, pool, domain.EmissionFactor{
		Scope:    domain.Scope1,
		Category: "Fuels",
		Level1:   "Liquid fuels",
		Level2:   "Diesel (100% mineral diesel)",
		UOM:      "litres",
		Factor:   decimal.RequireFromString("2.68"),
		Year:     2025,
	})

	got, err := repo.Lookup(ctx, domain.FactorQuery{
		Scope:    domain.Scope1,
		Category: "Fuels",
		Level1:   "Liquid fuels",
		Level2:   "Diesel (100% mineral diesel)",
		UOM:      "litres",
		Year:     2025,
	})
	if err != nil {
		t.Fatalf("Lookup: unexpected error: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, seeded.ID)
	}
	if !got.Factor.Equal(seeded.Factor) {
		t.Errorf("Factor mismatch: got %s, want %s", got.Factor, seeded.Factor)
	}
}

// Empty levels are coordinates, not wildcards: a query with an empty level2
// only matches rows whose level2 is empty.
func TestRepo_Lookup_EmptyLevelIsExact(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	testhelper.SeedFactor(t, pool, domain.EmissionFactor{
		Scope:    domain.Scope2,
		Category: "Heat and steam",
		Level1:   "District heat",
		Level2:   "Onsite",
		UOM:      "kWh",
		Factor:   decimal.RequireFromString("0.17"),
		Year:     2025,
	})

	_, err := repo.Lookup(ctx, domain.FactorQuery{
		Scope:    domain.Scope2,
		Category: "Heat and steam",
		Level1:   "District heat",
		UOM:      "kWh",
		Year:     2025,
	})
	if !errors.Is(err, domain.ErrFactorNotFound) {
		t.Fatalf("expected ErrFactorNotFound, got %v", err)
	}
}

func TestRepo_Lookup_NoMatch(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.Lookup(ctx, domain.FactorQuery{
		Scope:    domain.Scope1,
		Category: "Fuels",
		Level1:   "Imaginary fuel",
		UOM:      "litres",
		Year:     2025,
	})
	if !errors.Is(err, domain.ErrFactorNotFound) {
		t.Fatalf("expected ErrFactorNotFound, got %v", err)
	}
}

// A zero Year picks the most recent dataset.
func TestRepo_Lookup_ZeroYearPrefersLatest(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	coords := domain.EmissionFactor{
		Scope:    domain.Scope1,
		Category: "Bioenergy",
		Level1:   "Biofuel",
		Level2:   "Bioethanol",
		UOM:      "litres",
	}

	old := coords
	old.Factor = decimal.RequireFromString("0.02")
	old.Year = 2023
	testhelper.SeedFactor(t, pool, old)

	latest := coords
	latest.Factor = decimal.RequireFromString("0.01")
	latest.Year = 2024
	testhelper.SeedFactor(t, pool, latest)

	got, err := repo.Lookup(ctx, domain.FactorQuery{
		Scope:    coords.Scope,
		Category: coords.Category,
		Level1:   coords.Level1,
		Level2:   coords.Level2,
		UOM:      coords.UOM,
	})
	if err != nil {
		t.Fatalf("Lookup: unexpected error: %v", err)
	}
	if got.Year != 2024 {
		t.Errorf("Year: got %d, want 2024", got.Year)
	}
}

func TestRepo_Upsert_ReplacesFactorValue(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	f := &domain.EmissionFactor{
		Scope:    domain.Scope1,
		Category: "Refrigerant & other",
		Level1:   "Kyoto protocol - standard",
		Level2:   "R404A",
		UOM:      "kg",
		Factor:   decimal.RequireFromString("3921.6"),
		Year:     2026,
	}
	if err := repo.Upsert(ctx, f); err != nil {
		t.Fatalf("Upsert: unexpected error: %v", err)
	}

	updated := *f
	updated.Factor = decimal.RequireFromString("3922")
	if err := repo.Upsert(ctx, &updated); err != nil {
		t.Fatalf("second Upsert: unexpected error: %v", err)
	}

	got, err := repo.Lookup(ctx, domain.FactorQuery{
		Scope:    f.Scope,
		Category: f.Category,
		Level1:   f.Level1,
		Level2:   f.Level2,
		UOM:      f.UOM,
		Year:     f.Year,
	})
	if err != nil {
		t.Fatalf("Lookup after upsert: %v", err)
	}
	if !got.Factor.Equal(updated.Factor) {
		t.Errorf("Factor: got %s, want %s", got.Factor, updated.Factor)
	}

	count, err := repo.CountByYear(ctx, 2026)
	if err != nil {
		t.Fatalf("CountByYear: %v", err)
	}
	if count != 1 {
		t.Errorf("count: got %d, want 1 (upsert must not duplicate)", count)
	}
}
