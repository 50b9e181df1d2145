// Package factor resolves emission conversion factors for activity entries.
//
// The resolver translates the fields of an emission form into the
// {level1, level2, level3, uom} coordinates of the factor reference table.
// The translation is category-specific; see buildQuery for the aliasing rules.
package factor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carbonaegis/aegis-backend/internal/domain"
)

type factorRepo interface {
	Lookup(ctx context.Context, q domain.FactorQuery) (*domain.EmissionFactor, error)
}

// Service resolves emission factors from the reference table.
type Service struct {
	factors factorRepo
	year    int
	log     *slog.Logger
}

// NewService creates a factor resolver bound to one dataset vintage.
func NewService(log *slog.Logger, factors factorRepo, year int) *Service {
	return &Service{
		factors: factors,
		year:    year,
		log:     log.With("service", "factor"),
	}
}

// ResolveInput carries the form selections relevant to factor lookup.
type ResolveInput struct {
	Scope           domain.Scope
	Category        string
	FuelType        string
	FuelSubType     string
	Unit            string
	VehicleFuelType string
	EnergyType      string
	Country         string
}

// Resolve returns the conversion factor for the given selections.
// Returns domain.ErrFactorNotFound when the reference table has no match;
// a missing factor is never coerced to zero here.
func (s *Service) Resolve(ctx context.Context, input ResolveInput) (*domain.EmissionFactor, error) {
	if !input.Scope.IsValid() {
		return nil, domain.NewValidationError("scope", "invalid scope")
	}
	if input.Category == "" {
		return nil, domain.NewValidationError("category", "required")
	}

	q := s.buildQuery(input)

	f, err := s.factors.Lookup(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("lookup factor %s/%s/%s/%s: %w",
			q.Category, q.Level1, q.Level2, q.UOM, err)
	}

	s.log.DebugContext(ctx, "factor resolved",
		slog.String("category", q.Category),
		slog.String("level1", q.Level1),
		slog.String("level2", q.Level2),
		slog.String("uom", q.UOM),
		slog.String("factor", f.Factor.String()),
	)

	return f, nil
}

// buildQuery maps form fields to factor-table coordinates.
//
// Most categories: level1 = fuel type, level2 = fuel sub-type.
// Two fields are re-routed for specific categories, matching how the factor
// dataset is keyed:
//   - Passenger vehicles: the vehicle fuel type (petrol/diesel/...) is
//     level1, not the vehicle category held in the fuelType field.
//   - Heat and steam: the energy type (onsite/district) is level1.
//   - UK electricity: the country selection is level1.
//   - Delivery vehicles: level2 is pinned to the "HGV (all diesel)" dataset
//     row regardless of the selected sub-type.
func (s *Service) buildQuery(input ResolveInput) domain.FactorQuery {
	q := domain.FactorQuery{
		Scope:    input.Scope,
		Category: input.Category,
		Level1:   input.FuelType,
		Level2:   input.FuelSubType,
		UOM:      input.Unit,
		Year:     s.year,
	}

	switch input.Category {
	case "Delivery vehicles":
		q.Level2 = "HGV (all diesel)"
	case "Passenger vehicles":
		q.Level1 = input.VehicleFuelType
	case "Heat and steam":
		q.Level1 = input.EnergyType
	case "UK electricity":
		q.Level1 = input.Country
	}

	return q
}
