package emission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/internal/service/factor"
	"github.com/carbonaegis/aegis-backend/pkg/ctxutil"
)

// CreateRecord validates an emission entry, resolves its conversion factor,
// computes the CO2 equivalent, and persists the record.
//
// The organization the record belongs to is determined before any lookup or
// write: a consultant without a concrete client selection fails fast with
// domain.ErrClientNotSelected.
func (s *Service) CreateRecord(ctx context.Context, input CreateRecordInput) (*domain.EmissionRecord, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	orgID, err := actingOrganization(identity, input.ClientOrganization)
	if err != nil {
		return nil, err
	}

	factorValue, err := s.resolveFactor(ctx, input.Form)
	if err != nil {
		return nil, err
	}

	// Both operands are known non-nil here: quantity was validated and an
	// unresolved factor either errored out or was zero-filled above.
	co2e := input.Form.Quantity.Mul(factorValue)

	rec, err := s.records.Create(ctx, &domain.EmissionRecord{
		ID:              uuid.New(),
		OrganizationID:  orgID,
		FacilityID:      input.FacilityID,
		Scope:           input.Form.Scope,
		Category:        input.Form.Category,
		Source:          sourceFor(input.Form),
		ActivityData:    *input.Form.Quantity,
		Unit:            input.Form.Unit,
		EmissionFactor:  factorValue,
		CO2Equivalent:   co2e,
		ReportingPeriod: input.ReportingPeriod,
		CreatedBy:       identity.UserID,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create emission record: %w", err)
	}

	s.log.InfoContext(ctx, "emission record created",
		slog.String("record_id", rec.ID.String()),
		slog.String("organization_id", orgID.String()),
		slog.String("category", rec.Category),
		slog.String("co2e_kg", rec.CO2Equivalent.String()),
	)

	return rec, nil
}

// resolveFactor resolves the conversion factor for the form selections.
// When no factor matches: errors out by default, or returns zero if the
// service was configured for legacy zero-fill compatibility.
func (s *Service) resolveFactor(ctx context.Context, form FormState) (decimal.Decimal, error) {
	f, err := s.resolver.Resolve(ctx, factor.ResolveInput{
		Scope:           form.Scope,
		Category:        form.Category,
		FuelType:        form.FuelType,
		FuelSubType:     form.FuelSubType,
		Unit:            form.Unit,
		VehicleFuelType: form.VehicleFuelType,
		EnergyType:      form.EnergyType,
		Country:         form.Country,
	})
	if err != nil {
		if errors.Is(err, domain.ErrFactorNotFound) && s.legacyZeroFill {
			s.log.WarnContext(ctx, "no factor matched, zero-filling (legacy mode)",
				slog.String("category", form.Category),
				slog.String("fuel_type", form.FuelType),
			)
			return decimal.Zero, nil
		}
		return decimal.Decimal{}, fmt.Errorf("resolve factor: %w", err)
	}
	return f.Factor, nil
}

// sourceFor picks the record's source label from the most specific
// selection available: sub-type, then energy type, then fuel type.
func sourceFor(form FormState) string {
	switch {
	case form.FuelSubType != "":
		return form.FuelSubType
	case form.EnergyType != "":
		return form.EnergyType
	case form.FuelType != "":
		return form.FuelType
	default:
		return ""
	}
}
