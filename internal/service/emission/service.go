// Package emission implements the emission entry workflow: category-driven
// validation, factor resolution, CO2e computation, and persistence.
package emission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/internal/service/factor"
	"github.com/carbonaegis/aegis-backend/pkg/ctxutil"
)

const DefaultLimit = 50

type emissionRepo interface {
	Create(ctx context.Context, rec *domain.EmissionRecord) (*domain.EmissionRecord, error)
	List(ctx context.Context, f Filter) ([]*domain.EmissionRecord, int, error)
	Delete(ctx context.Context, id, orgID uuid.UUID) error
}

type factorResolver interface {
	Resolve(ctx context.Context, input factor.ResolveInput) (*domain.EmissionFactor, error)
}

// Filter defines parameters for listing emission records.
type Filter struct {
	OrganizationID  uuid.UUID
	Scope           *domain.Scope
	Category        *string
	ReportingPeriod *string
	Limit           int
	Offset          int
}

// Service provides emission record operations.
type Service struct {
	records  emissionRepo
	resolver factorResolver
	// legacyZeroFill preserves the historical behavior of saving a record
	// with a zero factor when the lookup finds nothing.
	legacyZeroFill bool
	maxLimit       int
	log            *slog.Logger
}

// NewService creates a new emission service.
func NewService(
	log *slog.Logger,
	records emissionRepo,
	resolver factorResolver,
	legacyZeroFill bool,
	maxLimit int,
) *Service {
	return &Service{
		records:        records,
		resolver:       resolver,
		legacyZeroFill: legacyZeroFill,
		maxLimit:       maxLimit,
		log:            log.With("service", "emission"),
	}
}

// actingOrganization determines which organization an operation applies to.
// Members always act on their own organization. Consultants must have
// selected a concrete client; placeholder selections ("all", "none", empty)
// yield domain.ErrClientNotSelected.
func actingOrganization(id ctxutil.Identity, clientSelection string) (uuid.UUID, error) {
	if id.Role != domain.RoleConsultant.String() {
		return id.OrganizationID, nil
	}
	orgID, ok := concreteClient(clientSelection)
	if !ok {
		return uuid.Nil, fmt.Errorf("consultant %s: %w", id.UserID, domain.ErrClientNotSelected)
	}
	return orgID, nil
}
