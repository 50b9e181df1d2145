package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/pkg/ctxutil"
)

type recordSource interface {
	ListAllForOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.EmissionRecord, error)
}

// Service computes dashboard aggregates over an organization's records.
type Service struct {
	records recordSource
	log     *slog.Logger
}

// NewService creates a new report service.
func NewService(log *slog.Logger, records recordSource) *Service {
	return &Service{
		records: records,
		log:     log.With("service", "report"),
	}
}

// Dashboard is the full aggregate set served to the overview page.
type Dashboard struct {
	Scopes        ScopeSummary
	Months        []MonthSummary
	Categories    []CategoryTotal
	LargestSource *CategoryTotal
	TopSources    []CategoryTotal
}

// Input selects the organization to aggregate. Consultants pass the client
// organization ID; members always get their own.
type Input struct {
	ClientOrganization string
}

// BuildDashboard loads the organization's records and computes every
// dashboard aggregate in one pass over the data.
func (s *Service) BuildDashboard(ctx context.Context, input Input) (*Dashboard, error) {
	orgID, err := s.actingOrganization(ctx, input.ClientOrganization)
	if err != nil {
		return nil, err
	}

	records, err := s.records.ListAllForOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("load records for %s: %w", orgID, err)
	}

	categories := SummarizeByCategory(records)

	d := &Dashboard{
		Scopes:     SummarizeByScope(records),
		Months:     SummarizeByMonth(records),
		Categories: categories,
		TopSources: TopSources(categories, 3),
	}
	if largest, ok := LargestSource(categories); ok {
		d.LargestSource = &largest
	}

	return d, nil
}

// actingOrganization mirrors the emission service's tenancy rule: members
// act on their own organization, consultants on a concretely selected client.
func (s *Service) actingOrganization(ctx context.Context, clientSelection string) (uuid.UUID, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	if identity.Role != domain.RoleConsultant.String() {
		return identity.OrganizationID, nil
	}
	orgID, err := uuid.Parse(clientSelection)
	if err != nil || orgID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("consultant %s: %w", identity.UserID, domain.ErrClientNotSelected)
	}
	return orgID, nil
}
