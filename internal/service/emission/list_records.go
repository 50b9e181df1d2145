package emission

import (
	"context"
	"fmt"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/pkg/ctxutil"
)

// ListRecords returns a filtered, paginated list of emission records for the
// acting organization, plus the total match count.
func (s *Service) ListRecords(ctx context.Context, input ListRecordsInput) ([]*domain.EmissionRecord, int, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	orgID, err := actingOrganization(identity, input.ClientOrganization)
	if err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	records, total, err := s.records.List(ctx, Filter{
		OrganizationID:  orgID,
		Scope:           input.Scope,
		Category:        input.Category,
		ReportingPeriod: input.ReportingPeriod,
		Limit:           limit,
		Offset:          input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list emission records: %w", err)
	}

	return records, total, nil
}
