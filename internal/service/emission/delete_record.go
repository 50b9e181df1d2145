package emission

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/pkg/ctxutil"
)

// DeleteRecordInput holds parameters for the DeleteRecord operation.
type DeleteRecordInput struct {
	RecordID string
	// ClientOrganization is the consultant's selected client.
	ClientOrganization string
}

// Validate validates the delete input.
func (i DeleteRecordInput) Validate() error {
	if _, err := uuid.Parse(i.RecordID); err != nil {
		return domain.NewValidationError("record_id", "must be a valid UUID")
	}
	return nil
}

// DeleteRecord removes one emission record. Records are immutable, so
// corrections are made by deleting and re-entering. The delete is scoped to
// the acting organization; a record belonging to another tenant yields
// ErrNotFound rather than leaking its existence.
func (s *Service) DeleteRecord(ctx context.Context, input DeleteRecordInput) error {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	orgID, err := actingOrganization(identity, input.ClientOrganization)
	if err != nil {
		return err
	}

	recordID, _ := uuid.Parse(input.RecordID)

	if err := s.records.Delete(ctx, recordID, orgID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "emission record deleted",
		slog.String("record_id", recordID.String()),
		slog.String("organization_id", orgID.String()))

	return nil
}
