// Package facility manages the physical locations emissions are attributed to.
package facility

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/pkg/ctxutil"
)

type facilityRepo interface {
	Create(ctx context.Context, f *domain.Facility) (*domain.Facility, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.Facility, error)
}

// Service provides facility operations.
type Service struct {
	facilities facilityRepo
	log        *slog.Logger
}

// NewService creates a new facility service.
func NewService(log *slog.Logger, facilities facilityRepo) *Service {
	return &Service{
		facilities: facilities,
		log:        log.With("service", "facility"),
	}
}

// CreateInput carries the fields for a new facility.
type CreateInput struct {
	Name    string
	City    string
	Country string
	// ClientOrganization is the consultant's client selection, ignored for
	// members.
	ClientOrganization string
}

// Validate checks the input fields.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	i.Name = strings.TrimSpace(i.Name)
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must be at most 200 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Create adds a facility to the acting organization.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Facility, error) {
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

	now := time.Now()
	created, err := s.facilities.Create(ctx, &domain.Facility{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           input.Name,
		City:           strings.TrimSpace(input.City),
		Country:        strings.TrimSpace(input.Country),
		CreatedAt:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("create facility: %w", err)
	}

	s.log.InfoContext(ctx, "facility created",
		slog.String("facility_id", created.ID.String()),
		slog.String("organization_id", orgID.String()))

	return created, nil
}

// List returns the acting organization's facilities.
func (s *Service) List(ctx context.Context, clientOrganization string) ([]*domain.Facility, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	orgID, err := actingOrganization(identity, clientOrganization)
	if err != nil {
		return nil, err
	}

	facilities, err := s.facilities.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list facilities for %s: %w", orgID, err)
	}
	return facilities, nil
}

// actingOrganization applies the tenancy rule: members act on their own
// organization, consultants on a concretely selected client.
func actingOrganization(id ctxutil.Identity, clientSelection string) (uuid.UUID, error) {
	if id.Role != domain.RoleConsultant.String() {
		return id.OrganizationID, nil
	}
	orgID, err := uuid.Parse(clientSelection)
	if err != nil || orgID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("consultant %s: %w", id.UserID, domain.ErrClientNotSelected)
	}
	return orgID, nil
}
