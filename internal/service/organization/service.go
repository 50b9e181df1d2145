// Package organization exposes the client directory consultants pick from.
package organization

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/pkg/ctxutil"
)

type orgRepo interface {
	List(ctx context.Context) ([]*domain.Organization, error)
}

// Service provides organization directory operations.
type Service struct {
	orgs orgRepo
	log  *slog.Logger
}

// NewService creates a new organization service.
func NewService(log *slog.Logger, orgs orgRepo) *Service {
	return &Service{
		orgs: orgs,
		log:  log.With("service", "organization"),
	}
}

// ListClients returns every organization. Only consultants and admins may
// browse the directory; members see only their own tenant and have no use
// for it.
func (s *Service) ListClients(ctx context.Context) ([]*domain.Organization, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	role := domain.Role(identity.Role)
	if role != domain.RoleConsultant && role != domain.RoleAdmin {
		return nil, fmt.Errorf("user %s: %w", identity.UserID, domain.ErrForbidden)
	}

	orgs, err := s.orgs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}
