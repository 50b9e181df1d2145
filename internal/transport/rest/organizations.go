package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/carbonaegis/aegis-backend/internal/domain"
)

// organizationService defines the minimal interface needed by
// OrganizationsHandler.
type organizationService interface {
	ListClients(ctx context.Context) ([]*domain.Organization, error)
}

// OrganizationsHandler serves the client directory for consultants.
type OrganizationsHandler struct {
	svc organizationService
	log *slog.Logger
}

// NewOrganizationsHandler creates an OrganizationsHandler.
func NewOrganizationsHandler(svc organizationService, logger *slog.Logger) *OrganizationsHandler {
	return &OrganizationsHandler{svc: svc, log: logger.With("handler", "organizations")}
}

type organizationResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Industry *string `json:"industry,omitempty"`
	Country  *string `json:"country,omitempty"`
}

// List handles GET /api/organizations.
func (h *OrganizationsHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.svc.ListClients(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]organizationResponse, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, organizationResponse{
			ID:       org.ID.String(),
			Name:     org.Name,
			Industry: org.Industry,
			Country:  org.Country,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
