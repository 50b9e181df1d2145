package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/internal/service/facility"
)

// facilityService defines the minimal interface needed by FacilitiesHandler.
type facilityService interface {
	Create(ctx context.Context, input facility.CreateInput) (*domain.Facility, error)
	List(ctx context.Context, clientOrganization string) ([]*domain.Facility, error)
}

// FacilitiesHandler serves the /api/facilities endpoints.
type FacilitiesHandler struct {
	svc facilityService
	log *slog.Logger
}

// NewFacilitiesHandler creates a FacilitiesHandler.
func NewFacilitiesHandler(svc facilityService, logger *slog.Logger) *FacilitiesHandler {
	return &FacilitiesHandler{svc: svc, log: logger.With("handler", "facilities")}
}

type createFacilityRequest struct {
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

type facilityResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
	City           string `json:"city,omitempty"`
	Country        string `json:"country,omitempty"`
}

// Create handles POST /api/facilities.
func (h *FacilitiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := h.svc.Create(r.Context(), facility.CreateInput{
		Name:               req.Name,
		City:               req.City,
		Country:            req.Country,
		ClientOrganization: clientOrg(r),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFacilityResponse(f))
}

// List handles GET /api/facilities.
func (h *FacilitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.svc.List(r.Context(), clientOrg(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]facilityResponse, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, toFacilityResponse(f))
	}
	writeJSON(w, http.StatusOK, out)
}

func toFacilityResponse(f *domain.Facility) facilityResponse {
	return facilityResponse{
		ID:             f.ID.String(),
		OrganizationID: f.OrganizationID.String(),
		Name:           f.Name,
		City:           f.City,
		Country:        f.Country,
	}
}
