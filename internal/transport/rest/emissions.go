package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/internal/service/emission"
)

// emissionService defines the minimal interface needed by EmissionsHandler.
type emissionService interface {
	CreateRecord(ctx context.Context, input emission.CreateRecordInput) (*domain.EmissionRecord, error)
	ListRecords(ctx context.Context, input emission.ListRecordsInput) ([]*domain.EmissionRecord, int, error)
	DeleteRecord(ctx context.Context, input emission.DeleteRecordInput) error
}

// EmissionsHandler serves the /api/ghg-emissions endpoints.
type EmissionsHandler struct {
	svc emissionService
	log *slog.Logger
}

// NewEmissionsHandler creates an EmissionsHandler.
func NewEmissionsHandler(svc emissionService, logger *slog.Logger) *EmissionsHandler {
	return &EmissionsHandler{svc: svc, log: logger.With("handler", "emissions")}
}

type createEmissionRequest struct {
	Scope           string  `json:"scope"`
	Category        string  `json:"category"`
	FuelType        string  `json:"fuelType,omitempty"`
	FuelSubType     string  `json:"fuelSubType,omitempty"`
	Unit            string  `json:"unit,omitempty"`
	VehicleFuelType string  `json:"vehicleFuelType,omitempty"`
	LadenWeight     string  `json:"ladenWeight,omitempty"`
	Country         string  `json:"country,omitempty"`
	EnergyType      string  `json:"energyType,omitempty"`
	Quantity        *string `json:"quantity"`
	ReportingPeriod string  `json:"reportingPeriod"`
	FacilityID      *string `json:"facilityId,omitempty"`
}

type emissionResponse struct {
	ID              string  `json:"id"`
	OrganizationID  string  `json:"organizationId"`
	FacilityID      *string `json:"facilityId,omitempty"`
	Scope           string  `json:"scope"`
	Category        string  `json:"category"`
	Source          string  `json:"source"`
	ActivityData    string  `json:"activityData"`
	Unit            string  `json:"unit"`
	EmissionFactor  string  `json:"emissionFactor"`
	CO2Equivalent   string  `json:"co2Equivalent"`
	ReportingPeriod string  `json:"reportingPeriod"`
	CreatedBy       string  `json:"createdBy"`
	CreatedAt       string  `json:"createdAt"`
}

type listEmissionsResponse struct {
	Records []emissionResponse `json:"records"`
	Total   int                `json:"total"`
}

// Create handles POST /api/ghg-emissions.
func (h *EmissionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := toCreateInput(req, clientOrg(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.CreateRecord(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmissionResponse(rec))
}

// List handles GET /api/ghg-emissions.
func (h *EmissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := emission.ListRecordsInput{
		ClientOrganization: clientOrg(r),
	}

	if v := q.Get("scope"); v != "" {
		scope, ok := domain.ParseScope(v)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid scope")
			return
		}
		input.Scope = &scope
	}
	if v := q.Get("category"); v != "" {
		input.Category = &v
	}
	if v := q.Get("reportingPeriod"); v != "" {
		input.ReportingPeriod = &v
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		input.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		input.Offset = n
	}

	records, total, err := h.svc.ListRecords(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := listEmissionsResponse{
		Records: make([]emissionResponse, 0, len(records)),
		Total:   total,
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, toEmissionResponse(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/ghg-emissions/{id}.
func (h *EmissionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteRecord(r.Context(), emission.DeleteRecordInput{
		RecordID:           r.PathValue("id"),
		ClientOrganization: clientOrg(r),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCreateInput(req createEmissionRequest, client string) (emission.CreateRecordInput, error) {
	scope, ok := domain.ParseScope(req.Scope)
	if !ok && req.Scope != "" {
		return emission.CreateRecordInput{}, domain.NewValidationError("scope", "invalid scope")
	}

	form := emission.FormState{
		Scope:           scope,
		Category:        req.Category,
		FuelType:        req.FuelType,
		FuelSubType:     req.FuelSubType,
		Unit:            req.Unit,
		VehicleFuelType: req.VehicleFuelType,
		LadenWeight:     req.LadenWeight,
		Country:         req.Country,
		EnergyType:      req.EnergyType,
	}

	if req.Quantity != nil {
		qty, err := decimal.NewFromString(*req.Quantity)
		if err != nil {
			return emission.CreateRecordInput{}, domain.NewValidationError("quantity", "must be a number")
		}
		form.Quantity = &qty
	}

	input := emission.CreateRecordInput{
		Form:               form,
		ReportingPeriod:    req.ReportingPeriod,
		ClientOrganization: client,
	}

	if req.FacilityID != nil {
		id, err := uuid.Parse(*req.FacilityID)
		if err != nil {
			return emission.CreateRecordInput{}, domain.NewValidationError("facilityId", "must be a valid UUID")
		}
		input.FacilityID = &id
	}

	return input, nil
}

func toEmissionResponse(rec *domain.EmissionRecord) emissionResponse {
	resp := emissionResponse{
		ID:              rec.ID.String(),
		OrganizationID:  rec.OrganizationID.String(),
		Scope:           rec.Scope.String(),
		Category:        rec.Category,
		Source:          rec.Source,
		ActivityData:    rec.ActivityData.String(),
		Unit:            rec.Unit,
		EmissionFactor:  rec.EmissionFactor.String(),
		CO2Equivalent:   rec.CO2Equivalent.String(),
		ReportingPeriod: rec.ReportingPeriod,
		CreatedBy:       rec.CreatedBy.String(),
		CreatedAt:       rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if rec.FacilityID != nil {
		id := rec.FacilityID.String()
		resp.FacilityID = &id
	}
	return resp
}
