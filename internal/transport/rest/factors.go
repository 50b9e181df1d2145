package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/internal/service/factor"
)

// factorService defines the minimal interface needed by FactorsHandler.
type factorService interface {
	Resolve(ctx context.Context, input factor.ResolveInput) (*domain.EmissionFactor, error)
}

// FactorsHandler serves the /api/emission-factors endpoints. The same
// lookup is exposed twice: GET with query parameters and POST with a JSON
// body, for clients that cannot URL-encode factor names safely.
type FactorsHandler struct {
	svc factorService
	log *slog.Logger
}

// NewFactorsHandler creates a FactorsHandler.
func NewFactorsHandler(svc factorService, logger *slog.Logger) *FactorsHandler {
	return &FactorsHandler{svc: svc, log: logger.With("handler", "factors")}
}

type resolveFactorRequest struct {
	Scope           string `json:"scope"`
	Category        string `json:"category"`
	FuelType        string `json:"fuelType,omitempty"`
	FuelSubType     string `json:"fuelSubType,omitempty"`
	Unit            string `json:"unit,omitempty"`
	VehicleFuelType string `json:"vehicleFuelType,omitempty"`
	EnergyType      string `json:"energyType,omitempty"`
	Country         string `json:"country,omitempty"`
}

type factorResponse struct {
	ID       string `json:"id"`
	Scope    string `json:"scope"`
	Category string `json:"category"`
	Level1   string `json:"level1"`
	Level2   string `json:"level2,omitempty"`
	Level3   string `json:"level3,omitempty"`
	UOM      string `json:"uom"`
	Factor   string `json:"factor"`
	Year     int    `json:"year"`
}

// Get handles GET /api/emission-factors.
func (h *FactorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := resolveFactorRequest{
		Scope:           q.Get("scope"),
		Category:        q.Get("category"),
		FuelType:        q.Get("fuelType"),
		FuelSubType:     q.Get("fuelSubType"),
		Unit:            q.Get("unit"),
		VehicleFuelType: q.Get("vehicleFuelType"),
		EnergyType:      q.Get("energyType"),
		Country:         q.Get("country"),
	}
	h.resolve(w, r, req)
}

// Resolve handles POST /api/emission-factors.
func (h *FactorsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.resolve(w, r, req)
}

func (h *FactorsHandler) resolve(w http.ResponseWriter, r *http.Request, req resolveFactorRequest) {
	scope, ok := domain.ParseScope(req.Scope)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid scope")
		return
	}

	f, err := h.svc.Resolve(r.Context(), factor.ResolveInput{
		Scope:           scope,
		Category:        req.Category,
		FuelType:        req.FuelType,
		FuelSubType:     req.FuelSubType,
		Unit:            req.Unit,
		VehicleFuelType: req.VehicleFuelType,
		EnergyType:      req.EnergyType,
		Country:         req.Country,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, factorResponse{
		ID:       f.ID.String(),
		Scope:    f.Scope.String(),
		Category: f.Category,
		Level1:   f.Level1,
		Level2:   f.Level2,
		Level3:   f.Level3,
		UOM:      f.UOM,
		Factor:   f.Factor.String(),
		Year:     f.Year,
	})
}
