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
	"github.com/carbonaegis/aegis-backend/internal/transport/middleware"
)

// factorStore is the write side of the factor reference table.
type factorStore interface {
	Upsert(ctx context.Context, f *domain.EmissionFactor) error
	CountByYear(ctx context.Context, year int) (int, error)
}

// AdminHandler serves admin REST endpoints for factor dataset management.
type AdminHandler struct {
	factors factorStore
	log     *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(factors factorStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		factors: factors,
		log:     logger.With("handler", "admin"),
	}
}

type upsertFactorRequest struct {
	Scope    string `json:"scope"`
	Category string `json:"category"`
	Level1   string `json:"level1"`
	Level2   string `json:"level2,omitempty"`
	Level3   string `json:"level3,omitempty"`
	UOM      string `json:"uom"`
	Factor   string `json:"factor"`
	Year     int    `json:"year"`
}

// UpsertFactor inserts or replaces one factor reference row.
// POST /api/admin/emission-factors
func (h *AdminHandler) UpsertFactor(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req upsertFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scope, ok := domain.ParseScope(req.Scope)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid scope")
		return
	}
	value, err := decimal.NewFromString(req.Factor)
	if err != nil || value.IsNegative() {
		writeError(w, http.StatusBadRequest, "factor must be a non-negative number")
		return
	}
	if req.Category == "" || req.UOM == "" || req.Year == 0 {
		writeError(w, http.StatusBadRequest, "category, uom and year are required")
		return
	}

	f := &domain.EmissionFactor{
		ID:       uuid.New(),
		Scope:    scope,
		Category: req.Category,
		Level1:   req.Level1,
		Level2:   req.Level2,
		Level3:   req.Level3,
		UOM:      req.UOM,
		Factor:   value,
		Year:     req.Year,
	}
	if err := h.factors.Upsert(r.Context(), f); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "factor upserted",
		slog.String("category", f.Category),
		slog.String("level1", f.Level1),
		slog.Int("year", f.Year))

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// FactorCount reports how many factor rows one dataset year carries.
// GET /api/admin/emission-factors/count?year=2025
func (h *AdminHandler) FactorCount(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	count, err := h.factors.CountByYear(r.Context(), year)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return false
	}
	return true
}
