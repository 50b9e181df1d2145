// Package rest serves the HTTP API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/carbonaegis/aegis-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// validationResponse carries per-field messages for 400 responses.
type validationResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// handleError maps domain errors to HTTP statuses. Factor misses are 422:
// the request was well-formed but no conversion factor exists for the
// selection. A missing client selection is 403.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Error:  "validation failed",
			Fields: vErr.Errors,
		})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrClientNotSelected):
		writeError(w, http.StatusForbidden, "no client organization selected")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrFactorNotFound):
		writeError(w, http.StatusUnprocessableEntity, "no emission factor matches the selection")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// clientOrg extracts the consultant's client organization selection from the
// X-Client-Org header, falling back to the clientOrg query parameter.
func clientOrg(r *http.Request) string {
	if v := r.Header.Get("X-Client-Org"); v != "" {
		return v
	}
	return r.URL.Query().Get("clientOrg")
}
