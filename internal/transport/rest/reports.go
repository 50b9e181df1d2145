package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/carbonaegis/aegis-backend/internal/service/report"
)

// reportService defines the minimal interface needed by ReportsHandler.
type reportService interface {
	BuildDashboard(ctx context.Context, input report.Input) (*report.Dashboard, error)
}

// ReportsHandler serves the /api/reports endpoints. Every endpoint is a
// projection of the same dashboard aggregate, so clients can fetch only
// the slice they render.
type ReportsHandler struct {
	svc reportService
	log *slog.Logger
}

// NewReportsHandler creates a ReportsHandler.
func NewReportsHandler(svc reportService, logger *slog.Logger) *ReportsHandler {
	return &ReportsHandler{svc: svc, log: logger.With("handler", "reports")}
}

type scopeSummaryResponse struct {
	Scope1 string `json:"scope1"`
	Scope2 string `json:"scope2"`
	Scope3 string `json:"scope3"`
	Total  string `json:"total"`
}

type monthSummaryResponse struct {
	Month  string `json:"month"`
	Scope1 string `json:"scope1"`
	Scope2 string `json:"scope2"`
	Scope3 string `json:"scope3"`
	Total  string `json:"total"`
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type dashboardResponse struct {
	Scopes        scopeSummaryResponse    `json:"scopes"`
	Months        []monthSummaryResponse  `json:"months"`
	Categories    []categoryTotalResponse `json:"categories"`
	LargestSource *categoryTotalResponse  `json:"largestSource,omitempty"`
	TopSources    []categoryTotalResponse `json:"topSources"`
}

// Dashboard handles GET /api/reports/dashboard.
func (h *ReportsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := h.build(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toDashboardResponse(d))
}

// ScopeSummary handles GET /api/reports/scope-summary.
func (h *ReportsHandler) ScopeSummary(w http.ResponseWriter, r *http.Request) {
	d, ok := h.build(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toScopeSummaryResponse(d.Scopes))
}

// Monthly handles GET /api/reports/monthly.
func (h *ReportsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	d, ok := h.build(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toMonthResponses(d.Months))
}

// TopSources handles GET /api/reports/top-sources.
func (h *ReportsHandler) TopSources(w http.ResponseWriter, r *http.Request) {
	d, ok := h.build(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponses(d.TopSources))
}

func (h *ReportsHandler) build(w http.ResponseWriter, r *http.Request) (*report.Dashboard, bool) {
	d, err := h.svc.BuildDashboard(r.Context(), report.Input{
		ClientOrganization: clientOrg(r),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, false
	}
	return d, true
}

func toDashboardResponse(d *report.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		Scopes:     toScopeSummaryResponse(d.Scopes),
		Months:     toMonthResponses(d.Months),
		Categories: toCategoryResponses(d.Categories),
		TopSources: toCategoryResponses(d.TopSources),
	}
	if d.LargestSource != nil {
		ct := categoryTotalResponse{
			Category: d.LargestSource.Category,
			Total:    d.LargestSource.Total.String(),
		}
		resp.LargestSource = &ct
	}
	return resp
}

func toScopeSummaryResponse(s report.ScopeSummary) scopeSummaryResponse {
	return scopeSummaryResponse{
		Scope1: s.Scope1Total.String(),
		Scope2: s.Scope2Total.String(),
		Scope3: s.Scope3Total.String(),
		Total:  s.Total().String(),
	}
}

func toMonthResponses(months []report.MonthSummary) []monthSummaryResponse {
	out := make([]monthSummaryResponse, 0, len(months))
	for _, m := range months {
		out = append(out, monthSummaryResponse{
			Month:  m.Month,
			Scope1: m.Scope1.String(),
			Scope2: m.Scope2.String(),
			Scope3: m.Scope3.String(),
			Total:  m.Total.String(),
		})
	}
	return out
}

func toCategoryResponses(totals []report.CategoryTotal) []categoryTotalResponse {
	out := make([]categoryTotalResponse, 0, len(totals))
	for _, ct := range totals {
		out = append(out, categoryTotalResponse{
			Category: ct.Category,
			Total:    ct.Total.String(),
		})
	}
	return out
}
