package rest

import (
	"context"
	"log/slog"
	"net/http"

	authjwt "github.com/carbonaegis/aegis-backend/internal/auth"
	"github.com/carbonaegis/aegis-backend/internal/config"
	"github.com/carbonaegis/aegis-backend/internal/transport/middleware"
)

// Handlers bundles every REST handler the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Emissions     *EmissionsHandler
	Factors       *FactorsHandler
	Facilities    *FacilitiesHandler
	Organizations *OrganizationsHandler
	Reports       *ReportsHandler
	Admin         *AdminHandler
	Health        *HealthHandler
}

// tokenValidator resolves a bearer token into claims for the auth middleware.
type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (authjwt.Claims, error)
}

// NewRouter builds the routing table and wraps it in the shared middleware
// chain. The auth middleware resolves identity for every request; anonymous
// requests pass through and are rejected by the services that need identity.
func NewRouter(
	log *slog.Logger,
	cfg *config.Config,
	h Handlers,
	validator tokenValidator,
	limiter *middleware.RateLimiter,
) http.Handler {
	mux := http.NewServeMux()

	// Probes stay outside /api: no auth, no rate limit concerns.
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)

	mux.HandleFunc("POST /api/ghg-emissions", h.Emissions.Create)
	mux.HandleFunc("GET /api/ghg-emissions", h.Emissions.List)
	mux.HandleFunc("DELETE /api/ghg-emissions/{id}", h.Emissions.Delete)

	// Factor lookups carry their own budget on top of the general one:
	// every call fans out to the factor table.
	var factorGet, factorResolve http.Handler = http.HandlerFunc(h.Factors.Get), http.HandlerFunc(h.Factors.Resolve)
	if cfg.RateLimit.Enabled {
		lookupLimit := limiter.Limit("factor-lookup", cfg.RateLimit.LookupPerMinute, cfg.RateLimit.Burst)
		factorGet = lookupLimit(factorGet)
		factorResolve = lookupLimit(factorResolve)
	}
	mux.Handle("GET /api/emission-factors", factorGet)
	mux.Handle("POST /api/emission-factors", factorResolve)

	mux.HandleFunc("POST /api/facilities", h.Facilities.Create)
	mux.HandleFunc("GET /api/facilities", h.Facilities.List)

	mux.HandleFunc("GET /api/organizations", h.Organizations.List)

	mux.HandleFunc("GET /api/reports/dashboard", h.Reports.Dashboard)
	mux.HandleFunc("GET /api/reports/scope-summary", h.Reports.ScopeSummary)
	mux.HandleFunc("GET /api/reports/monthly", h.Reports.Monthly)
	mux.HandleFunc("GET /api/reports/top-sources", h.Reports.TopSources)

	mux.HandleFunc("POST /api/admin/emission-factors", h.Admin.UpsertFactor)
	mux.HandleFunc("GET /api/admin/emission-factors/count", h.Admin.FactorCount)

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.CORS),
	}
	if cfg.RateLimit.Enabled {
		mws = append(mws, limiter.Limit("api", cfg.RateLimit.PerMinute, cfg.RateLimit.Burst))
	}
	mws = append(mws, middleware.Auth(validator))

	return middleware.Chain(mws...)(mux)
}
