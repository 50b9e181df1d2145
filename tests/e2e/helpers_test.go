//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carbonaegis/aegis-backend/internal/adapter/postgres"
	emissionrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/emission"
	facilityrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/facility"
	factorrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/factor"
	orgrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/organization"
	"github.com/carbonaegis/aegis-backend/internal/adapter/postgres/testhelper"
	tokenrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/token"
	userrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/user"
	authpkg "github.com/carbonaegis/aegis-backend/internal/auth"
	"github.com/carbonaegis/aegis-backend/internal/config"
	authsvc "github.com/carbonaegis/aegis-backend/internal/service/auth"
	"github.com/carbonaegis/aegis-backend/internal/service/emission"
	"github.com/carbonaegis/aegis-backend/internal/service/facility"
	"github.com/carbonaegis/aegis-backend/internal/service/factor"
	"github.com/carbonaegis/aegis-backend/internal/service/organization"
	"github.com/carbonaegis/aegis-backend/internal/service/report"
	"github.com/carbonaegis/aegis-backend/internal/transport/middleware"
	"github.com/carbonaegis/aegis-backend/internal/transport/rest"
)

// factorYear is the dataset vintage the test server resolves against.
const factorYear = 2025

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// setupTestServer wires the real stack (repos, services, router) against a
// disposable PostgreSQL and serves it via httptest.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "e2e-test-secret-key-0123456789abcdef",
			JWTIssuer:        "carbon-aegis-e2e",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  24 * time.Hour,
			PasswordHashCost: bcrypt.MinCost,
		},
		Emissions: config.EmissionsConfig{
			FactorYear:        factorYear,
			MaxRecordsPerList: 200,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type,X-Client-Org",
		},
		RateLimit: config.RateLimitConfig{
			Enabled:         false,
			CleanupInterval: time.Minute,
			IdleTTL:         10 * time.Minute,
		},
	}

	txManager := postgres.NewTxManager(pool)
	jwtManager := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	organizations := orgrepo.New(pool)
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	facilities := facilityrepo.New(pool)
	factors := factorrepo.New(pool)
	emissions := emissionrepo.New(pool)

	authService := authsvc.NewService(logger, users, organizations, tokens, txManager, jwtManager, cfg.Auth)
	factorService := factor.NewService(logger, factors, cfg.Emissions.FactorYear)
	emissionService := emission.NewService(logger, emissions, factorService, false, cfg.Emissions.MaxRecordsPerList)

	handlers := rest.Handlers{
		Auth:          rest.NewAuthHandler(authService, logger),
		Emissions:     rest.NewEmissionsHandler(emissionService, logger),
		Factors:       rest.NewFactorsHandler(factorService, logger),
		Facilities:    rest.NewFacilitiesHandler(facility.NewService(logger, facilities), logger),
		Organizations: rest.NewOrganizationsHandler(organization.NewService(logger, organizations), logger),
		Reports:       rest.NewReportsHandler(report.NewService(logger, emissions), logger),
		Admin:         rest.NewAdminHandler(factors, logger),
		Health:        rest.NewHealthHandler(pool, "e2e"),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	t.Cleanup(limiter.Stop)

	srv := httptest.NewServer(rest.NewRouter(logger, cfg, handlers, authService, limiter))
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// account holds the credentials and tokens of a registered test user.
type account struct {
	Email        string
	Password     string
	AccessToken  string
	RefreshToken string
	UserID       string
	OrgID        string
}

// registerAccount registers a fresh user (and organization) via the API.
func registerAccount(t *testing.T, ts *testServer, role string) *account {
	t.Helper()

	email := fmt.Sprintf("e2e-%s@example.com", uuid.New().String()[:8])
	password := "correct-horse-battery"

	body := map[string]string{
		"email":            email,
		"name":             "E2E User",
		"password":         password,
		"organizationName": "E2E Org " + uuid.New().String()[:8],
	}
	if role != "" {
		body["role"] = role
	}

	resp := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", "", body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		User         struct {
			ID             string `json:"id"`
			OrganizationID string `json:"organizationId"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return &account{
		Email:        email,
		Password:     password,
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		UserID:       out.User.ID,
		OrgID:        out.User.OrganizationID,
	}
}

// doJSON issues a request with optional bearer token and client-org header.
func doJSON(t *testing.T, ts *testServer, method, path, token, clientOrg string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if clientOrg != "" {
		req.Header.Set("X-Client-Org", clientOrg)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// decodeInto decodes a JSON response body into the given value.
func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// decodeBody decodes a JSON response body into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}
