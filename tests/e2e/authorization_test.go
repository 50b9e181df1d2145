//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_AnonymousIsRejected(t *testing.T) {
	ts := setupTestServer(t)

	resp := doJSON(t, ts, http.MethodGet, "/api/ghg-emissions", "", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestE2E_GarbageTokenIsRejected(t *testing.T) {
	ts := setupTestServer(t)

	resp := doJSON(t, ts, http.MethodGet, "/api/ghg-emissions", "not-a-jwt", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestE2E_ConsultantRequiresClientSelection(t *testing.T) {
	ts := setupTestServer(t)
	consultant := registerAccount(t, ts, "CONSULTANT")

	// No X-Client-Org header: the request must fail before touching data.
	resp := doJSON(t, ts, http.MethodGet, "/api/ghg-emissions", consultant.AccessToken, "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Placeholder selections are not concrete clients either.
	for _, selection := range []string{"all", "none"} {
		resp := doJSON(t, ts, http.MethodGet, "/api/ghg-emissions", consultant.AccessToken, selection, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "selection %q", selection)
	}
}

func TestE2E_ConsultantActsOnClient(t *testing.T) {
	ts := setupTestServer(t)
	seedDieselFactor(t, ts)

	client := registerAccount(t, ts, "")
	consultant := registerAccount(t, ts, "CONSULTANT")

	createDieselRecord(t, ts, client.AccessToken, "2025-04", "50")

	resp := doJSON(t, ts, http.MethodGet, "/api/ghg-emissions", consultant.AccessToken, client.OrgID, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.EqualValues(t, 1, body["total"])
}

func TestE2E_OrganizationDirectory_Roles(t *testing.T) {
	ts := setupTestServer(t)

	member := registerAccount(t, ts, "")
	consultant := registerAccount(t, ts, "CONSULTANT")

	resp := doJSON(t, ts, http.MethodGet, "/api/organizations", member.AccessToken, "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	allowed := doJSON(t, ts, http.MethodGet, "/api/organizations", consultant.AccessToken, "", nil)
	defer allowed.Body.Close()
	require.Equal(t, http.StatusOK, allowed.StatusCode)

	var orgs []map[string]any
	decodeInto(t, allowed, &orgs)
	assert.NotEmpty(t, orgs)
}

func TestE2E_AdminFactorUpsert(t *testing.T) {
	ts := setupTestServer(t)

	member := registerAccount(t, ts, "")
	admin := registerAccount(t, ts, "ADMIN")

	factorRow := map[string]any{
		"scope":    "SCOPE_2",
		"category": "UK electricity",
		"level1":   "UK",
		"uom":      "kWh",
		"factor":   "0.20705",
		"year":     factorYear,
	}

	forbidden := doJSON(t, ts, http.MethodPost, "/api/admin/emission-factors", member.AccessToken, "", factorRow)
	defer forbidden.Body.Close()
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)

	resp := doJSON(t, ts, http.MethodPost, "/api/admin/emission-factors", admin.AccessToken, "", factorRow)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The upserted row is resolvable through the public lookup.
	lookup := doJSON(t, ts, http.MethodGet,
		"/api/emission-factors?scope=SCOPE_2&category=UK+electricity&country=UK&unit=kWh",
		admin.AccessToken, "", nil)
	defer lookup.Body.Close()
	require.Equal(t, http.StatusOK, lookup.StatusCode)

	body := decodeBody(t, lookup)
	assert.Equal(t, "0.20705", body["factor"])
}
