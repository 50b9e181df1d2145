//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_ScopeSummary(t *testing.T) {
	ts := setupTestServer(t)
	acc := registerAccount(t, ts, "")
	seedDieselFactor(t, ts)

	createDieselRecord(t, ts, acc.AccessToken, "2025-01", "100")
	createDieselRecord(t, ts, acc.AccessToken, "2025-02", "100")

	resp := doJSON(t, ts, http.MethodGet, "/api/reports/scope-summary", acc.AccessToken, "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "532.31", body["scope1"])
	assert.Equal(t, "0", body["scope2"])
	assert.Equal(t, "532.31", body["total"])
}

func TestE2E_MonthlyReport_Chronological(t *testing.T) {
	ts := setupTestServer(t)
	acc := registerAccount(t, ts, "")
	seedDieselFactor(t, ts)

	// Created out of order; the report must come back chronological.
	createDieselRecord(t, ts, acc.AccessToken, "2025-03", "10")
	createDieselRecord(t, ts, acc.AccessToken, "2025-01", "10")
	createDieselRecord(t, ts, acc.AccessToken, "2025-02", "10")

	resp := doJSON(t, ts, http.MethodGet, "/api/reports/monthly", acc.AccessToken, "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var months []map[string]any
	decodeInto(t, resp, &months)
	require.Len(t, months, 3)
	assert.Equal(t, "2025-01", months[0]["month"])
	assert.Equal(t, "2025-02", months[1]["month"])
	assert.Equal(t, "2025-03", months[2]["month"])
}

func TestE2E_TopSources(t *testing.T) {
	ts := setupTestServer(t)
	acc := registerAccount(t, ts, "")
	seedDieselFactor(t, ts)

	createDieselRecord(t, ts, acc.AccessToken, "2025-01", "100")

	resp := doJSON(t, ts, http.MethodGet, "/api/reports/top-sources", acc.AccessToken, "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sources []map[string]any
	decodeInto(t, resp, &sources)
	require.Len(t, sources, 1)
	assert.Equal(t, "Fuels", sources[0]["category"])
	assert.Equal(t, "266.155", sources[0]["total"])
}

func TestE2E_Dashboard_EmptyOrganization(t *testing.T) {
	ts := setupTestServer(t)
	acc := registerAccount(t, ts, "")

	resp := doJSON(t, ts, http.MethodGet, "/api/reports/dashboard", acc.AccessToken, "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	scopes, ok := body["scopes"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0", scopes["total"])
	assert.Nil(t, body["largestSource"])
}
