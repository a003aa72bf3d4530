package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sn-be/ecopilot/database"
	"github.com/sn-be/ecopilot/models"
	"github.com/sn-be/ecopilot/services/ceda"
)

func TestAddCedaEntry(t *testing.T) {
	app := setupTestApp(t)
	userID, token := createTestUser(t, "ledger@example.com")
	onboardUser(t, app, token)

	factor, err := ceda.Lookup("United States", "Air transportation")
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodPost, "/ceda/entries", token, map[string]any{
		"category":    "Air transportation",
		"spendAmount": 1000,
		"description": "Q3 conference flights",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)

	assert.Equal(t, "United States", body["country"])
	assert.Equal(t, "Air transportation", body["category"])
	assert.Equal(t, 1000.0, body["spend_amount_usd"])
	assert.Equal(t, factor.Factor, body["emission_factor_kg_co2e_per_usd"])
	assert.Equal(t, 1000*factor.Factor, body["total_emissions_kg_co2e"])

	var entry models.CedaEntry
	require.NoError(t, database.DB.Where("user_id = ?", userID).First(&entry).Error)
	assert.Equal(t, 1000*factor.Factor, entry.TotalEmissions)
	assert.Equal(t, "Q3 conference flights", entry.Description)
}

func TestAddCedaEntryCanonicalizesInput(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "caseless@example.com")
	onboardUser(t, app, token)

	resp := doRequest(t, app, http.MethodPost, "/ceda/entries", token, map[string]any{
		"category":    "  AIR TRANSPORTATION ",
		"spendAmount": 250,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Air transportation", body["category"])
}

func TestAddCedaEntryValidation(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "sloppy@example.com")
	onboardUser(t, app, token)

	cases := []map[string]any{
		{"spendAmount": 100},
		{"category": "Air transportation"},
		{"category": "Air transportation", "spendAmount": 0},
		{"category": "Air transportation", "spendAmount": -50},
	}
	for _, payload := range cases {
		resp := doRequest(t, app, http.MethodPost, "/ceda/entries", token, payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	}
}

func TestAddCedaEntryUnknownFactor(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "exotic@example.com")
	onboardUser(t, app, token)

	resp := doRequest(t, app, http.MethodPost, "/ceda/entries", token, map[string]any{
		"category":    "Orbital launches",
		"spendAmount": 100,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, ceda.ErrNoEmissionFactor.Error(), decodeBody(t, resp)["error"])
}

func TestAddCedaEntryRequiresCountry(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "nocountry@example.com")

	resp := doRequest(t, app, http.MethodPost, "/ceda/entries", token, map[string]any{
		"category":    "Air transportation",
		"spendAmount": 100,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No country found in onboarding data. Please complete onboarding first.", decodeBody(t, resp)["error"])
}

func TestListCedaEntries(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "lister@example.com")
	onboardUser(t, app, token)

	for _, spend := range []float64{100, 200, 300} {
		resp := doRequest(t, app, http.MethodPost, "/ceda/entries", token, map[string]any{
			"category":    "Air transportation",
			"spendAmount": spend,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doRequest(t, app, http.MethodGet, "/ceda/entries", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := decodeBody(t, resp)["entries"].([]any)
	assert.Len(t, entries, 3)
}

func TestCedaSummary(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "summary@example.com")
	onboardUser(t, app, token)

	factor, err := ceda.Lookup("United States", "Air transportation")
	require.NoError(t, err)

	spends := []float64{100, 400}
	for _, spend := range spends {
		resp := doRequest(t, app, http.MethodPost, "/ceda/entries", token, map[string]any{
			"category":    "Air transportation",
			"spendAmount": spend,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doRequest(t, app, http.MethodGet, "/ceda/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	assert.InDelta(t, 500*factor.Factor, body["total_emissions"], 1e-9)
	assert.InDelta(t, 500, body["total_spend"], 1e-9)
	assert.Equal(t, 2.0, body["entry_count"])
}

func TestCedaSummaryEmpty(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "zero@example.com")

	resp := doRequest(t, app, http.MethodGet, "/ceda/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, 0.0, body["total_emissions"])
	assert.Equal(t, 0.0, body["entry_count"])
}

func TestCedaCategories(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "catalog@example.com")

	resp := doRequest(t, app, http.MethodGet, "/ceda/categories", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	categories := decodeBody(t, resp)["categories"].([]any)
	assert.Contains(t, categories, "Air transportation")
}

func TestDeleteCedaEntry(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "cleaner@example.com")
	onboardUser(t, app, token)

	resp := doRequest(t, app, http.MethodPost, "/ceda/entries", token, map[string]any{
		"category":    "Air transportation",
		"spendAmount": 100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	entry := decodeBody(t, resp)["entry"].(map[string]any)
	entryID := int(entry["ID"].(float64))

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/ceda/entries/%d", entryID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/ceda/entries/%d", entryID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteCedaEntryOwnership(t *testing.T) {
	app := setupTestApp(t)
	ownerID, ownerToken := createTestUser(t, "owner@example.com")
	onboardUser(t, app, ownerToken)
	_, otherToken := createTestUser(t, "other@example.com")

	resp := doRequest(t, app, http.MethodPost, "/ceda/entries", ownerToken, map[string]any{
		"category":    "Air transportation",
		"spendAmount": 100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	entry := decodeBody(t, resp)["entry"].(map[string]any)
	entryID := int(entry["ID"].(float64))

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/ceda/entries/%d", entryID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The row survives the rejected delete.
	var count int64
	database.DB.Model(&models.CedaEntry{}).Where("user_id = ?", ownerID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCedaEntryBadID(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "badid@example.com")

	resp := doRequest(t, app, http.MethodDelete, "/ceda/entries/not-a-number", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
