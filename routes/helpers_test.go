package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/sn-be/ecopilot/database"
	"github.com/sn-be/ecopilot/models"
	"github.com/sn-be/ecopilot/services/ai"
	"github.com/sn-be/ecopilot/utils"
)

// setupTestApp wires the full route surface against a fresh in-memory
// database, one per test so state never leaks between tests.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	require.NoError(t, database.Connect(dsn))

	app := fiber.New()
	SetupAuthRoutes(app)
	SetupOnboardingRoutes(app)
	SetupFootprintRoutes(app)
	SetupCedaRoutes(app)
	SetupChatRoutes(app)

	t.Cleanup(func() { ai.Set(nil) })
	return app
}

func createTestUser(t *testing.T, email string) (uint, string) {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{Name: "Test User", Email: email, Password: hash}
	require.NoError(t, database.DB.Create(&user).Error)
	return user.ID, signToken(user.ID)
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// onboardUser pushes one user through all four questionnaire steps.
func onboardUser(t *testing.T, app *fiber.App, token string) {
	t.Helper()

	steps := []struct {
		path    string
		payload map[string]any
	}{
		{"/onboarding/step1", map[string]any{
			"businessName": "Brew & Bean",
			"industry":     "Food Service",
			"country":      "United States",
			"postalCode":   "94110",
		}},
		{"/onboarding/step2", map[string]any{
			"numberOfEmployees": 12,
			"locationSize":      1800,
			"locationUnit":      "sqft",
			"ownOrRent":         "own",
		}},
		{"/onboarding/step3", map[string]any{
			"monthlyElectricityKwh": 2400,
			"heatingFuel":           "natural_gas",
			"monthlyHeatingAmount":  110,
			"heatingUnit":           "therms",
		}},
		{"/onboarding/step4", map[string]any{
			"hasVehicles":            true,
			"numberOfVehicles":       1,
			"employeeCommutePattern": "mostly_driving",
			"businessFlightsPerYear": 4,
			"weeklyTrashBags":        10,
		}},
	}
	for _, step := range steps {
		resp := doRequest(t, app, http.MethodPost, step.path, token, step.payload)
		require.Equal(t, http.StatusOK, resp.StatusCode, "onboarding %s failed", step.path)
		resp.Body.Close()
	}
}
