package routes

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sn-be/ecopilot/database"
	"github.com/sn-be/ecopilot/middleware"
	"github.com/sn-be/ecopilot/models"
	"github.com/sn-be/ecopilot/services/ai"
)

// generateTimeout bounds the whole pipeline: one estimation call plus the
// six-way plan fan-out.
const generateTimeout = 120 * time.Second

func SetupFootprintRoutes(app *fiber.App) {
	group := app.Group("/footprint", middleware.JWTMiddleware)
	group.Post("/generate", generateFootprint)
	group.Get("/latest", latestFootprint)
	group.Post("/actions/toggle", toggleAction)
}

// generateFootprint runs the full pipeline: estimate the footprint from the
// profile, generate the action plan, then persist both as one snapshot pair.
func generateFootprint(c *fiber.Ctx) error {
	orch := ai.Get()
	if !orch.IsReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "AI unavailable"})
	}
	userID := c.Locals("user_id").(uint)

	profile, err := loadProfile(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Complete onboarding before generating a footprint"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load profile"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), generateTimeout)
	defer cancel()

	footprint, err := orch.EstimateFootprint(ctx, *profile)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	plan, err := orch.GeneratePlan(ctx, *profile, footprint)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	if _, _, err := saveSnapshot(userID, footprint, plan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save footprint"})
	}

	return c.JSON(fiber.Map{
		"footprint": footprint,
		"dashboard": plan,
	})
}

// saveSnapshot writes the footprint and its dashboard in one transaction:
// both rows commit or neither does.
func saveSnapshot(userID uint, footprint ai.FootprintResult, plan ai.DashboardResult) (*models.CarbonFootprint, *models.Dashboard, error) {
	breakdown, err := json.Marshal(footprint.Breakdown)
	if err != nil {
		return nil, nil, err
	}
	var recommendations []byte
	if footprint.Recommendations != nil {
		if recommendations, err = json.Marshal(footprint.Recommendations); err != nil {
			return nil, nil, err
		}
	}
	priority, err := json.Marshal(plan.PrioritizedNextStep)
	if err != nil {
		return nil, nil, err
	}
	quickWins, err := json.Marshal(plan.QuickWins)
	if err != nil {
		return nil, nil, err
	}
	fullPlan, err := json.Marshal(plan.FullActionPlan)
	if err != nil {
		return nil, nil, err
	}

	fp := models.CarbonFootprint{
		UserID:            userID,
		TotalKgCO2eAnnual: footprint.TotalKgCO2eAnnual,
		DataSource:        footprint.DataSource,
		Breakdown:         breakdown,
		CalculationNotes:  footprint.CalculationNotes,
		Recommendations:   recommendations,
	}
	dash := models.Dashboard{
		UserID:              userID,
		ExecutiveSummary:    plan.ExecutiveSummary,
		PrioritizedNextStep: priority,
		QuickWins:           quickWins,
		FullActionPlan:      fullPlan,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&fp).Error; err != nil {
			return err
		}
		dash.FootprintID = fp.ID
		return tx.Create(&dash).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &fp, &dash, nil
}

// latestFootprint reconstructs the most recent snapshot for display. A
// footprint without its dashboard (a partial write from before snapshots
// were transactional) counts as no data, so the client offers regeneration.
func latestFootprint(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var fp models.CarbonFootprint
	err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").First(&fp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"data": nil})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load footprint"})
	}

	var dash models.Dashboard
	err = database.DB.Where("footprint_id = ?", fp.ID).First(&dash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"data": nil})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load dashboard"})
	}

	footprint, err := decodeFootprint(fp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Stored footprint is corrupt"})
	}
	plan, err := decodeDashboard(dash)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Stored dashboard is corrupt"})
	}

	var businessName *string
	if profile, err := loadProfile(userID); err == nil && profile.BusinessName != "" {
		businessName = &profile.BusinessName
	}

	var completed []models.CompletedAction
	database.DB.Where("user_id = ?", userID).Find(&completed)
	completedIDs := make([]string, 0, len(completed))
	for _, action := range completed {
		completedIDs = append(completedIDs, action.ActionID)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"footprint":          footprint,
			"dashboard":          plan,
			"generatedAt":        fp.CreatedAt,
			"businessName":       businessName,
			"completedActionIds": completedIDs,
		},
	})
}

func decodeFootprint(fp models.CarbonFootprint) (ai.FootprintResult, error) {
	result := ai.FootprintResult{
		TotalKgCO2eAnnual: fp.TotalKgCO2eAnnual,
		DataSource:        fp.DataSource,
		CalculationNotes:  fp.CalculationNotes,
	}
	if err := json.Unmarshal(fp.Breakdown, &result.Breakdown); err != nil {
		return result, err
	}
	if len(fp.Recommendations) > 0 {
		if err := json.Unmarshal(fp.Recommendations, &result.Recommendations); err != nil {
			return result, err
		}
	}
	return result, nil
}

func decodeDashboard(dash models.Dashboard) (ai.DashboardResult, error) {
	result := ai.DashboardResult{
		ExecutiveSummary: dash.ExecutiveSummary,
	}
	if err := json.Unmarshal(dash.PrioritizedNextStep, &result.PrioritizedNextStep); err != nil {
		return result, err
	}
	if err := json.Unmarshal(dash.QuickWins, &result.QuickWins); err != nil {
		return result, err
	}
	if err := json.Unmarshal(dash.FullActionPlan, &result.FullActionPlan); err != nil {
		return result, err
	}
	return result, nil
}

type togglePayload struct {
	ActionID   string `json:"actionId"`
	ActionType string `json:"actionType"`
	Completed  bool   `json:"completed"`
}

// toggleAction converges the completion marker to the requested state.
// Marking complete upserts on (user_id, action_id) so repeats are no-ops;
// marking incomplete hard-deletes the marker.
func toggleAction(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body togglePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if body.ActionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "actionId is required"})
	}
	switch body.ActionType {
	case models.ActionTypePriority, models.ActionTypeQuickWin, models.ActionTypeActionPlan:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "actionType must be priority, quickwin or actionplan"})
	}

	if body.Completed {
		marker := models.CompletedAction{
			UserID:     userID,
			ActionID:   body.ActionID,
			ActionType: body.ActionType,
		}
		err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "action_id"}},
			DoNothing: true,
		}).Create(&marker).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not mark action complete"})
		}
	} else {
		err := database.DB.Where("user_id = ? AND action_id = ?", userID, body.ActionID).
			Delete(&models.CompletedAction{}).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not mark action incomplete"})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}
