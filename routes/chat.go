package routes

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sn-be/ecopilot/database"
	"github.com/sn-be/ecopilot/integrations/azureai"
	"github.com/sn-be/ecopilot/middleware"
	"github.com/sn-be/ecopilot/models"
	"github.com/sn-be/ecopilot/services/ai"
)

const chatTimeout = 60 * time.Second

func SetupChatRoutes(app *fiber.App) {
	group := app.Group("/chat", middleware.JWTMiddleware)
	group.Post("/", handleChat)
}

type chatPayload struct {
	Messages []azureai.ChatMessage `json:"messages"`
}

// handleChat answers one advisor turn. The business context is looked up
// server-side so the advisor can reference the caller's actual numbers.
func handleChat(c *fiber.Ctx) error {
	orch := ai.Get()
	if !orch.IsReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "AI unavailable"})
	}
	userID := c.Locals("user_id").(uint)

	var body chatPayload
	if err := c.BodyParser(&body); err != nil || len(body.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Messages are required"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), chatTimeout)
	defer cancel()

	message, err := orch.Advise(ctx, buildBusinessContext(userID), body.Messages)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": message})
}

// buildBusinessContext assembles whatever the user has on file: profile
// basics plus the latest footprint, when one exists.
func buildBusinessContext(userID uint) *ai.BusinessContext {
	bc := &ai.BusinessContext{}

	profile, err := loadProfile(userID)
	if err == nil {
		bc.Industry = profile.Industry
		bc.EmployeeCount = profile.NumberOfEmployees
	}

	var fp models.CarbonFootprint
	err = database.DB.Where("user_id = ?", userID).Order("created_at DESC").First(&fp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bc
	}
	if err != nil {
		return bc
	}

	footprint, err := decodeFootprint(fp)
	if err != nil {
		return bc
	}
	bc.TotalEmissions = footprint.TotalKgCO2eAnnual
	bc.Breakdown = footprint.Breakdown
	bc.Recommendations = footprint.Recommendations
	if len(footprint.Breakdown) > 0 {
		top := footprint.Breakdown[0]
		for _, item := range footprint.Breakdown[1:] {
			if item.KgCO2e > top.KgCO2e {
				top = item
			}
		}
		bc.TopEmissionSource = top.Category
	}
	return bc
}
