package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sn-be/ecopilot/database"
	"github.com/sn-be/ecopilot/middleware"
	"github.com/sn-be/ecopilot/models"
	"github.com/sn-be/ecopilot/services/ceda"
)

func SetupCedaRoutes(app *fiber.App) {
	group := app.Group("/ceda", middleware.JWTMiddleware)
	group.Post("/entries", addCedaEntry)
	group.Get("/entries", listCedaEntries)
	group.Get("/summary", cedaSummary)
	group.Get("/categories", cedaCategories)
	group.Delete("/entries/:id", deleteCedaEntry)
}

type cedaEntryPayload struct {
	Category    string  `json:"category"`
	SpendAmount float64 `json:"spendAmount"`
	Description string  `json:"description"`
}

// addCedaEntry records one spend-based emission: the caller's country comes
// from their business profile, the factor from the CEDA table, and the
// emissions are spend times factor.
func addCedaEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body cedaEntryPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if body.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category is required"})
	}
	if body.SpendAmount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Spend amount must be a positive number"})
	}

	profile, err := loadProfile(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && profile.Country == "") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No country found in onboarding data. Please complete onboarding first."})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load profile"})
	}

	factor, err := ceda.Lookup(profile.Country, body.Category)
	if errors.Is(err, ceda.ErrNoEmissionFactor) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Factor lookup failed"})
	}

	entry := models.CedaEntry{
		UserID:         userID,
		Category:       factor.Category,
		Country:        factor.Country,
		SpendAmount:    body.SpendAmount,
		EmissionFactor: factor.Factor,
		TotalEmissions: body.SpendAmount * factor.Factor,
		Description:    body.Description,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save entry"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"entry":                           entry,
		"country":                         factor.Country,
		"category":                        factor.Category,
		"spend_amount_usd":                body.SpendAmount,
		"emission_factor_kg_co2e_per_usd": factor.Factor,
		"total_emissions_kg_co2e":         entry.TotalEmissions,
	})
}

func listCedaEntries(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var entries []models.CedaEntry
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load entries"})
	}
	return c.JSON(fiber.Map{"entries": entries})
}

// cedaSummary sums the caller's ledger at query time.
func cedaSummary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var summary struct {
		TotalEmissions float64 `json:"total_emissions"`
		TotalSpend     float64 `json:"total_spend"`
		EntryCount     int64   `json:"entry_count"`
	}
	err := database.DB.Model(&models.CedaEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(total_emissions), 0) AS total_emissions, COALESCE(SUM(spend_amount), 0) AS total_spend, COUNT(*) AS entry_count").
		Scan(&summary).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute summary"})
	}
	return c.JSON(summary)
}

func cedaCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": ceda.Categories()})
}

func deleteCedaEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry id"})
	}

	var entry models.CedaEntry
	err = database.DB.First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Entry not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load entry"})
	}

	if entry.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": models.ErrUnauthorized.Error()})
	}

	if err := database.DB.Delete(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete entry"})
	}
	return c.JSON(fiber.Map{"success": true})
}
