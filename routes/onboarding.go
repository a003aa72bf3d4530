package routes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sn-be/ecopilot/database"
	"github.com/sn-be/ecopilot/middleware"
	"github.com/sn-be/ecopilot/models"
)

func SetupOnboardingRoutes(app *fiber.App) {
	group := app.Group("/onboarding", middleware.JWTMiddleware)
	group.Get("/", getOnboarding)
	group.Post("/step1", saveStep1)
	group.Post("/step2", saveStep2)
	group.Post("/step3", saveStep3)
	group.Post("/step4", saveStep4)
	group.Put("/", updateProfile)
}

func getOnboarding(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var profile models.BusinessProfile
	err := database.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"data": nil})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load profile"})
	}
	return c.JSON(fiber.Map{"data": profile})
}

type step1Payload struct {
	BusinessName string `json:"businessName"`
	Industry     string `json:"industry"`
	Country      string `json:"country"`
	PostalCode   string `json:"postalCode"`
}

func saveStep1(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body step1Payload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if body.BusinessName == "" || body.Industry == "" || body.Country == "" || body.PostalCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Business name, industry, country and postal code are required"})
	}

	var profile models.BusinessProfile
	err := database.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load profile"})
	}

	profile.UserID = userID
	profile.BusinessName = body.BusinessName
	profile.Industry = body.Industry
	profile.Country = body.Country
	profile.PostalCode = body.PostalCode
	if profile.CurrentStep < 2 {
		profile.CurrentStep = 2
	}

	if err := database.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save profile"})
	}
	return c.JSON(fiber.Map{"success": true, "current_step": profile.CurrentStep})
}

type step2Payload struct {
	NumberOfEmployees int     `json:"numberOfEmployees"`
	LocationSize      float64 `json:"locationSize"`
	LocationUnit      string  `json:"locationUnit"`
	OwnOrRent         string  `json:"ownOrRent"`
}

func saveStep2(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body step2Payload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if body.NumberOfEmployees < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Number of employees is required"})
	}
	if body.LocationSize < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Location size is required"})
	}
	if body.LocationUnit != models.LocationUnitSqft && body.LocationUnit != models.LocationUnitSqm {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Location unit must be sqft or sqm"})
	}
	if body.OwnOrRent != models.OwnershipOwn && body.OwnOrRent != models.OwnershipRent {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Ownership must be own or rent"})
	}

	profile, err := loadProfile(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Complete step 1 first"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load profile"})
	}

	profile.NumberOfEmployees = body.NumberOfEmployees
	profile.LocationSize = body.LocationSize
	profile.LocationUnit = body.LocationUnit
	profile.OwnOrRent = body.OwnOrRent
	if profile.CurrentStep < 3 {
		profile.CurrentStep = 3
	}

	if err := database.DB.Save(profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save profile"})
	}
	return c.JSON(fiber.Map{"success": true, "current_step": profile.CurrentStep})
}

type step3Payload struct {
	MonthlyElectricityKwh    float64 `json:"monthlyElectricityKwh"`
	MonthlyElectricityAmount float64 `json:"monthlyElectricityAmount"`
	ElectricityCurrency      string  `json:"electricityCurrency"`
	HeatingFuel              string  `json:"heatingFuel"`
	MonthlyHeatingAmount     float64 `json:"monthlyHeatingAmount"`
	HeatingUnit              string  `json:"heatingUnit"`
	EnergyDataSkipped        bool    `json:"energyDataSkipped"`
}

func saveStep3(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body step3Payload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}

	profile, err := loadProfile(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Complete step 1 first"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load profile"})
	}

	profile.MonthlyElectricityKwh = body.MonthlyElectricityKwh
	profile.MonthlyElectricityAmount = body.MonthlyElectricityAmount
	profile.ElectricityCurrency = body.ElectricityCurrency
	profile.HeatingFuel = body.HeatingFuel
	profile.MonthlyHeatingAmount = body.MonthlyHeatingAmount
	profile.HeatingUnit = body.HeatingUnit
	profile.EnergyDataSkipped = body.EnergyDataSkipped
	if profile.CurrentStep < 4 {
		profile.CurrentStep = 4
	}

	if err := database.DB.Save(profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save profile"})
	}
	return c.JSON(fiber.Map{"success": true, "current_step": profile.CurrentStep})
}

type step4Payload struct {
	HasVehicles            bool   `json:"hasVehicles"`
	NumberOfVehicles       int    `json:"numberOfVehicles"`
	EmployeeCommutePattern string `json:"employeeCommutePattern"`
	BusinessFlightsPerYear int    `json:"businessFlightsPerYear"`
	WeeklyTrashBags        int    `json:"weeklyTrashBags"`
}

func saveStep4(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body step4Payload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if body.EmployeeCommutePattern == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Employee commute pattern is required"})
	}
	if body.BusinessFlightsPerYear < 0 || body.WeeklyTrashBags < 0 || body.NumberOfVehicles < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Counts cannot be negative"})
	}

	profile, err := loadProfile(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Complete step 1 first"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load profile"})
	}

	now := time.Now()
	profile.HasVehicles = body.HasVehicles
	profile.NumberOfVehicles = body.NumberOfVehicles
	profile.EmployeeCommutePattern = body.EmployeeCommutePattern
	profile.BusinessFlightsPerYear = body.BusinessFlightsPerYear
	profile.WeeklyTrashBags = body.WeeklyTrashBags
	profile.CurrentStep = 5
	profile.CompletedAt = &now

	if err := database.DB.Save(profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save profile"})
	}
	return c.JSON(fiber.Map{"success": true, "current_step": profile.CurrentStep})
}

type settingsPayload struct {
	step1Payload
	step2Payload
	step3Payload
	step4Payload
}

// updateProfile is the settings-form full update: every questionnaire field
// at once, against an already onboarded profile.
func updateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body settingsPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if body.BusinessName == "" || body.Industry == "" || body.Country == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Business name, industry and country are required"})
	}

	profile, err := loadProfile(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Complete step 1 first"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load profile"})
	}

	profile.BusinessName = body.BusinessName
	profile.Industry = body.Industry
	profile.Country = body.Country
	profile.PostalCode = body.PostalCode
	profile.NumberOfEmployees = body.NumberOfEmployees
	profile.LocationSize = body.LocationSize
	profile.LocationUnit = body.LocationUnit
	profile.OwnOrRent = body.OwnOrRent
	profile.MonthlyElectricityKwh = body.MonthlyElectricityKwh
	profile.MonthlyElectricityAmount = body.MonthlyElectricityAmount
	profile.ElectricityCurrency = body.ElectricityCurrency
	profile.HeatingFuel = body.HeatingFuel
	profile.MonthlyHeatingAmount = body.MonthlyHeatingAmount
	profile.HeatingUnit = body.HeatingUnit
	profile.EnergyDataSkipped = body.EnergyDataSkipped
	profile.HasVehicles = body.HasVehicles
	profile.NumberOfVehicles = body.NumberOfVehicles
	profile.EmployeeCommutePattern = body.EmployeeCommutePattern
	profile.BusinessFlightsPerYear = body.BusinessFlightsPerYear
	profile.WeeklyTrashBags = body.WeeklyTrashBags

	if err := database.DB.Save(profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save profile"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func loadProfile(userID uint) (*models.BusinessProfile, error) {
	var profile models.BusinessProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
