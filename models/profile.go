package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	LocationUnitSqft = "sqft"
	LocationUnitSqm  = "sqm"

	OwnershipOwn  = "own"
	OwnershipRent = "rent"
)

// ErrProfileNotFound is returned whenever an operation needs a business
// profile that the user has not created yet. Consumers redirect to onboarding.
var ErrProfileNotFound = errors.New("no business profile found for user")

// BusinessProfile holds the onboarding questionnaire answers. One row per
// user; filled in incrementally across four steps and editable afterwards
// through the settings form.
type BusinessProfile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	// Step 1: business information
	BusinessName string `json:"business_name"`
	Industry     string `json:"industry"`
	Country      string `json:"country"`
	PostalCode   string `json:"postal_code"`

	// Step 2: team & space
	NumberOfEmployees int     `json:"number_of_employees"`
	LocationSize      float64 `json:"location_size"`
	LocationUnit      string  `json:"location_unit"` // sqft or sqm
	OwnOrRent         string  `json:"own_or_rent"`   // own or rent

	// Step 3: energy use (all optional, EnergyDataSkipped marks a skip)
	MonthlyElectricityKwh    float64 `json:"monthly_electricity_kwh"`
	MonthlyElectricityAmount float64 `json:"monthly_electricity_amount"`
	ElectricityCurrency      string  `json:"electricity_currency"`
	HeatingFuel              string  `json:"heating_fuel"`
	MonthlyHeatingAmount     float64 `json:"monthly_heating_amount"`
	HeatingUnit              string  `json:"heating_unit"` // therms, gallons, kwh...
	EnergyDataSkipped        bool    `json:"energy_data_skipped"`

	// Step 4: operations
	HasVehicles            bool   `json:"has_vehicles"`
	NumberOfVehicles       int    `json:"number_of_vehicles"`
	EmployeeCommutePattern string `json:"employee_commute_pattern"`
	BusinessFlightsPerYear int    `json:"business_flights_per_year"`
	WeeklyTrashBags        int    `json:"weekly_trash_bags"`

	// Progress tracking
	CurrentStep int        `gorm:"default:1" json:"current_step"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Onboarded reports whether all four steps were submitted.
func (p *BusinessProfile) Onboarded() bool {
	return p.CompletedAt != nil
}
