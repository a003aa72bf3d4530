package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrUnauthorized is returned when a user touches a ledger entry they do not own.
var ErrUnauthorized = errors.New("entry does not belong to user")

// CedaEntry is one spend-based emission record: spend amount multiplied by
// the CEDA factor matched on the user's country and the chosen category.
type CedaEntry struct {
	gorm.Model
	UserID         uint    `gorm:"index" json:"user_id"`
	Category       string  `json:"category"`
	Country        string  `json:"country"`
	SpendAmount    float64 `json:"spend_amount"`
	EmissionFactor float64 `json:"emission_factor"`
	TotalEmissions float64 `json:"total_emissions"`
	Description    string  `json:"description"`
}
