package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BreakdownStatusCalculated    = "calculated"
	BreakdownStatusEstimated     = "estimated"
	BreakdownStatusNotCalculated = "not_calculated"

	ImpactHigh   = "High"
	ImpactMedium = "Medium"
	ImpactLow    = "Low"

	CostLow    = "$"
	CostMedium = "$$"
	CostHigh   = "$$$"

	CategoryEnergy      = "Energy"
	CategoryTransport   = "Transport"
	CategoryWaste       = "Waste"
	CategorySupplyChain = "Supply Chain"
	CategoryTeam        = "Team"

	ActionTypePriority   = "priority"
	ActionTypeQuickWin   = "quickwin"
	ActionTypeActionPlan = "actionplan"
)

// CarbonFootprint is an immutable snapshot of an estimation run. Newer runs
// supersede older ones; rows are never updated.
type CarbonFootprint struct {
	gorm.Model
	UserID            uint           `gorm:"index" json:"user_id"`
	TotalKgCO2eAnnual float64        `json:"total_kg_co2e_annual"`
	DataSource        string         `json:"data_source"`
	Breakdown         datatypes.JSON `json:"breakdown"`
	CalculationNotes  string         `json:"calculation_notes"`
	Recommendations   datatypes.JSON `json:"recommendations"`
}

// BreakdownItem is one category line of a footprint breakdown. Serialized
// into CarbonFootprint.Breakdown; percents across a breakdown sum to ~100.
type BreakdownItem struct {
	Category string  `json:"category"`
	KgCO2e   float64 `json:"kgCO2e"`
	Percent  float64 `json:"percent"`
	Status   string  `json:"status,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// Dashboard is the action-plan document generated alongside a footprint,
// tied 1:1 to it and created in the same transaction.
type Dashboard struct {
	gorm.Model
	UserID              uint           `gorm:"index" json:"user_id"`
	FootprintID         uint           `gorm:"index" json:"footprint_id"`
	ExecutiveSummary    string         `json:"executive_summary"`
	PrioritizedNextStep datatypes.JSON `json:"prioritized_next_step"`
	QuickWins           datatypes.JSON `json:"quick_wins"`
	FullActionPlan      datatypes.JSON `json:"full_action_plan"`
}

// BeforeCreate rejects structurally incomplete dashboards so a bad row can
// never be committed next to its footprint.
func (d *Dashboard) BeforeCreate(tx *gorm.DB) error {
	if d.FootprintID == 0 {
		return errors.New("dashboard requires a footprint id")
	}
	if d.ExecutiveSummary == "" {
		return errors.New("dashboard requires an executive summary")
	}
	return nil
}

// PriorityAction is the single most impactful recommended action.
type PriorityAction struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Impact        string `json:"impact"`
	Cost          string `json:"cost"`
	PaybackPeriod string `json:"paybackPeriod"`
}

// QuickWin is a low-cost action implementable within 1-3 months.
type QuickWin struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PlanAction is one entry of the full action plan.
type PlanAction struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Cost        string `json:"cost"`
}

// CompletedAction marks one action as done. Pure set membership: the row
// existing means completed, deleting it means not completed. Hard deletes
// only, so the unique index stays reusable after a toggle cycle.
type CompletedAction struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     uint      `gorm:"uniqueIndex:idx_completed_user_action" json:"user_id"`
	ActionID   string    `gorm:"uniqueIndex:idx_completed_user_action" json:"action_id"`
	ActionType string    `json:"action_type"` // priority, quickwin or actionplan
}
