package ai

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sn-be/ecopilot/models"
)

// ErrEstimationFailed wraps any failure of the footprint estimation call:
// upstream error, schema violation or an inconsistent breakdown.
var ErrEstimationFailed = errors.New("footprint estimation failed")

// percentTolerance is how far the breakdown percentages may drift from 100.
const percentTolerance = 0.5

// FootprintResult is the schema-constrained output of one estimation run.
// Field names match the stored document format.
type FootprintResult struct {
	TotalKgCO2eAnnual float64                `json:"totalKgCO2eAnnual"`
	DataSource        string                 `json:"dataSource"`
	Breakdown         []models.BreakdownItem `json:"breakdown"`
	CalculationNotes  string                 `json:"calculationNotes,omitempty"`
	Recommendations   []string               `json:"recommendations,omitempty"`
}

// EstimateFootprint asks the model for a full annual footprint breakdown.
// The profile may be partially populated; the methodology prompt tells the
// model to fall back to benchmarks and mark those categories estimated.
// Repeated calls are not deterministic.
func (o *Orchestrator) EstimateFootprint(ctx context.Context, profile models.BusinessProfile) (FootprintResult, error) {
	var result FootprintResult
	if !o.IsReady() {
		return result, fmt.Errorf("%w: AI client not configured", ErrEstimationFailed)
	}

	err := o.gen.GenerateObject(ctx, footprintSystemPrompt, buildFootprintPrompt(profile),
		"carbon_footprint", footprintSchema(), &result)
	if err != nil {
		return FootprintResult{}, fmt.Errorf("%w: %v", ErrEstimationFailed, err)
	}

	if err := validateFootprint(result); err != nil {
		return FootprintResult{}, fmt.Errorf("%w: %v", ErrEstimationFailed, err)
	}
	return result, nil
}

func validateFootprint(result FootprintResult) error {
	if len(result.Breakdown) == 0 {
		return errors.New("empty breakdown")
	}
	if result.TotalKgCO2eAnnual <= 0 {
		return fmt.Errorf("non-positive total: %.2f", result.TotalKgCO2eAnnual)
	}

	var sum float64
	for _, item := range result.Breakdown {
		sum += item.Percent
	}
	if math.Abs(sum-100) > percentTolerance {
		return fmt.Errorf("breakdown percentages sum to %.2f, expected 100", sum)
	}
	return nil
}
