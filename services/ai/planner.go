package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sn-be/ecopilot/models"
	"github.com/sn-be/ecopilot/utils"
)

// ErrGenerationFailed wraps any failure of the action plan fan-out. The six
// sub-calls are all-or-nothing: one failure fails the whole plan and nothing
// is kept.
var ErrGenerationFailed = errors.New("action plan generation failed")

const (
	minQuickWins = 3
	maxQuickWins = 5

	minEnergyActions    = 2
	maxEnergyActions    = 4
	minTransportActions = 1
	maxTransportActions = 3
	minOtherActions     = 1
	maxOtherActions     = 3

	minPlanActions = 8
	maxPlanActions = 15
)

// DashboardResult is the merged action plan document.
type DashboardResult struct {
	ExecutiveSummary    string                `json:"executiveSummary"`
	PrioritizedNextStep models.PriorityAction `json:"prioritizedNextStep"`
	QuickWins           []models.QuickWin     `json:"quickWins"`
	FullActionPlan      []models.PlanAction   `json:"fullActionPlan"`
}

type summaryResult struct {
	ExecutiveSummary string `json:"executiveSummary"`
}

type priorityResult struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Impact        string `json:"impact"`
	Cost          string `json:"cost"`
	PaybackPeriod string `json:"paybackPeriod"`
}

type quickWinsResult struct {
	QuickWins []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"quickWins"`
}

type actionBatchResult struct {
	Actions []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Impact      string `json:"impact"`
		Cost        string `json:"cost"`
		Category    string `json:"category,omitempty"`
	} `json:"actions"`
}

// GeneratePlan fans out six focused generation calls and merges the results
// into one plan. Smaller schema-constrained requests fail less often than one
// large call and run concurrently; the join is fail-fast, cancelling the
// sibling calls through the group context.
func (o *Orchestrator) GeneratePlan(ctx context.Context, profile models.BusinessProfile, footprint FootprintResult) (DashboardResult, error) {
	var result DashboardResult
	if !o.IsReady() {
		return result, fmt.Errorf("%w: AI client not configured", ErrGenerationFailed)
	}

	pc := buildPlanContext(profile, footprint)

	var (
		summary   summaryResult
		priority  priorityResult
		quickWins quickWinsResult
		energy    actionBatchResult
		transport actionBatchResult
		other     actionBatchResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return o.gen.GenerateObject(gctx, planSystemPrompt, buildSummaryPrompt(pc),
			"executive_summary", executiveSummarySchema(), &summary)
	})
	g.Go(func() error {
		return o.gen.GenerateObject(gctx, planSystemPrompt, buildPriorityPrompt(pc),
			"priority_action", priorityActionSchema(), &priority)
	})
	g.Go(func() error {
		return o.gen.GenerateObject(gctx, planSystemPrompt, buildQuickWinsPrompt(pc),
			"quick_wins", quickWinsSchema(), &quickWins)
	})
	g.Go(func() error {
		return o.gen.GenerateObject(gctx, planSystemPrompt, buildEnergyActionsPrompt(pc),
			"energy_actions", actionBatchSchema(minEnergyActions, maxEnergyActions), &energy)
	})
	g.Go(func() error {
		return o.gen.GenerateObject(gctx, planSystemPrompt, buildTransportActionsPrompt(pc, profile),
			"transport_actions", actionBatchSchema(minTransportActions, maxTransportActions), &transport)
	})
	g.Go(func() error {
		return o.gen.GenerateObject(gctx, planSystemPrompt, buildOtherActionsPrompt(pc, profile),
			"other_actions", actionBatchSchema(minOtherActions, maxOtherActions,
				models.CategoryWaste, models.CategorySupplyChain, models.CategoryTeam), &other)
	})

	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if err := validatePlanBounds(summary, quickWins, energy, transport, other); err != nil {
		return result, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	renting := profile.OwnOrRent == models.OwnershipRent
	result.ExecutiveSummary = summary.ExecutiveSummary
	result.PrioritizedNextStep = models.PriorityAction{
		ID:            utils.NewActionID(),
		Title:         priority.Title,
		Description:   priority.Description,
		Impact:        priority.Impact,
		Cost:          priority.Cost,
		PaybackPeriod: priority.PaybackPeriod,
	}
	for _, win := range quickWins.QuickWins {
		result.QuickWins = append(result.QuickWins, models.QuickWin{
			ID:          utils.NewActionID(),
			Title:       win.Title,
			Description: win.Description,
		})
	}
	result.FullActionPlan = mergeActionBatches(renting, energy, transport, other)
	return result, nil
}

func validatePlanBounds(summary summaryResult, quickWins quickWinsResult, energy, transport, other actionBatchResult) error {
	if strings.TrimSpace(summary.ExecutiveSummary) == "" {
		return errors.New("empty executive summary")
	}
	if n := len(quickWins.QuickWins); n < minQuickWins || n > maxQuickWins {
		return fmt.Errorf("%d quick wins, expected %d-%d", n, minQuickWins, maxQuickWins)
	}
	if n := len(energy.Actions); n < minEnergyActions || n > maxEnergyActions {
		return fmt.Errorf("%d energy actions, expected %d-%d", n, minEnergyActions, maxEnergyActions)
	}
	if n := len(transport.Actions); n < minTransportActions || n > maxTransportActions {
		return fmt.Errorf("%d transport actions, expected %d-%d", n, minTransportActions, maxTransportActions)
	}
	if n := len(other.Actions); n < minOtherActions || n > maxOtherActions {
		return fmt.Errorf("%d other actions, expected %d-%d", n, minOtherActions, maxOtherActions)
	}
	if total := len(energy.Actions) + len(transport.Actions) + len(other.Actions); total < minPlanActions || total > maxPlanActions {
		return fmt.Errorf("%d plan actions, expected %d-%d", total, minPlanActions, maxPlanActions)
	}
	return nil
}

// mergeActionBatches concatenates the three category batches in plan order.
// For renting businesses, energy actions that slipped past the prompt rule
// and still suggest building modifications are dropped here rather than
// trusted to the model.
func mergeActionBatches(renting bool, energy, transport, other actionBatchResult) []models.PlanAction {
	var plan []models.PlanAction

	for _, a := range energy.Actions {
		if renting && mentionsBuildingModification(a.Title + " " + a.Description) {
			zap.L().Warn("dropping building-modification action for renting business",
				zap.String("title", a.Title))
			continue
		}
		plan = append(plan, models.PlanAction{
			ID:          utils.NewActionID(),
			Category:    models.CategoryEnergy,
			Title:       a.Title,
			Description: a.Description,
			Impact:      a.Impact,
			Cost:        a.Cost,
		})
	}
	for _, a := range transport.Actions {
		plan = append(plan, models.PlanAction{
			ID:          utils.NewActionID(),
			Category:    models.CategoryTransport,
			Title:       a.Title,
			Description: a.Description,
			Impact:      a.Impact,
			Cost:        a.Cost,
		})
	}
	for _, a := range other.Actions {
		category := a.Category
		if category == "" {
			category = models.CategoryWaste
		}
		plan = append(plan, models.PlanAction{
			ID:          utils.NewActionID(),
			Category:    category,
			Title:       a.Title,
			Description: a.Description,
			Impact:      a.Impact,
			Cost:        a.Cost,
		})
	}
	return plan
}

var buildingModificationTerms = []string{
	"solar panel",
	"solar install",
	"insulation",
	"hvac",
	"heat pump",
	"re-roof",
	"roof replacement",
	"window replacement",
	"boiler replacement",
}

func mentionsBuildingModification(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range buildingModificationTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
