package routes

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sn-be/ecopilot/integrations/azureai"
	"github.com/sn-be/ecopilot/services/ai"
)

// stubGenerator stands in for the Azure OpenAI client: canned documents per
// schema name, an optional canned chat reply, optional per-schema failures.
type stubGenerator struct {
	docs      map[string]string
	fail      map[string]bool
	chatReply string
}

func (s *stubGenerator) GenerateObject(_ context.Context, _, _, schemaName string, _ map[string]any, out any) error {
	if s.fail[schemaName] {
		return errors.New("upstream unavailable")
	}
	doc, ok := s.docs[schemaName]
	if !ok {
		return errors.New("no canned document for " + schemaName)
	}
	return json.Unmarshal([]byte(doc), out)
}

func (s *stubGenerator) Chat(context.Context, string, []azureai.ChatMessage) (string, error) {
	return s.chatReply, nil
}

// installStubAI registers a working stub pipeline and returns it for tweaking.
func installStubAI() *stubGenerator {
	stub := &stubGenerator{
		docs: map[string]string{
			"carbon_footprint": `{
				"totalKgCO2eAnnual": 12400,
				"dataSource": "Based on actual utility bills and industry benchmarks",
				"breakdown": [
					{"category": "Electricity", "kgCO2e": 4960, "percent": 40, "status": "calculated", "notes": ""},
					{"category": "Natural Gas", "kgCO2e": 3100, "percent": 25, "status": "estimated", "notes": ""},
					{"category": "Commutes", "kgCO2e": 2480, "percent": 20, "status": "estimated", "notes": ""},
					{"category": "Business Travel", "kgCO2e": 1240, "percent": 10, "status": "calculated", "notes": ""},
					{"category": "Waste", "kgCO2e": 620, "percent": 5, "status": "estimated", "notes": ""}
				],
				"calculationNotes": "Grid mix factors for the national average.",
				"recommendations": ["Switch to a renewable electricity tariff"]
			}`,
			"executive_summary": `{"executiveSummary": "Electricity is your biggest lever."}`,
			"priority_action":   `{"title": "Switch to a renewable electricity tariff", "description": "Electricity is 40% of your footprint.", "impact": "High", "cost": "$", "paybackPeriod": "Immediate"}`,
			"quick_wins": `{"quickWins": [
				{"title": "Swap to LED lighting", "description": "Cuts lighting energy."},
				{"title": "Enable power management", "description": "Sleep settings everywhere."},
				{"title": "Start a recycling station", "description": "Diverts waste from landfill."}
			]}`,
			"energy_actions": `{"actions": [
				{"title": "Switch to a green electricity tariff", "description": "Ask your utility.", "impact": "High", "cost": "$"},
				{"title": "Upgrade to efficient appliances", "description": "At end of life.", "impact": "Medium", "cost": "$$"},
				{"title": "Run an energy audit", "description": "Find the cheapest savings.", "impact": "Medium", "cost": "$"}
			]}`,
			"transport_actions": `{"actions": [
				{"title": "Start a cycle-to-work scheme", "description": "Shifts short commutes.", "impact": "Medium", "cost": "$"},
				{"title": "Replace short-haul flights with rail", "description": "A fraction per trip.", "impact": "High", "cost": "$"},
				{"title": "Pool deliveries weekly", "description": "Fuller loads.", "impact": "Low", "cost": "$"}
			]}`,
			"other_actions": `{"actions": [
				{"title": "Run a waste audit", "description": "Measure first.", "impact": "Medium", "cost": "$", "category": "Waste"},
				{"title": "Prefer local suppliers", "description": "Shorter chains.", "impact": "Medium", "cost": "$", "category": "Supply Chain"},
				{"title": "Appoint a green champion", "description": "Keeps momentum.", "impact": "Low", "cost": "$", "category": "Team"}
			]}`,
		},
		fail:      map[string]bool{},
		chatReply: "Start with your electricity tariff.",
	}
	ai.Set(ai.NewOrchestrator(stub))
	return stub
}
