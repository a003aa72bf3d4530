package ai

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sn-be/ecopilot/integrations/azureai"
)

// stubGenerator returns canned documents keyed by schema name, failing the
// ones listed in fail.
type stubGenerator struct {
	docs      map[string]string
	fail      map[string]bool
	chatReply string
	chatErr   error
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

func (s *stubGenerator) Chat(_ context.Context, _ string, _ []azureai.ChatMessage) (string, error) {
	return s.chatReply, s.chatErr
}

func chatHistory(content string) []azureai.ChatMessage {
	return []azureai.ChatMessage{{Role: "user", Content: content}}
}

const stubFootprintDoc = `{
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
}`

func stubPlanDocs() map[string]string {
	return map[string]string{
		"carbon_footprint":  stubFootprintDoc,
		"executive_summary": `{"executiveSummary": "Your 12.4 tonne footprint is typical for your size, and electricity is your biggest lever."}`,
		"priority_action":   `{"title": "Switch to a renewable electricity tariff", "description": "Electricity is 40% of your footprint.", "impact": "High", "cost": "$", "paybackPeriod": "Immediate"}`,
		"quick_wins": `{"quickWins": [
			{"title": "Swap to LED lighting", "description": "Cuts lighting energy by up to 80%."},
			{"title": "Enable power management", "description": "Sleep settings on shared equipment."},
			{"title": "Start a recycling station", "description": "Diverts waste from landfill."}
		]}`,
		"energy_actions": `{"actions": [
			{"title": "Switch to a green electricity tariff", "description": "Ask your utility for a renewable plan.", "impact": "High", "cost": "$"},
			{"title": "Install rooftop solar panels", "description": "Offsets daytime load.", "impact": "High", "cost": "$$$"},
			{"title": "Upgrade to efficient appliances", "description": "Replace aging equipment at end of life.", "impact": "Medium", "cost": "$$"},
			{"title": "Run an energy audit", "description": "Find the cheapest savings first.", "impact": "Medium", "cost": "$"}
		]}`,
		"transport_actions": `{"actions": [
			{"title": "Start a cycle-to-work scheme", "description": "Shifts short commutes off the road.", "impact": "Medium", "cost": "$"},
			{"title": "Replace short-haul flights with rail", "description": "Rail emits a fraction per trip.", "impact": "High", "cost": "$"},
			{"title": "Pool deliveries weekly", "description": "Fewer trips, fuller loads.", "impact": "Low", "cost": "$"}
		]}`,
		"other_actions": `{"actions": [
			{"title": "Run a waste audit", "description": "Measure before you reduce.", "impact": "Medium", "cost": "$", "category": "Waste"},
			{"title": "Prefer local suppliers", "description": "Shorter supply chains emit less.", "impact": "Medium", "cost": "$", "category": "Supply Chain"},
			{"title": "Appoint a green champion", "description": "Keeps the team engaged.", "impact": "Low", "cost": "$", "category": "Team"}
		]}`,
	}
}
