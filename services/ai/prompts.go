package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sn-be/ecopilot/models"
)

const footprintSystemPrompt = `You are an expert carbon footprint analyst specializing in small and medium-sized businesses.

Your task is to calculate an accurate annual carbon footprint (in kg CO2e) based on the business data provided.

**CALCULATION METHODOLOGY:**

1. **Electricity Emissions:**
   - If actual kWh data is provided: Use it directly
   - If only a currency amount is provided: Estimate kWh based on average electricity rates for the country/region
   - If no data: Estimate based on industry benchmarks (e.g., CBECS data for US, similar databases for other countries)
   - Apply appropriate emission factors based on the country's electricity grid mix

2. **Heating/Natural Gas Emissions:**
   - Convert heating fuel amounts to kWh or therms as needed
   - Apply appropriate emission factors (e.g., ~5.3 kg CO2e per therm for natural gas)
   - If no data: Estimate based on building size, climate zone (from postal code), and industry type

3. **Employee Commute Emissions:**
   - Use employee count and commute pattern to estimate
   - Typical patterns: "mostly_drive" (~4,800 kg CO2e/employee/year), "mixed" (~2,400 kg), "mostly_transit" (~800 kg)
   - Adjust for country-specific factors

4. **Business Travel Emissions:**
   - Flights: ~200-300 kg CO2e per domestic flight, ~1,000-2,000 kg per international flight
   - Consider business type and flight frequency

5. **Waste Emissions:**
   - Estimate based on trash bags per week
   - Typical: ~50-100 kg CO2e per bag per year (including methane from landfill)

**IMPORTANT RULES:**
- Be conservative but realistic in estimates
- Always explain your methodology in the dataSource and calculationNotes fields
- Mark each category's status as "calculated" (actual data), "estimated" (modeled), or "not_calculated"
- Provide specific, actionable recommendations based on the largest emission sources
- Consider regional factors (climate, grid mix, transportation infrastructure)

**OUTPUT REQUIREMENTS:**
- Return a complete breakdown with all major categories
- Percentages must sum to 100%
- Include detailed notes about data quality and assumptions`

const planSystemPrompt = `You are "EcoPilot", a world-class sustainability consultant for small and medium-sized businesses.

You are expert, encouraging, and focused on practical, cost-effective solutions.

**CRITICAL RULES:**
- If the business RENTS their space, NEVER recommend building modifications (solar panels, insulation upgrades, HVAC replacement)
- If they OWN, building improvements are fair game
- Always consider industry context (e.g., restaurants have different needs than offices)
- Be specific with numbers from the footprint data
- Focus on the largest emission sources from the breakdown`

// businessFacts mirrors the questionnaire for the model, grouped the way the
// methodology prompt walks through it.
type businessFacts struct {
	BusinessProfile struct {
		Industry      string  `json:"industry"`
		Country       string  `json:"country"`
		PostalCode    string  `json:"postalCode"`
		EmployeeCount int     `json:"employeeCount"`
		LocationSize  float64 `json:"locationSize"`
		LocationUnit  string  `json:"locationUnit"`
		OwnsOrRents   string  `json:"ownsOrRents"`
	} `json:"businessProfile"`
	EnergyData struct {
		HasActualData            bool    `json:"hasActualData"`
		MonthlyElectricityKwh    float64 `json:"monthlyElectricityKwh,omitempty"`
		MonthlyElectricityAmount float64 `json:"monthlyElectricityAmount,omitempty"`
		ElectricityCurrency      string  `json:"electricityCurrency,omitempty"`
		HeatingFuel              string  `json:"heatingFuel,omitempty"`
		MonthlyHeatingAmount     float64 `json:"monthlyHeatingAmount,omitempty"`
		HeatingUnit              string  `json:"heatingUnit,omitempty"`
	} `json:"energyData"`
	OperationsData struct {
		HasVehicles            bool   `json:"hasVehicles"`
		NumberOfVehicles       int    `json:"numberOfVehicles,omitempty"`
		EmployeeCommutePattern string `json:"employeeCommutePattern"`
		BusinessFlightsPerYear int    `json:"businessFlightsPerYear"`
		WeeklyTrashBags        int    `json:"weeklyTrashBags"`
	} `json:"operationsData"`
}

func buildBusinessFacts(profile models.BusinessProfile) businessFacts {
	var f businessFacts
	f.BusinessProfile.Industry = orUnknown(profile.Industry)
	f.BusinessProfile.Country = orUnknown(profile.Country)
	f.BusinessProfile.PostalCode = profile.PostalCode
	f.BusinessProfile.EmployeeCount = profile.NumberOfEmployees
	f.BusinessProfile.LocationSize = profile.LocationSize
	f.BusinessProfile.LocationUnit = orDefault(profile.LocationUnit, models.LocationUnitSqft)
	f.BusinessProfile.OwnsOrRents = orDefault(profile.OwnOrRent, models.OwnershipRent)

	f.EnergyData.HasActualData = !profile.EnergyDataSkipped
	f.EnergyData.MonthlyElectricityKwh = profile.MonthlyElectricityKwh
	f.EnergyData.MonthlyElectricityAmount = profile.MonthlyElectricityAmount
	f.EnergyData.ElectricityCurrency = profile.ElectricityCurrency
	f.EnergyData.HeatingFuel = profile.HeatingFuel
	f.EnergyData.MonthlyHeatingAmount = profile.MonthlyHeatingAmount
	f.EnergyData.HeatingUnit = profile.HeatingUnit

	f.OperationsData.HasVehicles = profile.HasVehicles
	f.OperationsData.NumberOfVehicles = profile.NumberOfVehicles
	f.OperationsData.EmployeeCommutePattern = orDefault(profile.EmployeeCommutePattern, "unknown")
	f.OperationsData.BusinessFlightsPerYear = profile.BusinessFlightsPerYear
	f.OperationsData.WeeklyTrashBags = profile.WeeklyTrashBags
	return f
}

// planContext is the shared business context handed to all six plan sub-calls.
type planContext struct {
	BusinessProfile struct {
		Industry      string  `json:"industry"`
		Country       string  `json:"country"`
		PostalCode    string  `json:"postalCode"`
		EmployeeCount int     `json:"employeeCount"`
		LocationSize  float64 `json:"locationSize"`
		LocationUnit  string  `json:"locationUnit"`
		OwnsOrRents   string  `json:"ownsOrRents"`
	} `json:"businessProfile"`
	Footprint struct {
		TotalKgCO2eAnnual float64                `json:"total_kgCO2e_annual"`
		DataSource        string                 `json:"data_source"`
		Breakdown         []models.BreakdownItem `json:"breakdown"`
	} `json:"footprint"`
}

func buildPlanContext(profile models.BusinessProfile, footprint FootprintResult) planContext {
	var pc planContext
	facts := buildBusinessFacts(profile)
	pc.BusinessProfile = facts.BusinessProfile
	pc.Footprint.TotalKgCO2eAnnual = footprint.TotalKgCO2eAnnual
	pc.Footprint.DataSource = footprint.DataSource
	pc.Footprint.Breakdown = footprint.Breakdown
	return pc
}

func buildFootprintPrompt(profile models.BusinessProfile) string {
	payload, _ := json.Marshal(buildBusinessFacts(profile))
	return fmt.Sprintf(`Calculate the carbon footprint for this business:

%s

Provide a detailed, accurate calculation with clear methodology notes.`, string(payload))
}

func buildSummaryPrompt(pc planContext) string {
	payload, _ := json.Marshal(pc)
	return fmt.Sprintf(`Generate an encouraging executive summary for this business:

%s

Be specific with numbers and realistic about opportunities.`, string(payload))
}

func buildPriorityPrompt(pc planContext) string {
	payload, _ := json.Marshal(pc)
	top := topEmissionSource(pc.Footprint.Breakdown)
	return fmt.Sprintf(`Identify the single most impactful action for this business:

%s

Target the largest emission source (%s).
Consider their constraints (owns or rents: %s).
Provide specific, actionable guidance.`, string(payload), top, pc.BusinessProfile.OwnsOrRents)
}

func buildQuickWinsPrompt(pc planContext) string {
	payload, _ := json.Marshal(pc)
	return fmt.Sprintf(`Generate 3-5 quick wins for this business:

%s

Focus on:
- Low-cost actions (< $1,000)
- Quick implementation (1-3 months)
- High impact relative to cost
- Specific to their industry (%s)`, string(payload), pc.BusinessProfile.Industry)
}

func buildEnergyActionsPrompt(pc planContext) string {
	rentRule := ""
	if pc.BusinessProfile.OwnsOrRents == models.OwnershipRent {
		rentRule = "\nIMPORTANT: Do NOT recommend building modifications (solar, insulation, HVAC)."
	}
	return fmt.Sprintf(`Generate 2-4 energy-related actions for this business:

Business: %s, %d employees
Largest emission source: %s
Owns or rents: %s

Focus on energy efficiency and renewable energy.%s`,
		pc.BusinessProfile.Industry, pc.BusinessProfile.EmployeeCount,
		topEmissionSource(pc.Footprint.Breakdown), pc.BusinessProfile.OwnsOrRents, rentRule)
}

func buildTransportActionsPrompt(pc planContext, profile models.BusinessProfile) string {
	return fmt.Sprintf(`Generate 1-3 transportation-related actions for this business:

Business: %s, %d employees
Employee commute pattern: %s
Business flights per year: %d

Focus on commuting, business travel, and fleet management.`,
		pc.BusinessProfile.Industry, pc.BusinessProfile.EmployeeCount,
		orDefault(profile.EmployeeCommutePattern, "unknown"), profile.BusinessFlightsPerYear)
}

func buildOtherActionsPrompt(pc planContext, profile models.BusinessProfile) string {
	return fmt.Sprintf(`Generate 1-3 actions for waste, supply chain, or team engagement:

Business: %s, %d employees
Weekly trash bags: %d

Focus on waste reduction, sustainable procurement, or employee engagement.
Label each action with the category it actually addresses.`,
		pc.BusinessProfile.Industry, pc.BusinessProfile.EmployeeCount, profile.WeeklyTrashBags)
}

func topEmissionSource(breakdown []models.BreakdownItem) string {
	if len(breakdown) == 0 {
		return "unknown"
	}
	top := breakdown[0]
	for _, item := range breakdown[1:] {
		if item.KgCO2e > top.KgCO2e {
			top = item
		}
	}
	return fmt.Sprintf("%s: %.1f%% of emissions", top.Category, top.Percent)
}

func buildAdvisorSystemPrompt(bc *BusinessContext) string {
	base := `You are EcoPilot, a friendly and knowledgeable sustainability assistant specializing in helping businesses reduce their carbon footprint.

**YOUR PERSONALITY:**
- Warm, encouraging, and supportive
- Expert in sustainability and environmental science
- Practical and action-oriented
- Keep responses concise but informative (2-4 sentences typically)

**YOUR APPROACH:**
- Answer questions clearly and accurately
- Provide specific, actionable advice
- Reference real data and benchmarks when relevant
- Connect environmental benefits to business benefits (cost savings, employee satisfaction, brand value)

**IMPORTANT RULES:**
- Stay focused on sustainability and environmental topics
- If asked about non-environmental topics, politely redirect to sustainability
- Be honest about trade-offs and challenges
- Don't make up statistics - use general knowledge or acknowledge when you don't have specific data
- Keep responses conversational and easy to understand`

	if bc == nil {
		return base
	}

	var info []string
	if bc.Industry != "" {
		info = append(info, fmt.Sprintf("Industry: %s", bc.Industry))
	}
	if bc.EmployeeCount > 0 {
		info = append(info, fmt.Sprintf("Employee count: %d", bc.EmployeeCount))
	}
	if bc.TotalEmissions > 0 {
		info = append(info, fmt.Sprintf("Current annual emissions: %.0f kg CO2e", bc.TotalEmissions))
	}
	if len(bc.Breakdown) > 0 {
		info = append(info, "\n**EMISSIONS BREAKDOWN:**")
		for _, item := range bc.Breakdown {
			info = append(info, fmt.Sprintf("- %s: %.0f kg CO2e (%.1f%%)", item.Category, item.KgCO2e, item.Percent))
		}
	}
	if bc.TopEmissionSource != "" {
		info = append(info, fmt.Sprintf("\n**LARGEST EMISSION SOURCE:** %s", bc.TopEmissionSource))
	}
	if len(bc.Recommendations) > 0 {
		info = append(info, "\n**EXISTING RECOMMENDATIONS:**")
		for _, rec := range bc.Recommendations {
			info = append(info, fmt.Sprintf("- %s", rec))
		}
	}
	if len(info) == 0 {
		return base
	}

	return base + "\n\n**BUSINESS CONTEXT:**\n" + strings.Join(info, "\n") +
		"\n\nUse this context to personalize your answers."
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
