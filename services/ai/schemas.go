package ai

// Strict JSON schemas for the structured-output calls. Every property is
// listed as required and additionalProperties is off, which is what the
// Azure strict json_schema mode demands.

func objectSchema(props map[string]any, required []string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func numberProp(desc string) map[string]any {
	return map[string]any{"type": "number", "description": desc}
}

func enumProp(desc string, values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values, "description": desc}
}

func arrayProp(items map[string]any, minItems, maxItems int, desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       items,
		"minItems":    minItems,
		"maxItems":    maxItems,
		"description": desc,
	}
}

func impactProp() map[string]any {
	return enumProp("Expected carbon reduction impact (High = >20% reduction, Medium = 5-20%, Low = <5%)",
		"High", "Medium", "Low")
}

func costProp() map[string]any {
	return enumProp("Implementation cost ($ = <$1k, $$ = $1k-$10k, $$$ = >$10k)",
		"$", "$$", "$$$")
}

func footprintSchema() map[string]any {
	breakdownItem := objectSchema(map[string]any{
		"category": stringProp("Category name (e.g. 'Electricity', 'Natural Gas', 'Commutes', 'Waste', 'Business Travel')"),
		"kgCO2e":   numberProp("Annual kg CO2e for this category"),
		"percent":  numberProp("Percentage of total footprint; percentages must sum to 100"),
		"status":   enumProp("Status of this calculation", "calculated", "estimated", "not_calculated"),
		"notes":    stringProp("Additional notes about this category"),
	}, []string{"category", "kgCO2e", "percent", "status", "notes"})

	return objectSchema(map[string]any{
		"totalKgCO2eAnnual": numberProp("Total annual carbon footprint in kg CO2 equivalent"),
		"dataSource":        stringProp("Description of how the footprint was calculated (e.g. 'Based on actual utility bills' or 'Estimated from industry benchmarks')"),
		"breakdown":         arrayProp(breakdownItem, 3, 8, "Breakdown of emissions by category"),
		"calculationNotes":  stringProp("Important notes about the calculation methodology or data quality"),
		"recommendations": arrayProp(stringProp("One high-level recommendation"), 0, 5,
			"Initial high-level recommendations based on the footprint"),
	}, []string{"totalKgCO2eAnnual", "dataSource", "breakdown", "calculationNotes", "recommendations"})
}

func executiveSummarySchema() map[string]any {
	return objectSchema(map[string]any{
		"executiveSummary": stringProp("A brief (2-3 sentences), encouraging summary of the business's current carbon footprint and potential for improvement. Be specific with numbers and realistic about opportunities."),
	}, []string{"executiveSummary"})
}

func priorityActionSchema() map[string]any {
	return objectSchema(map[string]any{
		"title":         stringProp("Clear, actionable title for the #1 recommended action"),
		"description":   stringProp("Detailed explanation (2-3 sentences)"),
		"impact":        impactProp(),
		"cost":          costProp(),
		"paybackPeriod": stringProp("Estimated payback period (e.g. '1.5 years', 'Immediate')"),
	}, []string{"title", "description", "impact", "cost", "paybackPeriod"})
}

func quickWinsSchema() map[string]any {
	win := objectSchema(map[string]any{
		"title":       stringProp("Short, actionable title"),
		"description": stringProp("Brief explanation of the action and its benefit (1-2 sentences)"),
	}, []string{"title", "description"})

	return objectSchema(map[string]any{
		"quickWins": arrayProp(win, minQuickWins, maxQuickWins,
			"Low-cost, high-impact actions that can be implemented quickly (within 1-3 months)"),
	}, []string{"quickWins"})
}

// actionBatchSchema constrains one category batch of the full action plan.
// The waste/supply-chain/team batch labels each action itself, so the merge
// step never has to guess its category.
func actionBatchSchema(minItems, maxItems int, categories ...string) map[string]any {
	props := map[string]any{
		"title":       stringProp("Clear, actionable title"),
		"description": stringProp("Detailed explanation including specific steps and expected outcomes (2-3 sentences)"),
		"impact":      impactProp(),
		"cost":        costProp(),
	}
	required := []string{"title", "description", "impact", "cost"}
	if len(categories) > 0 {
		props["category"] = enumProp("The category this action addresses", categories...)
		required = append(required, "category")
	}

	return objectSchema(map[string]any{
		"actions": arrayProp(objectSchema(props, required), minItems, maxItems, ""),
	}, []string{"actions"})
}
