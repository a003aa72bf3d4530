package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/sn-be/ecopilot/integrations/azureai"
	"github.com/sn-be/ecopilot/models"
)

// BusinessContext is what the advisor knows about the business when
// answering. Assembled server-side from the profile and the latest footprint.
type BusinessContext struct {
	Industry          string
	EmployeeCount     int
	TotalEmissions    float64
	Breakdown         []models.BreakdownItem
	TopEmissionSource string
	Recommendations   []string
}

// Advise answers one chat turn given the message history. The context is
// optional; without it the advisor falls back to general guidance.
func (o *Orchestrator) Advise(ctx context.Context, bc *BusinessContext, messages []azureai.ChatMessage) (string, error) {
	if !o.IsReady() {
		return "", errors.New("AI client not configured")
	}
	if len(messages) == 0 {
		return "", errors.New("messages required")
	}
	for _, m := range messages {
		if m.Role != "user" && m.Role != "assistant" {
			return "", errors.New("message roles must be user or assistant")
		}
		if strings.TrimSpace(m.Content) == "" {
			return "", errors.New("empty message content")
		}
	}

	return o.gen.Chat(ctx, buildAdvisorSystemPrompt(bc), messages)
}
