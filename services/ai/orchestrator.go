package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/sn-be/ecopilot/integrations/azureai"
)

// Generator is the slice of the Azure OpenAI client the orchestrator needs.
type Generator interface {
	GenerateObject(ctx context.Context, system, user, schemaName string, schema map[string]any, out any) error
	Chat(ctx context.Context, system string, messages []azureai.ChatMessage) (string, error)
}

// Orchestrator runs the generative pipeline: footprint estimation, the
// six-way action plan fan-out and the advisor chat.
type Orchestrator struct {
	gen Generator
}

func NewOrchestrator(gen Generator) *Orchestrator {
	return &Orchestrator{gen: gen}
}

var orchestrator *Orchestrator

func Init() {
	client, err := azureai.NewClientFromEnv()
	if err != nil {
		zap.L().Warn("AI features disabled", zap.Error(err))
		orchestrator = nil
		return
	}
	orchestrator = &Orchestrator{gen: client}
}

func Get() *Orchestrator {
	return orchestrator
}

func Set(o *Orchestrator) {
	orchestrator = o
}

func (o *Orchestrator) IsReady() bool {
	return o != nil && o.gen != nil
}
