package answer

import (
	"context"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// GenkitModel adapts a Genkit-registered model to the Model interface.
type GenkitModel struct {
	g           *genkit.Genkit
	modelName   string
	temperature float64
}

// NewGenkitModel creates a GenkitModel for a fully qualified model name,
// for example "googleai/gemini-2.5-flash" or "ollama/llama3.2".
func NewGenkitModel(g *genkit.Genkit, modelName string, temperature float64) *GenkitModel {
	return &GenkitModel{g: g, modelName: modelName, temperature: temperature}
}

// Name returns the fully qualified model name.
func (m *GenkitModel) Name() string { return m.modelName }

// Generate runs one completion through Genkit.
func (m *GenkitModel) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := genkit.Generate(ctx, m.g,
		ai.WithModelName(m.modelName),
		ai.WithSystem(systemPrompt),
		ai.WithPrompt(userMessage),
		ai.WithConfig(&ai.GenerationCommonConfig{Temperature: m.temperature}),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}
