// Package answer turns retrieved context into a citizen-facing reply.
//
// Generation is context-bound: the model is instructed to answer only from
// the supplied context and to say it does not know otherwise. A fallback
// chain of models is tried in order so a cloud outage degrades to the local
// model instead of an error.
package answer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anvidev01/infosetu/internal/i18n"
	"github.com/anvidev01/infosetu/internal/log"
)

// ErrNoModels is returned when the generator is constructed without any model.
var ErrNoModels = errors.New("answer: no models configured")

// Model generates a reply from a system prompt and a user message.
// Implementations must be safe for concurrent use.
type Model interface {
	Name() string
	Generate(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Input is one generation request.
type Input struct {
	// Question is the sanitized citizen question.
	Question string

	// Context is the retrieved evidence the answer must be grounded in.
	Context string

	// Language is the target response language.
	Language i18n.Language
}

// Generator produces answers using the first model in the chain that
// responds. Safe for concurrent use.
type Generator struct {
	models  []Model
	timeout time.Duration
	logger  log.Logger
}

// NewGenerator creates a Generator over the given model chain, tried in
// order. Zero timeout falls back to 30 seconds.
func NewGenerator(models []Model, timeout time.Duration, logger log.Logger) (*Generator, error) {
	if len(models) == 0 {
		return nil, ErrNoModels
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Generator{models: models, timeout: timeout, logger: logger}, nil
}

// Generate builds the context-bound prompt and runs the model chain.
// It returns the first non-empty reply; the error aggregates every model
// failure when the whole chain is exhausted.
func (g *Generator) Generate(ctx context.Context, in Input) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	systemPrompt := buildSystemPrompt(in.Language, in.Context)

	var errs []error
	for _, model := range g.models {
		reply, err := model.Generate(genCtx, systemPrompt, in.Question)
		if err != nil {
			g.logger.Warn("model generation failed, trying next in chain",
				"model", model.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", model.Name(), err))
			continue
		}
		if reply == "" {
			g.logger.Warn("model returned empty reply, trying next in chain",
				"model", model.Name())
			errs = append(errs, fmt.Errorf("%s: empty reply", model.Name()))
			continue
		}
		g.logger.Debug("generated answer", "model", model.Name(), "reply_length", len(reply))
		return reply, nil
	}

	return "", fmt.Errorf("all models failed: %w", errors.Join(errs...))
}
