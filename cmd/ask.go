package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/anvidev01/infosetu/internal/app"
	"github.com/anvidev01/infosetu/internal/config"
	"github.com/anvidev01/infosetu/internal/i18n"
	"github.com/anvidev01/infosetu/internal/log"
	"github.com/anvidev01/infosetu/internal/rag"
)

// runAsk answers a single question from the command line and prints the
// answer, its source, and any citations.
//
// Usage: infosetu ask [--lang=hi] <question...>
func runAsk(ctx context.Context, cfg *config.Config, logger log.Logger, args []string) error {
	lang := i18n.Normalize(cfg.Language)
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if v, ok := strings.CutPrefix(arg, "--lang="); ok {
			lang = i18n.Normalize(v)
			continue
		}
		words = append(words, arg)
	}

	question := strings.TrimSpace(strings.Join(words, " "))
	if question == "" {
		return fmt.Errorf("usage: infosetu ask [--lang=hi] <question>")
	}

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	resp := a.Engine.Ask(ctx, rag.Query{
		CallerID: "cli",
		Message:  question,
		Language: lang,
	})

	fmt.Println(resp.Answer)
	fmt.Println()
	fmt.Printf("Source: %s\n", resp.Source)
	if resp.Source == rag.SourceLocalStore {
		fmt.Printf("Confidence: %.2f\n", resp.Confidence)
	}
	for _, c := range resp.Citations {
		if c.URL != "" {
			fmt.Printf("  - %s (%s)\n", c.Title, c.URL)
		} else {
			fmt.Printf("  - %s\n", c.Title)
		}
	}
	return nil
}
