package cmd

import (
	"context"
	"fmt"

	"github.com/anvidev01/infosetu/internal/app"
	"github.com/anvidev01/infosetu/internal/config"
	"github.com/anvidev01/infosetu/internal/log"
)

// runIndex embeds and upserts the curated scheme corpus. Safe to rerun:
// documents have stable IDs and are updated in place.
func runIndex(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	if err := a.Indexer.IndexSchemes(ctx); err != nil {
		return fmt.Errorf("indexing scheme corpus: %w", err)
	}

	count, err := a.Store.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting documents: %w", err)
	}
	fmt.Printf("Knowledge store ready: %d documents indexed.\n", count)
	return nil
}
