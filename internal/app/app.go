// Package app wires configuration, storage, models, and the answer pipeline
// into a running application.
package app

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anvidev01/infosetu/internal/config"
	"github.com/anvidev01/infosetu/internal/knowledge"
	"github.com/anvidev01/infosetu/internal/log"
	"github.com/anvidev01/infosetu/internal/rag"
)

// App is the application container. Build one with Setup and release it
// with Close.
type App struct {
	Config *config.Config
	Logger log.Logger

	Genkit   *genkit.Genkit
	Embedder ai.Embedder
	DBPool   *pgxpool.Pool

	Store   *knowledge.Store
	Indexer *knowledge.Indexer
	Engine  *rag.Engine

	otelCleanup func()
}

// Close releases all resources in reverse setup order.
func (a *App) Close() error {
	a.Logger.Info("shutting down application")

	if a.DBPool != nil {
		a.DBPool.Close()
		a.Logger.Debug("database pool closed")
	}
	if a.otelCleanup != nil {
		a.otelCleanup()
	}
	return nil
}
