package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/tracing"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/anvidev01/infosetu/db"
	"github.com/anvidev01/infosetu/internal/answer"
	"github.com/anvidev01/infosetu/internal/config"
	"github.com/anvidev01/infosetu/internal/guardrail"
	"github.com/anvidev01/infosetu/internal/knowledge"
	"github.com/anvidev01/infosetu/internal/log"
	"github.com/anvidev01/infosetu/internal/rag"
	"github.com/anvidev01/infosetu/internal/search"
)

// Setup creates and initializes the application. On failure everything
// already initialized is released before the error is returned.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	if logger == nil {
		logger = log.NewNop()
	}
	a := &App{Config: cfg, Logger: logger}

	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	a.otelCleanup = provideOtelShutdown(ctx, cfg, logger)

	pool, err := provideDBPool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.DBPool = pool

	provider := effectiveProvider(cfg, logger)

	g, err := provideGenkit(ctx, cfg, provider, logger)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	embedder := provideEmbedder(g, cfg, provider)
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not found for provider %q", cfg.EmbedderModel, provider)
	}
	a.Embedder = embedder

	a.Store = knowledge.New(knowledge.NewQueries(pool), embedder, logger)
	a.Indexer = knowledge.NewIndexer(a.Store, logger)

	guard := guardrail.NewValidator(guardrail.Config{
		RateWindow: time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		RateLimit:  cfg.RateLimitMaxRequests,
		Logger:     logger,
	})

	webClient := search.NewClient(search.Config{
		Endpoint:       cfg.Search.Endpoint,
		APIKey:         cfg.Search.APIKey,
		IncludeDomains: cfg.Search.IncludeDomains,
		ExcludeDomains: cfg.Search.ExcludeDomains,
		MaxResults:     cfg.Search.MaxResults,
		Timeout:        time.Duration(cfg.Search.TimeoutSeconds) * time.Second,
		Logger:         logger,
	})

	generator, err := provideGenerator(g, cfg, provider, logger)
	if err != nil {
		return nil, err
	}

	a.Engine = rag.NewEngine(guard, a.Store, webClient, generator, rag.Config{
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		TopK:                cfg.RetrievalTopK,
		Logger:              logger,
	})

	return a, nil
}

// effectiveProvider resolves the generation provider chain once at startup.
// Gemini without credentials degrades to the local Ollama runtime instead of
// failing every request later.
func effectiveProvider(cfg *config.Config, logger log.Logger) string {
	if cfg.Provider == config.ProviderGemini && os.Getenv("GEMINI_API_KEY") == "" {
		logger.Warn("GEMINI_API_KEY not set, falling back to local ollama runtime",
			"ollama_host", cfg.OllamaHost, "ollama_model", cfg.OllamaModel)
		return config.ProviderOllama
	}
	return cfg.Provider
}

// provideOtelShutdown exports traces over OTLP HTTP to a local collector
// agent. Runs before Genkit init so its TracerProvider is ready.
func provideOtelShutdown(ctx context.Context, cfg *config.Config, logger log.Logger) func() {
	agentHost := cfg.OTLP.AgentHost
	if agentHost == "" {
		agentHost = "localhost:4318"
	}

	// Startup runs single-threaded, so Setenv is safe here.
	if cfg.OTLP.ServiceName != "" {
		_ = os.Setenv("OTEL_SERVICE_NAME", cfg.OTLP.ServiceName)
	}
	if cfg.OTLP.Environment != "" {
		_ = os.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment="+cfg.OTLP.Environment)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(agentHost),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		logger.Warn("creating trace exporter, tracing disabled", "error", err)
		return func() {}
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter)
	tracing.TracerProvider().RegisterSpanProcessor(processor)

	logger.Debug("trace export enabled",
		"agent", agentHost,
		"service", cfg.OTLP.ServiceName,
		"environment", cfg.OTLP.Environment,
	)

	shutdown := tracing.TracerProvider().Shutdown
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("shutting down tracer provider", "error", err)
		}
	}
}

// provideDBPool runs migrations and opens the connection pool.
func provideDBPool(ctx context.Context, cfg *config.Config, logger log.Logger) (*pgxpool.Pool, error) {
	if err := db.Migrate(cfg.PostgresURL(), logger); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// provideGenkit initializes Genkit with the resolved provider plugins.
// The Ollama plugin is always registered so the generation chain can fall
// back to the local runtime even when Gemini is primary.
func provideGenkit(ctx context.Context, cfg *config.Config, provider string, logger log.Logger) (*genkit.Genkit, error) {
	ollamaPlugin := &ollama.Ollama{ServerAddress: cfg.OllamaHost}

	var g *genkit.Genkit
	switch provider {
	case config.ProviderOllama:
		g = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))
	default:
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}, ollamaPlugin))
	}
	if g == nil {
		return nil, errors.New("initializing genkit")
	}

	// Ollama needs explicit model registration, there is no auto-discovery.
	ollamaPlugin.DefineModel(g, ollama.ModelDefinition{
		Name: cfg.OllamaModel,
		Type: "chat",
	}, nil)

	if provider == config.ProviderOllama {
		ollamaPlugin.DefineEmbedder(g, cfg.OllamaHost, cfg.EmbedderModel, nil)
	}

	logger.Info("initialized genkit", "provider", provider, "model", cfg.ModelName)
	return g, nil
}

// provideEmbedder looks up the embedder registered by the provider plugin.
// Index-time and query-time embeddings must come from the same model, so
// there is exactly one embedder per process.
func provideEmbedder(g *genkit.Genkit, cfg *config.Config, provider string) ai.Embedder {
	if provider == config.ProviderOllama {
		return ollama.Embedder(g, cfg.OllamaHost)
	}
	return googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
}

// provideGenerator builds the model fallback chain: the configured primary
// first, then the local Ollama model when the primary is hosted.
func provideGenerator(g *genkit.Genkit, cfg *config.Config, provider string, logger log.Logger) (*answer.Generator, error) {
	temperature := float64(cfg.Temperature)

	var models []answer.Model
	if provider == config.ProviderOllama {
		models = append(models, answer.NewGenkitModel(g, "ollama/"+cfg.OllamaModel, temperature))
	} else {
		models = append(models,
			answer.NewGenkitModel(g, cfg.FullModelName(), temperature),
			answer.NewGenkitModel(g, "ollama/"+cfg.OllamaModel, temperature),
		)
	}

	generator, err := answer.NewGenerator(models, 30*time.Second, logger)
	if err != nil {
		return nil, fmt.Errorf("creating answer generator: %w", err)
	}
	return generator, nil
}
