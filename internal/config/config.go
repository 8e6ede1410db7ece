// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.infosetu/config.yaml or ./config.yaml)
//  3. Default values
//
// Main configuration categories:
//   - AI: generation provider chain, model names, temperature, embedder
//   - Retrieval: confidence threshold, top-K
//   - Guardrail: per-caller rate-limit window and cap
//   - Search: fallback web-search provider and domain lists
//   - Storage: PostgreSQL connection
//   - Server: listen address, CORS, proxy trust
//   - Observability: OTLP trace export
//
// Security: sensitive values (Postgres password, search API key) are masked
// in MarshalJSON. Validation is fail-fast with sentinel errors so callers can
// use errors.Is().
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidModelName indicates the model name is empty or malformed.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidThreshold indicates the confidence threshold is out of range.
	ErrInvalidThreshold = errors.New("invalid confidence threshold")

	// ErrInvalidTopK indicates the retrieval top-K is out of range.
	ErrInvalidTopK = errors.New("invalid retrieval top-k")

	// ErrInvalidRateLimit indicates the guardrail rate-limit settings are invalid.
	ErrInvalidRateLimit = errors.New("invalid rate limit")

	// ErrInvalidSearchEndpoint indicates the search provider endpoint is malformed.
	ErrInvalidSearchEndpoint = errors.New("invalid search endpoint")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is invalid.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidOllamaHost indicates the Ollama host is invalid.
	ErrInvalidOllamaHost = errors.New("invalid Ollama host")

	// ErrInvalidLanguage indicates the default response language is not supported.
	ErrInvalidLanguage = errors.New("invalid language")
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Defaults for the retrieval pipeline. Exposed so tests and the engine share
// a single source of truth.
const (
	// DefaultConfidenceThreshold is the minimum similarity for local context
	// to be trusted without escalating to web search.
	DefaultConfidenceThreshold float32 = 0.7

	// DefaultRetrievalTopK is the number of documents fetched per query.
	DefaultRetrievalTopK = 3

	// DefaultEmbedderModel truncates to 768 dimensions, matching the
	// documents table schema (see db/migrations).
	DefaultEmbedderModel = "gemini-embedding-001"
)

// SearchConfig configures the external web-search fallback provider.
type SearchConfig struct {
	Endpoint       string   `mapstructure:"endpoint" json:"endpoint"`
	APIKey         string   `mapstructure:"api_key" json:"api_key"` // SENSITIVE: masked in MarshalJSON
	IncludeDomains []string `mapstructure:"include_domains" json:"include_domains"`
	ExcludeDomains []string `mapstructure:"exclude_domains" json:"exclude_domains"`
	MaxResults     int      `mapstructure:"max_results" json:"max_results"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" json:"timeout_seconds"`
}

// OTLPConfig configures trace export to a local collector agent.
type OTLPConfig struct {
	AgentHost   string `mapstructure:"agent_host" json:"agent_host"`
	ServiceName string `mapstructure:"service_name" json:"service_name"`
	Environment string `mapstructure:"environment" json:"environment"`
}

// Config stores application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON().
type Config struct {
	// AI provider and model configuration
	Provider    string  `mapstructure:"provider" json:"provider"`     // "gemini" (default) or "ollama"
	ModelName   string  `mapstructure:"model_name" json:"model_name"` // e.g. "gemini-2.5-flash"
	Temperature float32 `mapstructure:"temperature" json:"temperature"`
	Language    string  `mapstructure:"language" json:"language"` // default response language

	// Ollama configuration (local fallback runtime)
	OllamaHost  string `mapstructure:"ollama_host" json:"ollama_host"`
	OllamaModel string `mapstructure:"ollama_model" json:"ollama_model"`

	// Retrieval configuration
	EmbedderModel       string  `mapstructure:"embedder_model" json:"embedder_model"`
	ConfidenceThreshold float32 `mapstructure:"confidence_threshold" json:"confidence_threshold"`
	RetrievalTopK       int     `mapstructure:"retrieval_top_k" json:"retrieval_top_k"`

	// Guardrail configuration
	RateLimitWindowSeconds int `mapstructure:"rate_limit_window_seconds" json:"rate_limit_window_seconds"`
	RateLimitMaxRequests   int `mapstructure:"rate_limit_max_requests" json:"rate_limit_max_requests"`

	// Search fallback configuration
	Search SearchConfig `mapstructure:"search" json:"search"`

	// Storage configuration
	PostgresHost     string `mapstructure:"postgres_host" json:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port" json:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user" json:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password" json:"postgres_password"` // SENSITIVE: masked in MarshalJSON
	PostgresDBName   string `mapstructure:"postgres_db_name" json:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode" json:"postgres_ssl_mode"`

	// Server configuration
	ServerAddr  string   `mapstructure:"server_addr" json:"server_addr"`
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`
	TrustProxy  bool     `mapstructure:"trust_proxy" json:"trust_proxy"` // trust X-Forwarded-For (set behind reverse proxy)

	// Observability configuration
	OTLP OTLPConfig `mapstructure:"otlp" json:"otlp"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".infosetu")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use defaults.
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults() {
	// AI defaults. Temperature is fixed low so answers stay extractive and
	// context-bound rather than creative.
	viper.SetDefault("provider", ProviderGemini)
	viper.SetDefault("model_name", "gemini-2.5-flash")
	viper.SetDefault("temperature", 0.2)
	viper.SetDefault("language", "en")

	// Ollama defaults (local runtime used when no hosted credentials exist)
	viper.SetDefault("ollama_host", "http://localhost:11434")
	viper.SetDefault("ollama_model", "llama3.2")

	// Retrieval defaults
	viper.SetDefault("embedder_model", DefaultEmbedderModel)
	viper.SetDefault("confidence_threshold", DefaultConfidenceThreshold)
	viper.SetDefault("retrieval_top_k", DefaultRetrievalTopK)

	// Guardrail defaults: 10 requests per caller per minute
	viper.SetDefault("rate_limit_window_seconds", 60)
	viper.SetDefault("rate_limit_max_requests", 10)

	// Search fallback defaults. Only official government portals are
	// eligible; generic content sites are excluded at the provider AND
	// re-checked in-process (defense in depth).
	viper.SetDefault("search.endpoint", "https://api.tavily.com/search")
	viper.SetDefault("search.include_domains", []string{
		".gov.in",
		".nic.in",
		"india.gov.in",
		"mygov.in",
		"uidai.gov.in",
		"pmkisan.gov.in",
	})
	viper.SetDefault("search.exclude_domains", []string{
		"wikipedia.org",
		"quora.com",
		"reddit.com",
		"medium.com",
		"facebook.com",
		"twitter.com",
		"x.com",
	})
	viper.SetDefault("search.max_results", 3)
	viper.SetDefault("search.timeout_seconds", 8)

	// PostgreSQL defaults (local development database)
	viper.SetDefault("postgres_host", "localhost")
	viper.SetDefault("postgres_port", 5432)
	viper.SetDefault("postgres_user", "infosetu")
	viper.SetDefault("postgres_password", "infosetu_dev_password")
	viper.SetDefault("postgres_db_name", "infosetu")
	viper.SetDefault("postgres_ssl_mode", "disable")

	// Server defaults
	viper.SetDefault("server_addr", "127.0.0.1:8080")
	viper.SetDefault("cors_origins", []string{"http://localhost:3000"})
	viper.SetDefault("trust_proxy", false)

	// OTLP defaults
	viper.SetDefault("otlp.agent_host", "localhost:4318")
	viper.SetDefault("otlp.service_name", "infosetu")
	viper.SetDefault("otlp.environment", "dev")
}

// bindEnvVariables binds sensitive environment variables explicitly.
//
// Secrets come from the environment, never the config file:
//   - GEMINI_API_KEY is read directly by the Genkit plugin (not via Viper);
//     its presence decides the generation provider chain at startup.
//   - SEARCH_API_KEY authenticates against the web-search provider.
func bindEnvVariables() {
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("search.api_key", "SEARCH_API_KEY")
	mustBind("postgres_password", "INFOSETU_POSTGRES_PASSWORD")
	mustBind("provider", "INFOSETU_PROVIDER")
	mustBind("model_name", "INFOSETU_MODEL_NAME")
	mustBind("ollama_host", "INFOSETU_OLLAMA_HOST")
	mustBind("server_addr", "INFOSETU_SERVER_ADDR")
	mustBind("cors_origins", "INFOSETU_CORS_ORIGINS")
	mustBind("trust_proxy", "INFOSETU_TRUST_PROXY")
}

// maskedValue is the placeholder for masked sensitive data.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging.
// Short secrets are fully masked to prevent substring matching; longer ones
// keep the first and last two characters for debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit sensitive-field masking.
// When adding new sensitive fields, update this method.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.PostgresPassword = maskSecret(a.PostgresPassword)
	a.Search.APIKey = maskSecret(a.Search.APIKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}

// PostgresURL returns the connection string in URL form, as expected by
// golang-migrate and pgxpool.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.PostgresUser),
		url.QueryEscape(c.PostgresPassword),
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDBName,
		c.PostgresSSLMode,
	)
}

// FullModelName returns the provider-qualified model name for Genkit.
// Examples: "googleai/gemini-2.5-flash", "ollama/llama3.2".
// If ModelName already contains a "/", it is returned as-is.
func (c *Config) FullModelName() string {
	if strings.Contains(c.ModelName, "/") {
		return c.ModelName
	}
	if c.Provider == ProviderOllama {
		return "ollama/" + c.ModelName
	}
	return "googleai/" + c.ModelName
}
