package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/anvidev01/infosetu/internal/i18n"
)

// Validate checks the configuration for invalid values.
// Returns a sentinel error (wrapped with context) on the first failure so
// callers can use errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if err := c.validateAI(); err != nil {
		return err
	}
	if err := c.validateRetrieval(); err != nil {
		return err
	}
	if err := c.validateGuardrail(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	return c.validateStorage()
}

func (c *Config) validateAI() error {
	switch c.Provider {
	case ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("%w: %q (supported: gemini, ollama)", ErrInvalidProvider, c.Provider)
	}

	if strings.TrimSpace(c.ModelName) == "" {
		return fmt.Errorf("%w: model name must not be empty", ErrInvalidModelName)
	}

	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("%w: %v (must be in [0,1])", ErrInvalidTemperature, c.Temperature)
	}

	if c.Language != "" && !i18n.IsSupported(c.Language) {
		return fmt.Errorf("%w: %q (supported: %v)", ErrInvalidLanguage, c.Language, i18n.Supported())
	}

	if c.OllamaHost != "" {
		u, err := url.Parse(c.OllamaHost)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidOllamaHost, c.OllamaHost)
		}
	}

	return nil
}

func (c *Config) validateRetrieval() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: %v (must be in [0,1])", ErrInvalidThreshold, c.ConfidenceThreshold)
	}
	if c.RetrievalTopK < 1 || c.RetrievalTopK > 10 {
		return fmt.Errorf("%w: %d (must be in [1,10])", ErrInvalidTopK, c.RetrievalTopK)
	}
	return nil
}

func (c *Config) validateGuardrail() error {
	if c.RateLimitWindowSeconds < 1 {
		return fmt.Errorf("%w: window %d seconds", ErrInvalidRateLimit, c.RateLimitWindowSeconds)
	}
	if c.RateLimitMaxRequests < 1 {
		return fmt.Errorf("%w: max requests %d", ErrInvalidRateLimit, c.RateLimitMaxRequests)
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.Endpoint == "" {
		// Fallback search disabled entirely; the engine degrades to "none".
		return nil
	}
	u, err := url.Parse(c.Search.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidSearchEndpoint, c.Search.Endpoint)
	}
	if c.Search.MaxResults < 1 || c.Search.MaxResults > 10 {
		return fmt.Errorf("%w: max_results %d (must be in [1,10])", ErrInvalidSearchEndpoint, c.Search.MaxResults)
	}
	if c.Search.TimeoutSeconds < 1 || c.Search.TimeoutSeconds > 30 {
		return fmt.Errorf("%w: timeout %ds (must be in [1,30])", ErrInvalidSearchEndpoint, c.Search.TimeoutSeconds)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if strings.TrimSpace(c.PostgresHost) == "" {
		return fmt.Errorf("%w: host must not be empty", ErrInvalidPostgresHost)
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPostgresPort, c.PostgresPort)
	}
	return nil
}
