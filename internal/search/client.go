// Package search calls the external web search provider used when the local
// knowledge store cannot answer with confidence.
//
// The provider is asked to restrict results to official government domains,
// and every returned URL is re-checked against the same allow/deny lists
// in-process. A provider that ignores its domain parameters therefore cannot
// leak non-official sources into an answer.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anvidev01/infosetu/internal/log"
	"github.com/anvidev01/infosetu/internal/security"
)

// Result is one filtered search hit.
type Result struct {
	URL     string
	Title   string
	Content string
}

// request is the provider wire format (Tavily-compatible).
type request struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	IncludeDomains []string `json:"include_domains"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
	MaxResults     int      `json:"max_results"`
}

type response struct {
	Results []struct {
		URL     string `json:"url"`
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"results"`
}

// Config holds search client settings.
type Config struct {
	// Endpoint is the provider URL. Empty disables the client.
	Endpoint string

	// APIKey authenticates requests via bearer token.
	APIKey string

	IncludeDomains []string
	ExcludeDomains []string
	MaxResults     int
	Timeout        time.Duration

	Logger log.Logger
}

// Client performs domain-restricted web searches. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	include    []string
	exclude    []string
	maxResults int
	domains    *security.Domains
	logger     log.Logger
}

// NewClient creates a Client from cfg. Zero MaxResults falls back to 3 and
// zero Timeout to 8 seconds.
func NewClient(cfg Config) *Client {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		include:    cfg.IncludeDomains,
		exclude:    cfg.ExcludeDomains,
		maxResults: cfg.MaxResults,
		domains:    security.NewDomains(cfg.IncludeDomains, cfg.ExcludeDomains),
		logger:     logger,
	}
}

// Enabled reports whether the client is configured to make requests.
func (c *Client) Enabled() bool {
	return c.endpoint != "" && c.apiKey != ""
}

// Search queries the provider and returns only results whose URLs pass the
// government-domain allow list. Returns an empty slice, not an error, when
// the provider answers successfully with nothing usable.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("search client is not configured")
	}

	body, err := json.Marshal(request{
		Query:          query,
		SearchDepth:    "advanced",
		IncludeDomains: c.include,
		ExcludeDomains: c.exclude,
		MaxResults:     c.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a bounded amount of the body for the error message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search provider returned status %d: %s", resp.StatusCode, snippet)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]Result, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if err := c.domains.AllowURL(r.URL); err != nil {
			c.logger.Warn("dropped search result outside allowed domains", "url", r.URL, "error", err)
			continue
		}
		results = append(results, Result{URL: r.URL, Title: r.Title, Content: r.Content})
	}

	c.logger.Debug("web search completed",
		"query_length", len(query),
		"returned", len(parsed.Results),
		"kept", len(results))
	return results, nil
}
