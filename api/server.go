// Package api exposes the answer pipeline over HTTP as a small JSON API.
package api

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anvidev01/infosetu/internal/log"
)

// ServerConfig contains everything needed to build the HTTP server.
type ServerConfig struct {
	Logger log.Logger

	// Engine runs the answer pipeline. Required.
	Engine Asker

	// Pool enables database checks in /ready. Optional.
	Pool *pgxpool.Pool

	// TrustProxy honors X-Real-IP/X-Forwarded-For for client IPs.
	TrustProxy bool

	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string

	// RateBurst is the per-IP token bucket size. Zero means 60.
	RateBurst int
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer wires routes and the middleware stack.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Engine == nil {
		return nil, errors.New("engine is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	ch := &chatHandler{
		engine:     cfg.Engine,
		trustProxy: cfg.TrustProxy,
		logger:     logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", ch.send)

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newIPLimiter(1.0, burst)

	// Middleware stack, outermost first:
	//   Recovery -> RequestID -> Logging -> CORS -> RateLimit -> Routes
	// RequestID runs before Logging so request_id is available in log lines.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	inner := handler
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)
		inner.ServeHTTP(w, r)
	})

	// Health probes stay outside the middleware stack so orchestrators are
	// never rate limited away from them.
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health(logger))
	topMux.Handle("GET /ready", readiness(cfg.Pool, logger))
	topMux.Handle("/", final)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
