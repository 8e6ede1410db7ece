package rag

import (
	"context"
	"strings"
	"sync"

	"github.com/anvidev01/infosetu/internal/answer"
	"github.com/anvidev01/infosetu/internal/guardrail"
	"github.com/anvidev01/infosetu/internal/i18n"
	"github.com/anvidev01/infosetu/internal/knowledge"
	"github.com/anvidev01/infosetu/internal/log"
	"github.com/anvidev01/infosetu/internal/search"
)

// excerptMaxRunes bounds citation excerpts.
const excerptMaxRunes = 100

// Guard validates messages before retrieval.
type Guard interface {
	Validate(callerID, message string, lang i18n.Language) guardrail.Result
}

// Retriever searches the local knowledge store.
type Retriever interface {
	Search(ctx context.Context, query string, opts ...knowledge.SearchOption) ([]knowledge.Result, error)
	Count(ctx context.Context) (int64, error)
}

// WebSearcher performs domain-restricted web search.
type WebSearcher interface {
	Enabled() bool
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// Generator produces the final answer text.
type Generator interface {
	Generate(ctx context.Context, in answer.Input) (string, error)
}

// Config holds engine settings.
type Config struct {
	// ConfidenceThreshold gates local answers. Zero falls back to 0.7.
	ConfidenceThreshold float32

	// TopK is how many documents to retrieve. Zero falls back to 3.
	TopK int

	Logger log.Logger
}

// Engine runs the full pipeline for one query. Safe for concurrent use.
type Engine struct {
	guard     Guard
	store     Retriever
	web       WebSearcher
	generator Generator
	gate      Gate
	topK      int
	logger    log.Logger

	// The store probe latches only on success. A failed probe degrades
	// the current request to web search and is retried on the next one,
	// so a transient database outage never disables local retrieval for
	// the lifetime of the process.
	probeMu    sync.Mutex
	storeReady bool
}

// NewEngine wires the pipeline stages together.
func NewEngine(guard Guard, store Retriever, web WebSearcher, generator Generator, cfg Config) *Engine {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	return &Engine{
		guard:     guard,
		store:     store,
		web:       web,
		generator: generator,
		gate:      NewGate(cfg.ConfidenceThreshold),
		topK:      topK,
		logger:    logger,
	}
}

// Ask answers one citizen query. It never returns an error: guardrail
// blocks, empty retrievals, search outages, and model failures all degrade
// to localized fallback answers with an honest Source field.
func (e *Engine) Ask(ctx context.Context, q Query) Response {
	verdict := e.guard.Validate(q.CallerID, q.Message, q.Language)
	if !verdict.Allowed {
		e.logger.Info("query blocked by guardrail", "reason", verdict.Reason, "language", q.Language)
		return Response{
			Answer:    verdict.Notice,
			Source:    SourceGuardrailBlock,
			Citations: []Citation{},
		}
	}

	if verdict.Sanitized == "" {
		return Response{
			Answer:    i18n.T(q.Language, i18n.MsgCapabilities),
			Source:    SourceNone,
			Citations: []Citation{},
		}
	}

	results := e.retrieve(ctx, verdict.Sanitized)
	decision, confidence := e.gate.Evaluate(results)
	e.logger.Debug("confidence gate evaluated",
		"decision", decision, "confidence", confidence, "hits", len(results))

	if decision == DecisionAnswer {
		return e.answerFromLocal(ctx, q, verdict.Sanitized, results, confidence)
	}
	return e.answerFromWeb(ctx, q, verdict.Sanitized)
}

func (e *Engine) retrieve(ctx context.Context, query string) []knowledge.Result {
	ready := e.probeStore(ctx)
	if !ready {
		return nil
	}

	results, err := e.store.Search(ctx, query, knowledge.WithTopK(e.topK))
	if err != nil {
		e.logger.Warn("knowledge store search failed, treating as no match", "error", err)
		return nil
	}
	return results
}

func (e *Engine) probeStore(ctx context.Context) bool {
	e.probeMu.Lock()
	defer e.probeMu.Unlock()

	if e.storeReady {
		return true
	}

	count, err := e.store.Count(ctx)
	if err != nil {
		e.logger.Warn("knowledge store unavailable, retrying on next query", "error", err)
		return false
	}
	if count == 0 {
		e.logger.Warn("knowledge store is empty, run the indexer to seed the scheme corpus")
	}
	e.storeReady = true
	return true
}

func (e *Engine) answerFromLocal(ctx context.Context, q Query, question string, results []knowledge.Result, confidence float32) Response {
	// Only documents that clear the threshold themselves become context or
	// citations. A sub-threshold hit riding along with a strong one would
	// feed the generator unrelated text and present it as evidence.
	trusted := make([]knowledge.Result, 0, len(results))
	for _, r := range results {
		if r.Similarity >= e.gate.threshold {
			trusted = append(trusted, r)
		}
	}

	contents := make([]string, 0, len(trusted))
	citations := make([]Citation, 0, len(trusted))
	for _, r := range trusted {
		contents = append(contents, r.Document.Content)
		citations = append(citations, Citation{
			Title:   r.Document.ID,
			Excerpt: excerpt(r.Document.Content),
		})
	}

	reply, err := e.generator.Generate(ctx, answer.Input{
		Question: question,
		Context:  strings.Join(contents, "\n\n"),
		Language: q.Language,
	})
	if err != nil {
		e.logger.Error("generation failed for local answer", "error", err)
		return declineResponse(q.Language)
	}

	return Response{
		Answer:     reply,
		Source:     SourceLocalStore,
		Citations:  citations,
		Confidence: confidence,
	}
}

func (e *Engine) answerFromWeb(ctx context.Context, q Query, question string) Response {
	if e.web == nil || !e.web.Enabled() {
		e.logger.Info("web search unavailable, returning no-information answer")
		return noInfoResponse(q.Language)
	}

	results, err := e.web.Search(ctx, question)
	if err != nil {
		e.logger.Warn("web search failed, returning no-information answer", "error", err)
		return noInfoResponse(q.Language)
	}
	if len(results) == 0 {
		return noInfoResponse(q.Language)
	}

	contents := make([]string, 0, len(results))
	citations := make([]Citation, 0, len(results))
	for _, r := range results {
		contents = append(contents, r.Content)
		citations = append(citations, Citation{
			Title:   r.Title,
			URL:     r.URL,
			Excerpt: excerpt(r.Content),
		})
	}

	reply, err := e.generator.Generate(ctx, answer.Input{
		Question: question,
		Context:  strings.Join(contents, "\n\n"),
		Language: q.Language,
	})
	if err != nil {
		e.logger.Error("generation failed for web answer", "error", err)
		return declineResponse(q.Language)
	}

	return Response{
		Answer:    reply,
		Source:    SourceWebSearch,
		Citations: citations,
	}
}

func noInfoResponse(lang i18n.Language) Response {
	return Response{
		Answer:    i18n.T(lang, i18n.MsgNoInfo),
		Source:    SourceNone,
		Citations: []Citation{},
	}
}

func declineResponse(lang i18n.Language) Response {
	return Response{
		Answer:    i18n.T(lang, i18n.MsgDecline),
		Source:    SourceNone,
		Citations: []Citation{},
	}
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptMaxRunes {
		return content
	}
	return string(runes[:excerptMaxRunes]) + "..."
}
