// Package rag orchestrates the answer pipeline: guardrail validation, local
// vector retrieval, confidence gating, web search fallback, and generation.
package rag

import "github.com/anvidev01/infosetu/internal/i18n"

// SourceKind names where an answer's evidence came from.
type SourceKind string

// Answer sources.
const (
	// SourceLocalStore means the answer was grounded in the verified
	// knowledge store with high confidence.
	SourceLocalStore SourceKind = "local_store"

	// SourceWebSearch means the answer was grounded in domain-restricted
	// web search results.
	SourceWebSearch SourceKind = "web_search"

	// SourceGuardrailBlock means a guardrail rejected the message and the
	// answer is a localized security notice.
	SourceGuardrailBlock SourceKind = "guardrail_block"

	// SourceNone means no usable evidence was found and the answer is a
	// safe fallback message.
	SourceNone SourceKind = "none"
)

// Citation points at one piece of evidence behind an answer.
type Citation struct {
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
}

// Query is one citizen question entering the pipeline.
type Query struct {
	// CallerID identifies the caller for rate limiting.
	CallerID string

	// Message is the raw citizen message.
	Message string

	// Language is the normalized target response language.
	Language i18n.Language
}

// Response is the pipeline's result. It is always populated; pipeline
// failures degrade to safe fallback answers instead of errors.
type Response struct {
	Answer    string     `json:"answer"`
	Source    SourceKind `json:"source"`
	Citations []Citation `json:"citations"`

	// Confidence is the top similarity score. Only meaningful when
	// Source is SourceLocalStore.
	Confidence float32 `json:"confidence,omitempty"`
}
