package rag

import "github.com/anvidev01/infosetu/internal/knowledge"

// Decision is the confidence gate's verdict on a retrieval result set.
type Decision string

// Gate decisions.
const (
	// DecisionAnswer means the top hit clears the threshold and the
	// answer is generated from local context alone.
	DecisionAnswer Decision = "answer_locally"

	// DecisionEscalate means local hits exist but the best one is below
	// the threshold; the query escalates to web search.
	DecisionEscalate Decision = "escalate"

	// DecisionNoMatch means retrieval produced nothing usable.
	DecisionNoMatch Decision = "no_match"
)

// Gate decides whether local retrieval is trustworthy enough to answer from.
type Gate struct {
	threshold float32
}

// NewGate creates a Gate. Non-positive thresholds fall back to 0.7.
func NewGate(threshold float32) Gate {
	if threshold <= 0 {
		threshold = 0.7
	}
	return Gate{threshold: threshold}
}

// Evaluate inspects results (ordered by descending similarity) and returns
// the verdict together with the top similarity score.
func (g Gate) Evaluate(results []knowledge.Result) (Decision, float32) {
	if len(results) == 0 {
		return DecisionNoMatch, 0
	}
	top := results[0].Similarity
	if top <= 0 {
		return DecisionNoMatch, top
	}
	if top >= g.threshold {
		return DecisionAnswer, top
	}
	return DecisionEscalate, top
}
