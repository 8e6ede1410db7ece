// Package guardrail validates citizen messages before they reach the
// retrieval pipeline.
//
// Checks run in a fixed order: rate limit, HTML sanitization, PII detection
// (Aadhaar, PAN, phone), transactional-intent detection, and prompt-injection
// detection. The first failing check blocks the message with a localized
// notice; blocked messages never reach the knowledge store or a model.
package guardrail

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/anvidev01/infosetu/internal/i18n"
	"github.com/anvidev01/infosetu/internal/log"
)

// Reason identifies which check blocked a message.
type Reason string

// Block reasons.
const (
	ReasonRateLimited   Reason = "rate_limited"
	ReasonPIIAadhaar    Reason = "pii_aadhaar"
	ReasonPIIPAN        Reason = "pii_pan"
	ReasonPIIPhone      Reason = "pii_phone"
	ReasonTransactional Reason = "transactional_intent"
	ReasonInjection     Reason = "prompt_injection"
)

// Result is the outcome of validating one message.
type Result struct {
	// Allowed is true when the message may proceed to retrieval.
	Allowed bool

	// Sanitized is the HTML-stripped, trimmed message. Only meaningful
	// when Allowed is true.
	Sanitized string

	// Reason names the failing check when Allowed is false.
	Reason Reason

	// Notice is the localized user-facing text when Allowed is false.
	Notice string
}

// PII patterns. Aadhaar runs before phone so a 12-digit identity number is
// not misreported as a phone number.
var (
	aadhaarPattern = regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)
	panPattern     = regexp.MustCompile(`\b[A-Za-z]{5}\d{4}[A-Za-z]\b`)
	phonePattern   = regexp.MustCompile(`\b(\+91[\s-]?)?[6-9]\d{9}\b`)
)

// transactionalPatterns match requests for personal account data the
// assistant cannot and must not serve.
var transactionalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(my|mera|meri|check|track)\b.{0,40}\b(status|balance|payment|installment|instalment|kist|paisa)\b`),
	regexp.MustCompile(`(?i)\b(status|balance|payment)\b.{0,40}\b(my|mera|meri)\b`),
	regexp.MustCompile(`(?i)\bapplication\s+(status|number)\b`),
	regexp.MustCompile(`(?i)\b(kab\s+(aayega|milega|ayega))\b`),
	regexp.MustCompile(`(?i)\b(transfer|withdraw|deposit)\b.{0,30}\b(money|amount|rupees|rs\.?)\b`),
}

// injectionPatterns match attempts to override the assistant's instructions.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+(instructions?|prompts?)`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|your)\s+(instructions?|rules?)`),
	regexp.MustCompile(`(?i)\bsystem\s+prompt\b`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+(a|an|in)\b`),
	regexp.MustCompile(`(?i)\b(pretend|act\s+as\s+if)\s+you\s+are\b`),
	regexp.MustCompile(`(?i)\bjailbreak\b`),
	regexp.MustCompile(`(?i)\bdeveloper\s+mode\b`),
	regexp.MustCompile(`(?i)reveal\s+(your|the)\s+(instructions?|prompt)`),
}

// Config holds guardrail tuning.
type Config struct {
	// RateWindow is the sliding window for per-caller rate limiting.
	RateWindow time.Duration

	// RateLimit is the maximum number of requests per caller per window.
	RateLimit int

	Logger log.Logger
}

// Validator runs all guardrail checks. Safe for concurrent use.
type Validator struct {
	policy *bluemonday.Policy
	logger log.Logger

	window time.Duration
	limit  int

	mu     sync.Mutex
	ledger map[string][]time.Time

	// now is swapped in tests to control the clock.
	now func() time.Time
}

// NewValidator creates a Validator from cfg. Zero window or limit fall back
// to 60 seconds and 10 requests.
func NewValidator(cfg Config) *Validator {
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 10
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	return &Validator{
		policy: bluemonday.StrictPolicy(),
		logger: logger,
		window: cfg.RateWindow,
		limit:  cfg.RateLimit,
		ledger: make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Validate runs all checks against one message from callerID.
// Localized notices use lang; every validate call counts against the
// caller's rate window, including calls that end up blocked.
func (v *Validator) Validate(callerID, message string, lang i18n.Language) Result {
	if !v.admit(callerID) {
		v.logger.Warn("guardrail blocked request", "reason", ReasonRateLimited, "caller", callerID)
		return blocked(ReasonRateLimited, i18n.T(lang, i18n.MsgRateLimited))
	}

	sanitized := strings.TrimSpace(v.policy.Sanitize(message))

	if aadhaarPattern.MatchString(sanitized) {
		v.logger.Warn("guardrail blocked request", "reason", ReasonPIIAadhaar, "caller", callerID)
		return blocked(ReasonPIIAadhaar, i18n.T(lang, i18n.MsgPIIAadhaar))
	}
	if panPattern.MatchString(sanitized) {
		v.logger.Warn("guardrail blocked request", "reason", ReasonPIIPAN, "caller", callerID)
		return blocked(ReasonPIIPAN, i18n.T(lang, i18n.MsgPIIPAN))
	}
	if phonePattern.MatchString(sanitized) {
		v.logger.Warn("guardrail blocked request", "reason", ReasonPIIPhone, "caller", callerID)
		return blocked(ReasonPIIPhone, i18n.T(lang, i18n.MsgPIIPhone))
	}

	for _, p := range transactionalPatterns {
		if p.MatchString(sanitized) {
			v.logger.Warn("guardrail blocked request", "reason", ReasonTransactional, "caller", callerID)
			return blocked(ReasonTransactional, i18n.T(lang, i18n.MsgTransactional))
		}
	}

	for _, p := range injectionPatterns {
		if p.MatchString(sanitized) {
			v.logger.Warn("guardrail blocked request", "reason", ReasonInjection, "caller", callerID)
			return blocked(ReasonInjection, i18n.T(lang, i18n.MsgInjection))
		}
	}

	return Result{Allowed: true, Sanitized: sanitized}
}

func blocked(reason Reason, notice string) Result {
	return Result{Allowed: false, Reason: reason, Notice: notice}
}

// admit records one attempt for callerID and reports whether it fits inside
// the sliding window. Timestamps older than the window are pruned on every
// call, so the ledger stays proportional to active callers.
func (v *Validator) admit(callerID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	cutoff := now.Add(-v.window)

	recent := v.ledger[callerID][:0]
	for _, ts := range v.ledger[callerID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= v.limit {
		v.ledger[callerID] = recent
		return false
	}

	v.ledger[callerID] = append(recent, now)
	return true
}
