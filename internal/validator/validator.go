package validator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
	"github.com/wizqo2024/wizqo-sub002/shared/ai"
	"github.com/wizqo2024/wizqo-sub002/shared/logging"
	"github.com/wizqo2024/wizqo-sub002/shared/monitoring"
	"github.com/wizqo2024/wizqo-sub002/shared/storage"
)

// Tier names the rule that decided a validation.
type Tier string

const (
	TierEmpty     Tier = "empty"
	TierDangerous Tier = "dangerous"
	TierComplex   Tier = "complex"
	TierCache     Tier = "cache"
	TierLLM       Tier = "llm"
	TierExact     Tier = "exact"
	TierFuzzy     Tier = "fuzzy"
	TierSubstring Tier = "substring"
	TierUnknown   Tier = "unknown"
)

// Validator classifies free-text hobby input. Every tier that depends on an
// external service falls through to the next one on failure.
type Validator struct {
	cache   storage.ValidationCache
	llm     ai.Completer
	log     *logging.Logger
	metrics *monitoring.Metrics
	monitor *monitoring.Monitor
	rng     *rand.Rand
	rngMu   sync.Mutex
}

type Option func(*Validator)

func WithLLM(c ai.Completer) Option { return func(v *Validator) { v.llm = c } }
func WithLogger(l *logging.Logger) Option { return func(v *Validator) { v.log = l } }
func WithMetrics(m *monitoring.Metrics) Option { return func(v *Validator) { v.metrics = m } }
func WithMonitor(m *monitoring.Monitor) Option { return func(v *Validator) { v.monitor = m } }
func WithRand(r *rand.Rand) Option { return func(v *Validator) { v.rng = r } }
func WithCache(c storage.ValidationCache) Option { return func(v *Validator) { v.cache = c } }

func New(opts ...Option) *Validator {
	v := &Validator{
		log: logging.Nop(),
		rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.cache == nil {
		v.cache = storage.NewMemoryValidationCache(5 * time.Minute)
	}
	return v
}

// Validate classifies input. It never fails; upstream problems only move the
// decision to a simpler tier.
func (v *Validator) Validate(ctx context.Context, input string) models.ValidationResult {
	result, _ := v.Check(ctx, input)
	return result
}

// Check is Validate that also reports which tier decided.
func (v *Validator) Check(ctx context.Context, input string) (models.ValidationResult, Tier) {
	result, tier := v.check(ctx, input)
	if len(result.Suggestions) > models.MaxSuggestions {
		result.Suggestions = result.Suggestions[:models.MaxSuggestions]
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	if v.metrics != nil {
		v.metrics.Validations.WithLabelValues(string(tier), fmt.Sprint(result.IsValid)).Inc()
	}
	v.log.Debug("hobby validated", "input", input, "tier", tier, "valid", result.IsValid, "corrected", result.CorrectedHobby)
	return result, tier
}

func (v *Validator) check(ctx context.Context, input string) (models.ValidationResult, Tier) {
	normalized := Normalize(input)
	if normalized == "" {
		return models.ValidationResult{
			IsValid:     false,
			Suggestions: append([]string(nil), SafeSuggestions...),
			Reasoning:   "Please enter a hobby you would like to learn.",
		}, TierEmpty
	}

	if isDangerous(normalized) {
		return dangerousResult(), TierDangerous
	}

	if key, entry, ok := lookupComplex(normalized); ok {
		return models.ValidationResult{
			IsValid:     false,
			Suggestions: append([]string(nil), entry.suggestions...),
			Reasoning:   fmt.Sprintf("%s %s, which is too complex for a 7-day plan. Try one of these related hobbies instead.", capitalize(key), entry.reason),
		}, TierComplex
	}

	if cached, ok := v.cache.Get(ctx, normalized); ok {
		return *cached, TierCache
	}

	result, tier := v.classify(ctx, normalized)
	if err := v.cache.Set(ctx, normalized, &result); err != nil {
		v.log.Warn("failed to cache validation result", "error", err)
	}
	return result, tier
}

func (v *Validator) classify(ctx context.Context, normalized string) (models.ValidationResult, Tier) {
	if v.llm != nil {
		start := time.Now()
		result, err := v.classifyWithLLM(ctx, normalized)
		if err == nil {
			v.recordLLM("ok", nil, start)
			return result, TierLLM
		}
		v.recordLLM("fallback", err, start)
		v.log.Warn("LLM validation failed, using rules", "input", normalized, "error", err)
	}

	return v.classifyWithRules(normalized)
}

func (v *Validator) recordLLM(outcome string, err error, start time.Time) {
	if v.metrics != nil {
		v.metrics.LLMCalls.WithLabelValues("validate", outcome).Inc()
	}
	if v.monitor == nil {
		return
	}
	if err != nil {
		v.monitor.RecordFailure("llm", err, time.Since(start))
	} else {
		v.monitor.RecordSuccess("llm", "hobby classified", time.Since(start))
	}
}

func (v *Validator) classifyWithRules(normalized string) (models.ValidationResult, Tier) {
	candidate := canonical(normalized)

	if hobby, ok := exactMatch(candidate); ok {
		return models.ValidationResult{
			IsValid:        true,
			CorrectedHobby: correction(normalized, hobby),
			Suggestions:    []string{},
			Reasoning:      fmt.Sprintf("%s is a great hobby to start in 7 days.", capitalize(hobby)),
		}, TierExact
	}

	if hobby, _, ok := fuzzyMatch(candidate); ok {
		return models.ValidationResult{
			IsValid:        true,
			CorrectedHobby: hobby,
			Suggestions:    []string{},
			Reasoning:      fmt.Sprintf("Did you mean %s? We corrected the spelling.", hobby),
		}, TierFuzzy
	}

	if hobby, ok := substringMatch(candidate); ok {
		return models.ValidationResult{
			IsValid:        true,
			CorrectedHobby: correction(normalized, hobby),
			Suggestions:    []string{},
			Reasoning:      fmt.Sprintf("We matched your input to %s.", hobby),
		}, TierSubstring
	}

	return models.ValidationResult{
		IsValid:     false,
		Suggestions: v.randomSuggestions(models.MaxSuggestions),
		Reasoning:   fmt.Sprintf("We couldn't recognize %q as a hobby. Try one of these popular hobbies.", normalized),
	}, TierUnknown
}

func (v *Validator) randomSuggestions(n int) []string {
	v.rngMu.Lock()
	idx := v.rng.Perm(len(suggestionPool))
	v.rngMu.Unlock()
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, suggestionPool[i])
	}
	return out
}

func dangerousResult() models.ValidationResult {
	return models.ValidationResult{
		IsValid:     false,
		Suggestions: append([]string(nil), SafeSuggestions...),
		Reasoning:   "This topic isn't something we can create a learning plan for. Here are some safe, creative hobbies to explore instead.",
	}
}

func correction(normalized, hobby string) string {
	if normalized == hobby {
		return ""
	}
	return hobby
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
