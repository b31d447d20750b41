package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/wizqo2024/wizqo-sub002/shared/config"
)

// Completer sends a single prompt to a language model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

var (
	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrNoJSON is returned when a response carries no JSON object.
	ErrNoJSON = errors.New("no JSON object in response")
)

// New returns the Completer selected by cfg.AI.Provider, or nil when no
// provider is configured.
func New(ctx context.Context, cfg *config.AIConfig) (Completer, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openrouter":
		return NewOpenRouter(ctx, cfg, http.DefaultTransport), nil
	case "gemini":
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
