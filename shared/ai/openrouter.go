package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/wizqo2024/wizqo-sub002/shared/config"

	"golang.org/x/oauth2"
)

// OpenRouter talks to an OpenAI-compatible chat completions endpoint.
// The API key is attached as a bearer token by an oauth2 transport.
type OpenRouter struct {
	httpClient *http.Client
	url        string
	model      string
}

func NewOpenRouter(ctx context.Context, cfg *config.AIConfig, base http.RoundTripper) *OpenRouter {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: base})
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.OpenRouterAPIKey,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = cfg.Timeout

	return &OpenRouter{
		httpClient: httpClient,
		url:        cfg.OpenRouterURL,
		model:      cfg.Model,
	}
}

func (o *OpenRouter) Name() string { return "openrouter" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (o *OpenRouter) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       o.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   4000,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Title", "Wizqo")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("openrouter api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return out.Choices[0].Message.Content, nil
}
