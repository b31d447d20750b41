package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wizqo2024/wizqo-sub002/shared/config"
)

func TestOpenRouterComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "deepseek/deepseek-chat" {
			t.Errorf("model = %s", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenRouter(context.Background(), &config.AIConfig{
		OpenRouterAPIKey: "test-key",
		OpenRouterURL:    srv.URL,
		Model:            "deepseek/deepseek-chat",
		Timeout:          5 * time.Second,
	}, http.DefaultTransport)

	got, err := client.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != `{"ok":true}` {
		t.Errorf("Complete() = %q", got)
	}
}

func TestOpenRouterErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"Server error", http.StatusInternalServerError, `boom`, nil},
		{"No choices", http.StatusOK, `{"choices":[]}`, ErrEmptyResponse},
		{"Bad body", http.StatusOK, `not json`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewOpenRouter(context.Background(), &config.AIConfig{
				OpenRouterAPIKey: "k",
				OpenRouterURL:    srv.URL,
				Timeout:          time.Second,
			}, http.DefaultTransport)

			_, err := client.Complete(context.Background(), "x")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewWithoutProvider(t *testing.T) {
	c, err := New(context.Background(), &config.AIConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c != nil {
		t.Errorf("expected nil completer without provider, got %s", c.Name())
	}
}
