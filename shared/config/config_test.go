package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "YOUTUBE_API_KEY", "OPENROUTER_API_KEY", "GEMINI_API_KEY",
		"DATABASE_URL", "REDIS_ADDR", "SUPABASE_JWT_SECRET", "AFFILIATE_TAG",
		"LOG_MODE", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "5000" {
		t.Errorf("Port = %s, want 5000", cfg.Server.Port)
	}
	if cfg.AI.Provider != "" {
		t.Errorf("Provider = %q, want empty without keys", cfg.AI.Provider)
	}
	if cfg.Validation.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.Validation.CacheTTL)
	}
	if cfg.HistoryWindow() != 7*24*time.Hour {
		t.Errorf("HistoryWindow() = %v, want 168h", cfg.HistoryWindow())
	}
}

func TestLoadFromFileWithEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlData := `
server:
  port: "8081"
ai:
  provider: gemini
  gemini_api_key: file-key
youtube:
  history_days: 3
`
	if err := os.WriteFile(path, []byte(yamlData), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("YOUTUBE_API_KEY", "yt-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8081" {
		t.Errorf("Port = %s, want 8081", cfg.Server.Port)
	}
	if cfg.YouTube.APIKey != "yt-key" {
		t.Errorf("YouTube.APIKey = %s, want yt-key", cfg.YouTube.APIKey)
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %s, want gemini-2.5-flash", cfg.AI.Model)
	}
	if cfg.HistoryWindow() != 3*24*time.Hour {
		t.Errorf("HistoryWindow() = %v, want 72h", cfg.HistoryWindow())
	}
}

func TestLoadPicksProviderFromKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", "")
	t.Chdir(t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "or-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.Provider != "openrouter" {
		t.Errorf("Provider = %s, want openrouter", cfg.AI.Provider)
	}
	if cfg.AI.Model != "deepseek/deepseek-chat" {
		t.Errorf("Model = %s, want deepseek/deepseek-chat", cfg.AI.Model)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"No provider", Config{}, false},
		{"OpenRouter with key", Config{AI: AIConfig{Provider: "openrouter", OpenRouterAPIKey: "k"}}, false},
		{"OpenRouter without key", Config{AI: AIConfig{Provider: "openrouter"}}, true},
		{"Gemini without key", Config{AI: AIConfig{Provider: "gemini"}}, true},
		{"Unknown provider", Config{AI: AIConfig{Provider: "llama"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for explicitly configured missing file")
	}
}
