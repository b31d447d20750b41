package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	AI         AIConfig         `yaml:"ai"`
	Validation ValidationConfig `yaml:"validation"`
	Storage    StorageConfig    `yaml:"storage"`
	Auth       AuthConfig       `yaml:"auth"`
	Affiliate  AffiliateConfig  `yaml:"affiliate"`
	Logging    LoggingConfig    `yaml:"logging"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
}

type ServerConfig struct {
	Port           string   `yaml:"port" env:"PORT"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type YouTubeConfig struct {
	APIKey         string        `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	HistoryDays    int           `yaml:"history_days"`
}

type AIConfig struct {
	// Provider is "openrouter", "gemini" or "" (rules only).
	Provider         string        `yaml:"provider"`
	OpenRouterAPIKey string        `yaml:"openrouter_api_key" env:"OPENROUTER_API_KEY"`
	OpenRouterURL    string        `yaml:"openrouter_url"`
	GeminiAPIKey     string        `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model            string        `yaml:"model"`
	Timeout          time.Duration `yaml:"timeout"`
}

type ValidationConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type StorageConfig struct {
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`
	RedisAddr   string `yaml:"redis_addr" env:"REDIS_ADDR"`
	DataDir     string `yaml:"data_dir"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"SUPABASE_JWT_SECRET"`
}

type AffiliateConfig struct {
	AmazonTag string `yaml:"amazon_tag" env:"AFFILIATE_TAG"`
}

type LoggingConfig struct {
	Mode string `yaml:"mode" env:"LOG_MODE"`
}

type ScheduleConfig struct {
	HistoryPrune string `yaml:"history_prune"`
	CacheSweep   string `yaml:"cache_sweep"`
}

// Load reads .env, the optional YAML config file and environment overrides.
// A missing config file is not an error; every setting has an env or default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	explicit := configFile != ""
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if *dst == "" {
			*dst = strings.TrimSpace(os.Getenv(key))
		}
	}
	override(&c.Server.Port, "PORT")
	override(&c.YouTube.APIKey, "YOUTUBE_API_KEY")
	override(&c.AI.OpenRouterAPIKey, "OPENROUTER_API_KEY")
	override(&c.AI.GeminiAPIKey, "GEMINI_API_KEY")
	override(&c.Storage.DatabaseURL, "DATABASE_URL")
	override(&c.Storage.RedisAddr, "REDIS_ADDR")
	override(&c.Auth.JWTSecret, "SUPABASE_JWT_SECRET")
	override(&c.Affiliate.AmazonTag, "AFFILIATE_TAG")
	override(&c.Logging.Mode, "LOG_MODE")

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" && len(c.Server.AllowedOrigins) == 0 {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, o)
			}
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "5000"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if c.YouTube.RequestTimeout == 0 {
		c.YouTube.RequestTimeout = 15 * time.Second
	}
	if c.YouTube.HistoryDays == 0 {
		c.YouTube.HistoryDays = 7
	}

	// Pick a provider from whichever key is present.
	if c.AI.Provider == "" {
		switch {
		case c.AI.OpenRouterAPIKey != "":
			c.AI.Provider = "openrouter"
		case c.AI.GeminiAPIKey != "":
			c.AI.Provider = "gemini"
		}
	}
	if c.AI.OpenRouterURL == "" {
		c.AI.OpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"
	}
	if c.AI.Model == "" {
		switch c.AI.Provider {
		case "gemini":
			c.AI.Model = "gemini-2.5-flash"
		default:
			c.AI.Model = "deepseek/deepseek-chat"
		}
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 30 * time.Second
	}
	if c.Validation.CacheTTL == 0 {
		c.Validation.CacheTTL = 5 * time.Minute
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Affiliate.AmazonTag == "" {
		c.Affiliate.AmazonTag = "wizqohobby-20"
	}
	if c.Logging.Mode == "" {
		c.Logging.Mode = "dev"
	}
	if c.Schedule.HistoryPrune == "" {
		c.Schedule.HistoryPrune = "0 0 * * * *" // Hourly
	}
	if c.Schedule.CacheSweep == "" {
		c.Schedule.CacheSweep = "0 */5 * * * *"
	}
}

func (c *Config) validate() error {
	switch c.AI.Provider {
	case "":
	case "openrouter":
		if c.AI.OpenRouterAPIKey == "" {
			return fmt.Errorf("OpenRouter API key is required for provider openrouter (set OPENROUTER_API_KEY or ai.openrouter_api_key)")
		}
	case "gemini":
		if c.AI.GeminiAPIKey == "" {
			return fmt.Errorf("Gemini API key is required for provider gemini (set GEMINI_API_KEY or ai.gemini_api_key)")
		}
	default:
		return fmt.Errorf("unknown ai.provider %q (want openrouter or gemini)", c.AI.Provider)
	}
	if c.YouTube.HistoryDays < 0 {
		return fmt.Errorf("youtube.history_days must not be negative")
	}
	return nil
}

// HistoryWindow is the trailing window used to avoid repeating videos.
func (c *Config) HistoryWindow() time.Duration {
	return time.Duration(c.YouTube.HistoryDays) * 24 * time.Hour
}
