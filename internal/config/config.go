package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full application configuration surface.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	AI       AIConfig
	Session  SessionConfig
	LogLevel string
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// DBConfig holds the PostgreSQL connection string.
type DBConfig struct {
	URL string
}

// AIConfig holds settings for the chat-completions endpoint used by the coach.
// An empty APIKey is allowed: the coach then always serves fallback advice.
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// SessionConfig controls bearer-token lifetime and cleanup.
type SessionConfig struct {
	TTL           time.Duration
	PruneSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		// A missing .env is fine when the environment is set directly.
		_ = godotenv.Load()
	}

	ttl, err := durationEnv("SESSION_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}
	aiTimeout, err := durationEnv("OPENAI_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getenvWithDefault("APP_PORT", "3000"),
			CORSOrigins: splitList(getenvWithDefault("CORS_ORIGINS", "http://localhost:5173")),
		},
		DB: DBConfig{
			URL: os.Getenv("DB_URL"),
		},
		AI: AIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: strings.TrimSuffix(getenvWithDefault("OPENAI_BASE_URL", "https://api.openai.com"), "/"),
			Model:   getenvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout: aiTimeout,
		},
		Session: SessionConfig{
			TTL:           ttl,
			PruneSchedule: getenvWithDefault("SESSION_PRUNE_SCHEDULE", "@hourly"),
		},
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures required fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if c.DB.URL == "" {
		return errors.New("DB_URL must be provided")
	}
	if c.AI.BaseURL == "" {
		return errors.New("OPENAI_BASE_URL must not be empty")
	}
	if c.AI.Model == "" {
		return errors.New("OPENAI_MODEL must not be empty")
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Session.PruneSchedule == "" {
		return errors.New("SESSION_PRUNE_SCHEDULE must be provided")
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
