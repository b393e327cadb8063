package config

import (
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment can't leak in.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "CORS_ORIGINS", "DB_URL", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"OPENAI_MODEL", "OPENAI_TIMEOUT", "SESSION_TTL", "SESSION_PRUNE_SCHEDULE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://localhost/nutrichat")

	cfg, err := Load("testdata/missing.env")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.AI.BaseURL != "https://api.openai.com" || cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("unexpected AI defaults: %+v", cfg.AI)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Errorf("AI timeout = %v, want 30s", cfg.AI.Timeout)
	}
	if cfg.Session.TTL != 30*24*time.Hour {
		t.Errorf("Session TTL = %v, want 720h", cfg.Session.TTL)
	}
	if cfg.Session.PruneSchedule != "@hourly" {
		t.Errorf("PruneSchedule = %q", cfg.Session.PruneSchedule)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "http://localhost:5173" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://localhost/nutrichat")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("OPENAI_BASE_URL", "http://llm.internal/")
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load("testdata/missing.env")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.AI.BaseURL != "http://llm.internal" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.AI.BaseURL)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("TTL = %v", cfg.Session.TTL)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoad_MissingDBURL(t *testing.T) {
	clearEnv(t)
	if _, err := Load("testdata/missing.env"); err == nil {
		t.Fatal("expected error when DB_URL is empty")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://localhost/nutrichat")
	t.Setenv("SESSION_TTL", "forever")
	if _, err := Load("testdata/missing.env"); err == nil {
		t.Fatal("expected error for unparseable SESSION_TTL")
	}
}
