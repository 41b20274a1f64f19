package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("UPSTREAM_TIMEOUT", "")

	cfg := Load()
	if cfg.Port != 8787 {
		t.Errorf("Port = %d, want 8787", cfg.Port)
	}
	if cfg.OpenAI.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.OpenAI.Timeout)
	}
	if cfg.OpenAI.MaxOutputTokens != 900 {
		t.Errorf("MaxOutputTokens = %d, want 900", cfg.OpenAI.MaxOutputTokens)
	}
	if cfg.Telemetry.Enabled {
		t.Error("telemetry should default to disabled")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4.1")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")

	cfg := Load()
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4.1" {
		t.Errorf("Model = %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.OpenAI.Timeout)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("UPSTREAM_TIMEOUT", "soon")

	cfg := Load()
	if cfg.Port != 8787 {
		t.Errorf("Port = %d, want fallback 8787", cfg.Port)
	}
	if cfg.OpenAI.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want fallback 60s", cfg.OpenAI.Timeout)
	}
}
