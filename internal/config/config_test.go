package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OLLAMA_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Host != "https://ollama.com" {
		t.Errorf("unexpected default host: %q", cfg.Host)
	}
	if cfg.Model != "minimax-m2:cloud" {
		t.Errorf("unexpected default model: %q", cfg.Model)
	}
	if cfg.SystemPrompt != DefaultSystemPrompt {
		t.Errorf("unexpected default system prompt: %q", cfg.SystemPrompt)
	}
	if cfg.Listen != "127.0.0.1:8080" {
		t.Errorf("unexpected default listen address: %q", cfg.Listen)
	}
	if cfg.AssetsDir != "assets" {
		t.Errorf("unexpected default assets dir: %q", cfg.AssetsDir)
	}
}

func TestLoadAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("OLLAMA_API_KEY", "env-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "env-secret" {
		t.Errorf("expected API key from environment, got %q", cfg.APIKey)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_KEY_VAR", "expanded")

	if got := expandEnv("${TEST_KEY_VAR}"); got != "expanded" {
		t.Errorf("expected ${VAR} expansion, got %q", got)
	}
	if got := expandEnv("$TEST_KEY_VAR"); got != "expanded" {
		t.Errorf("expected $VAR expansion, got %q", got)
	}
	if got := expandEnv("literal"); got != "literal" {
		t.Errorf("expected literal passthrough, got %q", got)
	}
}
