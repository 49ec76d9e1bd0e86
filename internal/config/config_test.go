package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Endpoint != "http://localhost:5000" {
		t.Errorf("Unexpected default endpoint: %s", cfg.Server.Endpoint)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Unexpected default timeout: %v", cfg.Timeout())
	}
	if cfg.UI.DefaultMessageColor != "#6b7280" {
		t.Errorf("Unexpected default message color: %s", cfg.UI.DefaultMessageColor)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Endpoint != "http://localhost:5000" {
		t.Errorf("Expected defaults for missing file, got %s", cfg.Server.Endpoint)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
endpoint = "https://hush.example.com"
session_cookie = "abc123"
timeout_seconds = 10

[ui]
default_message_color = "#3b82f6"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Endpoint != "https://hush.example.com" {
		t.Errorf("Endpoint not loaded: %s", cfg.Server.Endpoint)
	}
	if cfg.Server.SessionCookie != "abc123" {
		t.Errorf("Session cookie not loaded: %s", cfg.Server.SessionCookie)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("Timeout not loaded: %v", cfg.Timeout())
	}
	if cfg.UI.DefaultMessageColor != "#3b82f6" {
		t.Errorf("Message color not loaded: %s", cfg.UI.DefaultMessageColor)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HUSH_ENDPOINT", "https://env.example.com")
	t.Setenv("HUSH_SESSION_COOKIE", "env-cookie")
	t.Setenv("HUSH_TIMEOUT_SECONDS", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Endpoint != "https://env.example.com" {
		t.Errorf("Env endpoint not applied: %s", cfg.Server.Endpoint)
	}
	if cfg.Server.SessionCookie != "env-cookie" {
		t.Errorf("Env cookie not applied: %s", cfg.Server.SessionCookie)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Env timeout not applied: %v", cfg.Timeout())
	}
}

func TestInvalidTimeoutFallsBack(t *testing.T) {
	cfg := &Config{}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Expected fallback timeout, got %v", cfg.Timeout())
	}
}
