// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`
}

// ServerConfig holds Hush backend settings.
type ServerConfig struct {
	Endpoint       string `toml:"endpoint"`
	SessionCookie  string `toml:"session_cookie"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DefaultMessageColor string `toml:"default_message_color"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Endpoint:       "http://localhost:5000",
			TimeoutSeconds: 30,
		},
		UI: UIConfig{
			DefaultMessageColor: "#6b7280",
		},
	}
}

// Timeout returns the configured request timeout.
func (c *Config) Timeout() time.Duration {
	if c.Server.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// Load reads configuration from a TOML file and applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Load from file if it exists
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, err
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HUSH_ENDPOINT"); v != "" {
		cfg.Server.Endpoint = v
	}

	if v := os.Getenv("HUSH_SESSION_COOKIE"); v != "" {
		cfg.Server.SessionCookie = v
	}

	if v := os.Getenv("HUSH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.TimeoutSeconds = n
		}
	}

	if v := os.Getenv("HUSH_MESSAGE_COLOR"); v != "" {
		cfg.UI.DefaultMessageColor = v
	}
}

// DataDir returns the path to the Hush data directory (~/.hush).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hush"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
