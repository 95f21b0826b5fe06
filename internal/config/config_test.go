package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GetAPIEndpoint() != "http://localhost:8000/api/v1" {
		t.Errorf("Default endpoint = %q", cfg.GetAPIEndpoint())
	}
	if cfg.GetAPITimeout() != 60*time.Second {
		t.Errorf("Default timeout = %v, want 60s", cfg.GetAPITimeout())
	}
	if cfg.GetGenerateTimeout() != 120*time.Second {
		t.Errorf("Default generate timeout = %v, want 120s", cfg.GetGenerateTimeout())
	}
	if cfg.Polling.Interval != 2*time.Second {
		t.Errorf("Default poll interval = %v, want 2s", cfg.Polling.Interval)
	}
	if cfg.Polling.MaxAttempts != 300 {
		t.Errorf("Default max attempts = %d, want 300", cfg.Polling.MaxAttempts)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Default logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")

	content := `
api:
  endpoint: https://teachforge.example.com/api/v1/
  timeout: 30s
polling:
  interval: 1s
  max_attempts: 10
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(configFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Trailing slash is trimmed so path joining stays predictable.
	if cfg.GetAPIEndpoint() != "https://teachforge.example.com/api/v1" {
		t.Errorf("Endpoint = %q", cfg.GetAPIEndpoint())
	}
	if cfg.GetAPITimeout() != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.GetAPITimeout())
	}
	if cfg.Polling.Interval != time.Second {
		t.Errorf("Poll interval = %v, want 1s", cfg.Polling.Interval)
	}
	if cfg.Polling.MaxAttempts != 10 {
		t.Errorf("Max attempts = %d, want 10", cfg.Polling.MaxAttempts)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("TEACHFORGE_ENDPOINT", "https://env.example.com/api/v1")
	t.Setenv("TEACHFORGE_LOGGING_LEVEL", "warning")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GetAPIEndpoint() != "https://env.example.com/api/v1" {
		t.Errorf("Endpoint = %q, want env override", cfg.GetAPIEndpoint())
	}
	if cfg.Logging.Level != "warning" {
		t.Errorf("Logging level = %q, want warning", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("TEACHFORGE_LOGGING_LEVEL", "chatty")

	if _, err := Load(""); err == nil {
		t.Error("Expected an error for an unknown log level")
	}
}

func TestPollerOptions(t *testing.T) {
	cfg := DefaultConfig()

	opts := cfg.PollerOptions([]string{"video_url"})
	if opts.Interval != 2*time.Second {
		t.Errorf("Interval = %v", opts.Interval)
	}
	if opts.MaxAttempts != 300 {
		t.Errorf("MaxAttempts = %d", opts.MaxAttempts)
	}
	if len(opts.ResultFields) != 1 || opts.ResultFields[0] != "video_url" {
		t.Errorf("ResultFields = %v", opts.ResultFields)
	}
}
