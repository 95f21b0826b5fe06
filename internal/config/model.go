package config

import (
	"strings"
	"time"

	"github.com/teachforge-io/agent/internal/poller"
)

// Config represents the agent configuration structure.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Polling PollingConfig `mapstructure:"polling"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig points the agent at the TeachForge backend.
type APIConfig struct {
	// Endpoint is the API base URL including the version prefix.
	Endpoint string `mapstructure:"endpoint"`

	// Timeout applies to every call unless a call overrides it.
	Timeout time.Duration `mapstructure:"timeout"`

	// GenerateTimeout applies to generation submit calls, which can take
	// longer than a normal request to come back with a task identifier.
	GenerateTimeout time.Duration `mapstructure:"generate_timeout"`
}

// PollingConfig tunes the async job poll loops.
type PollingConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`

	// MaxAttempts bounds each poll loop; zero disables the bound.
	MaxAttempts int `mapstructure:"max_attempts"`
}

// LoggingConfig controls the logrus setup.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c *Config) GetAPIEndpoint() string {
	return strings.TrimSuffix(c.API.Endpoint, "/")
}

func (c *Config) GetAPITimeout() time.Duration {
	return c.API.Timeout
}

func (c *Config) GetGenerateTimeout() time.Duration {
	return c.API.GenerateTimeout
}

// PollerOptions maps the polling config onto poller options for one job.
func (c *Config) PollerOptions(resultFields []string) poller.Options {
	return poller.Options{
		Interval:      c.Polling.Interval,
		RetryInterval: c.Polling.RetryInterval,
		MaxAttempts:   c.Polling.MaxAttempts,
		ResultFields:  resultFields,
	}
}
