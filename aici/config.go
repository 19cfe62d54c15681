package aici

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Verbosity levels for live stream output.
const (
	// LogSilent produces no console output.
	LogSilent = 0

	// LogDeltas prints the live text deltas of choice 0 and a completion
	// marker. This is the default.
	LogDeltas = 1

	// LogDiagnostics prints the raw controller diagnostic logs of choice 0
	// instead of the deltas.
	LogDiagnostics = 2
)

// DefaultBaseURL is the server address used when Config.BaseURL is empty.
const DefaultBaseURL = "http://127.0.0.1:8080/v1/"

// Config holds configuration for creating a Client.
// The zero value is usable and talks to DefaultBaseURL.
type Config struct {
	// BaseURL is the server prefix, e.g. "http://127.0.0.1:8080/v1/".
	// A trailing slash is added if missing.
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`

	// LogLevel selects live console output: LogSilent, LogDeltas, or
	// LogDiagnostics. Output never alters the returned Result.
	LogLevel int `json:"log_level" yaml:"log_level" toml:"log_level"`

	// Timeout bounds the full request, including streaming the body.
	// 0 means no client-side timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" toml:"timeout"`

	// Output receives live stream output. Default: os.Stdout.
	Output io.Writer `json:"-" yaml:"-" toml:"-"`

	// HTTPClient overrides the underlying transport. When set, Timeout is
	// ignored.
	HTTPClient *http.Client `json:"-" yaml:"-" toml:"-"`

	// Logger receives structured diagnostics. Default: a no-op logger.
	Logger *zerolog.Logger `json:"-" yaml:"-" toml:"-"`
}

// DefaultConfig returns a Config with the defaults local deployments
// expect: loopback server, delta output.
func DefaultConfig() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		LogLevel: LogDeltas,
	}
}

// LoadFromEnv populates config fields from environment variables.
// Variables use the AICI_ prefix and take precedence over existing values.
//
// Supported variables:
//   - AICI_BASE_URL: server prefix
//   - AICI_LOG_LEVEL: verbosity (0, 1, 2)
//   - AICI_TIMEOUT: request timeout (e.g. "90s")
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("AICI_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("AICI_LOG_LEVEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.LogLevel = n
		}
	}
	if v := os.Getenv("AICI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
}

// FromEnv creates a Config from environment variables with defaults.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.LogLevel < LogSilent || c.LogLevel > LogDiagnostics {
		return fmt.Errorf("log_level must be 0, 1, or 2, got %d", c.LogLevel)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	if c.BaseURL != "" && !strings.Contains(c.BaseURL, "://") {
		return fmt.Errorf("base_url must be an absolute URL, got %q", c.BaseURL)
	}
	return nil
}

// WithBaseURL returns a copy of the config with the specified server prefix.
func (c Config) WithBaseURL(u string) Config {
	c.BaseURL = u
	return c
}

// WithLogLevel returns a copy of the config with the specified verbosity.
func (c Config) WithLogLevel(level int) Config {
	c.LogLevel = level
	return c
}

// normalized applies defaults for zero fields.
func (c Config) normalized() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}
