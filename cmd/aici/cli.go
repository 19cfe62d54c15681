package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/randalmurphal/aicikit/aici"
)

// CLI is the root command. Global flags apply to every subcommand; the
// optional TOML config file supplies defaults for flags left unset.
type CLI struct {
	Config  string        `short:"c" help:"Path to config file (TOML)" type:"path" env:"AICI_CONFIG"`
	BaseURL string        `help:"Server base URL" env:"AICI_BASE_URL"`
	Timeout time.Duration `help:"Request timeout (0 = none)" env:"AICI_TIMEOUT"`
	Verbose int           `short:"v" type:"counter" help:"Increase verbosity (-vv prints controller logs)"`
	Quiet   bool          `short:"q" help:"Suppress live output"`

	Upload UploadCmd `cmd:"" help:"Upload a controller module"`
	Run    RunCmd    `cmd:"" help:"Run a completion described by a run file"`
	Schema SchemaCmd `cmd:"" help:"Print the run file JSON Schema"`

	fileLogLevel *int
}

// fileConfig is the TOML config file shape.
type fileConfig struct {
	BaseURL  string `toml:"base_url"`
	LogLevel *int   `toml:"log_level"`
	Timeout  string `toml:"timeout"`
}

// LoadConfigFile merges the config file into flags left at their zero value.
// Flags and environment always win over the file.
func (c *CLI) LoadConfigFile() error {
	if c.Config == "" {
		return nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(c.Config, &fc); err != nil {
		return fmt.Errorf("load config %s: %w", c.Config, err)
	}

	if c.BaseURL == "" {
		c.BaseURL = fc.BaseURL
	}
	if c.Timeout == 0 && fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("config %s: bad timeout: %w", c.Config, err)
		}
		c.Timeout = d
	}
	c.fileLogLevel = fc.LogLevel
	return nil
}

// logLevel resolves the stream verbosity from flags and the config file.
func (c *CLI) logLevel() int {
	switch {
	case c.Quiet:
		return aici.LogSilent
	case c.Verbose >= 2:
		return aici.LogDiagnostics
	case c.Verbose == 1:
		return aici.LogDeltas
	case c.fileLogLevel != nil:
		return *c.fileLogLevel
	default:
		return aici.LogDeltas
	}
}

// newClient builds the client shared by all subcommands.
func (c *CLI) newClient() (*aici.Client, error) {
	logger := newLogger(c.Verbose)
	cfg := aici.Config{
		BaseURL:  c.BaseURL,
		LogLevel: c.logLevel(),
		Timeout:  c.Timeout,
		Logger:   &logger,
	}
	return aici.New(cfg)
}

// newLogger configures console logging on stderr so it never interleaves
// with stream output on stdout.
func newLogger(verbose int) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose >= 2 {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
