// Package config handles configuration loading and saving.
package config

import (
	"strings"

	"github.com/linkdock/linkdock/logger"
)

const (
	configFileName = "config.yaml"
)

var configDirOverride string

// SetConfigDir overrides the config directory for the current process.
// Empty value clears the override.
func SetConfigDir(dir string) {
	configDirOverride = strings.TrimSpace(dir)
}

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Finder  FinderConfig  `json:"finder,omitempty" yaml:"finder,omitempty"`
	Session SessionConfig `json:"session,omitempty" yaml:"session,omitempty"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// ServerConfig contains daemon listener configuration.
type ServerConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"` // default: 127.0.0.1:8787
}

// FinderConfig selects and configures the link finder backend.
type FinderConfig struct {
	Provider   string `json:"provider,omitempty" yaml:"provider,omitempty"`     // stub, openai, anthropic
	Model      string `json:"model,omitempty" yaml:"model,omitempty"`           // provider model name
	APIKey     string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`         // or LINKDOCK_FINDER_API_KEY
	APIBase    string `json:"apiBase,omitempty" yaml:"apiBase,omitempty"`       // optional custom base URL
	MaxResults int    `json:"maxResults,omitempty" yaml:"maxResults,omitempty"` // defaults to 3
}

// SessionConfig contains session lifecycle configuration.
type SessionConfig struct {
	IdleTimeout int    `json:"idleTimeout,omitempty" yaml:"idleTimeout,omitempty"` // seconds, defaults to 900
	SweepExpr   string `json:"sweepExpr,omitempty" yaml:"sweepExpr,omitempty"`     // cron expression for dead-session sweep
	CallTimeout int    `json:"callTimeout,omitempty" yaml:"callTimeout,omitempty"` // seconds per host call, defaults to 30
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`   // debug, info, warn, error
	Stdout  bool   `json:"stdout,omitempty" yaml:"stdout,omitempty"` // log to stdout
	File    string `json:"file,omitempty" yaml:"file,omitempty"`     // log file path
}

// BuildLoggerConfig converts the logging section into logger settings.
func (c *Config) BuildLoggerConfig() logger.Config {
	enabled := true
	if c.Logging.Enabled != nil {
		enabled = *c.Logging.Enabled
	}
	return logger.Config{
		Enabled: enabled,
		Level:   c.Logging.Level,
		Stdout:  c.Logging.Stdout,
		File:    c.Logging.File,
	}
}
