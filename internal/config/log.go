package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	EnvLogFormat = "MILLION_LOG_FORMAT"
	EnvLogLevel  = "MILLION_LOG_LEVEL"
)

// Log output formats.
const (
	LogFormatText  = "text"
	LogFormatJSON  = "json"
	LogFormatColor = "color"
)

// LogConfig selects the root slog handler and its minimum level.
type LogConfig struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// SlogLevel returns Level as a slog.Level. Validation guarantees it parses.
func (c *LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.Level))
	return level
}

func (c *LogConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *LogConfig) Merge(overlay *LogConfig) {
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
}

func (c *LogConfig) loadDefaults() {
	if c.Format == "" {
		c.Format = LogFormatText
	}
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c *LogConfig) loadEnv() {
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Format = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Level = v
	}
}

func (c *LogConfig) validate() error {
	c.Format = strings.ToLower(c.Format)
	switch c.Format {
	case LogFormatText, LogFormatJSON, LogFormatColor:
	default:
		return fmt.Errorf("unsupported log format %q", c.Format)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}
