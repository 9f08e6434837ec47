package config

import (
	"cmp"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost            = "MILLION_SERVER_HOST"
	EnvServerPort            = "MILLION_SERVER_PORT"
	EnvServerReadTimeout     = "MILLION_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "MILLION_SERVER_WRITE_TIMEOUT"
	EnvServerShutdownTimeout = "MILLION_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig is the listen address and the timeouts of the HTTP server.
// Timeouts are Go duration strings.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration     { return mustDuration(c.ReadTimeout) }
func (c *ServerConfig) WriteTimeoutDuration() time.Duration    { return mustDuration(c.WriteTimeout) }
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration { return mustDuration(c.ShutdownTimeout) }

func (c *ServerConfig) Finalize() error {
	c.Host = cmp.Or(os.Getenv(EnvServerHost), c.Host, "0.0.0.0")
	c.ReadTimeout = cmp.Or(os.Getenv(EnvServerReadTimeout), c.ReadTimeout, "30s")
	c.WriteTimeout = cmp.Or(os.Getenv(EnvServerWriteTimeout), c.WriteTimeout, "60s")
	c.ShutdownTimeout = cmp.Or(os.Getenv(EnvServerShutdownTimeout), c.ShutdownTimeout, "30s")

	c.Port = cmp.Or(c.Port, 8080)
	if v := os.Getenv(EnvServerPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvServerPort, err)
		}
		c.Port = port
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	for name, v := range map[string]string{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return fmt.Errorf("%s must be a positive duration, got %q", name, v)
		}
	}
	return nil
}

func (c *ServerConfig) Merge(overlay *ServerConfig) {
	c.Host = cmp.Or(overlay.Host, c.Host)
	c.Port = cmp.Or(overlay.Port, c.Port)
	c.ReadTimeout = cmp.Or(overlay.ReadTimeout, c.ReadTimeout)
	c.WriteTimeout = cmp.Or(overlay.WriteTimeout, c.WriteTimeout)
	c.ShutdownTimeout = cmp.Or(overlay.ShutdownTimeout, c.ShutdownTimeout)
}

// mustDuration parses a duration Finalize has already validated.
func mustDuration(v string) time.Duration {
	d, _ := time.ParseDuration(v)
	return d
}
