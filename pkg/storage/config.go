package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/million/pkg/formatting"
)

const (
	ProviderLocal = "local"
	ProviderAzure = "azure"
)

// Config selects a blob provider and holds its connection parameters.
type Config struct {
	Provider         string `toml:"provider"`
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
	LocalPath        string `toml:"local_path"`
	BaseURL          string `toml:"base_url"`
	MaxUploadSize    string `toml:"max_upload_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider         string
	ContainerName    string
	ConnectionString string
	AccountURL       string
	LocalPath        string
	BaseURL          string
	MaxUploadSize    string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.AccountURL != "" {
		c.AccountURL = overlay.AccountURL
	}
	if overlay.LocalPath != "" {
		c.LocalPath = overlay.LocalPath
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderLocal
	}
	if c.ContainerName == "" {
		c.ContainerName = "images"
	}
	if c.LocalPath == "" {
		c.LocalPath = "uploads"
	}
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8080"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	set(env.Provider, &c.Provider)
	set(env.ContainerName, &c.ContainerName)
	set(env.ConnectionString, &c.ConnectionString)
	set(env.AccountURL, &c.AccountURL)
	set(env.LocalPath, &c.LocalPath)
	set(env.BaseURL, &c.BaseURL)
	set(env.MaxUploadSize, &c.MaxUploadSize)
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes. Validation guarantees it parses.
func (c *Config) MaxUploadSizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxUploadSize)
	return size
}

func (c *Config) validate() error {
	if size, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	} else if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}

	c.Provider = strings.ToLower(c.Provider)
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	switch c.Provider {
	case ProviderLocal:
		if c.LocalPath == "" {
			return fmt.Errorf("local_path required")
		}
	case ProviderAzure:
		if c.ContainerName == "" {
			return fmt.Errorf("container_name required")
		}
		if c.ConnectionString == "" && c.AccountURL == "" {
			return fmt.Errorf("connection_string or account_url required")
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownProvider, c.Provider)
	}
	return nil
}
