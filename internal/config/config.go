// Package config loads service configuration from config.toml, an optional
// environment overlay (config.<env>.toml), and MILLION_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/million/pkg/database"
	"github.com/JaimeStill/million/pkg/storage"
	"github.com/JaimeStill/million/pkg/token"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvMillionEnv     = "MILLION_ENV"
	EnvMillionVersion = "MILLION_VERSION"
)

var DatabaseEnv = &database.Env{
	Host:            "MILLION_DB_HOST",
	Port:            "MILLION_DB_PORT",
	Name:            "MILLION_DB_NAME",
	User:            "MILLION_DB_USER",
	Password:        "MILLION_DB_PASSWORD",
	SSLMode:         "MILLION_DB_SSL_MODE",
	MaxOpenConns:    "MILLION_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "MILLION_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "MILLION_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "MILLION_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "MILLION_STORAGE_PROVIDER",
	ContainerName:    "MILLION_STORAGE_CONTAINER_NAME",
	ConnectionString: "MILLION_STORAGE_CONNECTION_STRING",
	AccountURL:       "MILLION_STORAGE_ACCOUNT_URL",
	LocalPath:        "MILLION_STORAGE_LOCAL_PATH",
	BaseURL:          "MILLION_STORAGE_BASE_URL",
	MaxUploadSize:    "MILLION_STORAGE_MAX_UPLOAD_SIZE",
}

var authEnv = &token.Env{
	Secret:   "MILLION_AUTH_SECRET",
	Issuer:   "MILLION_AUTH_ISSUER",
	Audience: "MILLION_AUTH_AUDIENCE",
	TTL:      "MILLION_AUTH_TTL",
}

// Config is the root configuration for the Million service.
type Config struct {
	Server   ServerConfig    `toml:"server"`
	Database database.Config `toml:"database"`
	Storage  storage.Config  `toml:"storage"`
	API      APIConfig       `toml:"api"`
	Auth     token.Config    `toml:"auth"`
	Log      LogConfig       `toml:"log"`
	Store    StoreConfig     `toml:"store"`
	Version  string          `toml:"version"`
}

// Env returns the MILLION_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvMillionEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom behaves like Load with an explicit base file path. The overlay is
// resolved next to the base file.
func LoadFrom(base string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(base); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Auth.Merge(&overlay.Auth)
	c.Log.Merge(&overlay.Log)
	c.Store.Merge(&overlay.Store)
}

func (c *Config) finalize() error {
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvMillionVersion); v != "" {
		c.Version = v
	}

	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Store.Finalize(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if c.Store.Mode == StorePostgres {
		if err := c.Database.Finalize(DatabaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Log.Finalize(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	env := os.Getenv(EnvMillionEnv)
	if env == "" {
		return ""
	}

	path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
