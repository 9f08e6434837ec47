package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvStoreMode          = "MILLION_STORE"
	EnvStoreSeed          = "MILLION_STORE_SEED"
	EnvStoreOwnerCacheTTL = "MILLION_STORE_OWNER_CACHE_TTL"
)

// Repository backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// StoreConfig selects the repository backend and startup seeding.
type StoreConfig struct {
	Mode          string `toml:"mode"`
	Seed          *bool  `toml:"seed"`
	OwnerCacheTTL string `toml:"owner_cache_ttl"`
}

// Seeding reports whether demo data should be written on startup.
func (c *StoreConfig) Seeding() bool {
	return c.Seed != nil && *c.Seed
}

// OwnerCacheTTLDuration returns OwnerCacheTTL as a time.Duration.
// Zero disables the owner cache.
func (c *StoreConfig) OwnerCacheTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.OwnerCacheTTL)
	return d
}

func (c *StoreConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *StoreConfig) Merge(overlay *StoreConfig) {
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.Seed != nil {
		c.Seed = overlay.Seed
	}
	if overlay.OwnerCacheTTL != "" {
		c.OwnerCacheTTL = overlay.OwnerCacheTTL
	}
}

func (c *StoreConfig) loadDefaults() {
	if c.Mode == "" {
		c.Mode = StorePostgres
	}
	if c.OwnerCacheTTL == "" {
		c.OwnerCacheTTL = "5m"
	}
}

func (c *StoreConfig) loadEnv() {
	if v := os.Getenv(EnvStoreMode); v != "" {
		c.Mode = v
	}
	if v := os.Getenv(EnvStoreSeed); v != "" {
		if seed, err := strconv.ParseBool(v); err == nil {
			c.Seed = &seed
		}
	}
	if v := os.Getenv(EnvStoreOwnerCacheTTL); v != "" {
		c.OwnerCacheTTL = v
	}
}

func (c *StoreConfig) validate() error {
	c.Mode = strings.ToLower(c.Mode)
	if c.Mode != StorePostgres && c.Mode != StoreMemory {
		return fmt.Errorf("unsupported store mode %q", c.Mode)
	}
	if c.Seed == nil {
		seed := c.Mode == StoreMemory
		c.Seed = &seed
	}
	if _, err := time.ParseDuration(c.OwnerCacheTTL); err != nil {
		return fmt.Errorf("invalid owner_cache_ttl: %w", err)
	}
	return nil
}
