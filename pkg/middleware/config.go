package middleware

import (
	"fmt"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig is the cross-origin policy of the API module.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// CORSEnv names the environment variables that override CORSConfig.
type CORSEnv struct {
	Enabled          string
	Origins          string
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials string
	MaxAge           string
}

var (
	defaultMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	defaultHeaders = []string{"Content-Type", "Authorization"}
)

// Finalize applies defaults, then environment overrides, then validation.
// Origins lose any trailing slash and methods are upper-cased.
func (c *CORSConfig) Finalize(env *CORSEnv) error {
	if env != nil {
		c.loadEnv(env)
	}

	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = slices.Clone(defaultMethods)
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = slices.Clone(defaultHeaders)
	}
	if c.MaxAge == 0 {
		c.MaxAge = 3600
	}

	for i, origin := range c.Origins {
		c.Origins[i] = strings.TrimRight(origin, "/")
	}
	for i, method := range c.AllowedMethods {
		c.AllowedMethods[i] = strings.ToUpper(method)
	}

	if c.MaxAge < 0 {
		return fmt.Errorf("max_age cannot be negative")
	}
	return nil
}

// Merge applies the non-zero fields of overlay. An overlay that lists
// origins also decides whether CORS is enabled; otherwise it can only
// switch CORS on.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	if overlay.Origins != nil {
		c.Origins = overlay.Origins
		c.Enabled = overlay.Enabled
	} else if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.AllowCredentials {
		c.AllowCredentials = true
	}
	if overlay.AllowedMethods != nil {
		c.AllowedMethods = overlay.AllowedMethods
	}
	if overlay.AllowedHeaders != nil {
		c.AllowedHeaders = overlay.AllowedHeaders
	}
	if overlay.MaxAge != 0 {
		c.MaxAge = overlay.MaxAge
	}
}

func (c *CORSConfig) loadEnv(env *CORSEnv) {
	if v, ok := lookup(env.Enabled); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v, ok := lookup(env.AllowCredentials); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AllowCredentials = b
		}
	}
	if v, ok := lookup(env.MaxAge); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxAge = n
		}
	}
	if v, ok := lookup(env.Origins); ok {
		c.Origins = splitList(v)
	}
	if v, ok := lookup(env.AllowedMethods); ok {
		c.AllowedMethods = splitList(v)
	}
	if v, ok := lookup(env.AllowedHeaders); ok {
		c.AllowedHeaders = splitList(v)
	}
}

// lookup reads the named variable, reporting false for an unset name or
// an empty value.
func lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	v := os.Getenv(name)
	return v, v != ""
}

func splitList(v string) []string {
	var out []string
	for item := range strings.SplitSeq(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
