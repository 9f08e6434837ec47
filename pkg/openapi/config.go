package openapi

import (
	"cmp"
	"fmt"
	"os"
	"strings"
)

// Config describes the generated document and where the module serves it.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	// Path is relative to the module prefix.
	Path string `toml:"path"`
}

type ConfigEnv struct {
	Title       string
	Description string
	Path        string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	if env != nil {
		for name, dst := range map[string]*string{
			env.Title:       &c.Title,
			env.Description: &c.Description,
			env.Path:        &c.Path,
		} {
			if name == "" {
				continue
			}
			if v := os.Getenv(name); v != "" {
				*dst = v
			}
		}
	}

	c.Title = cmp.Or(c.Title, "Million API")
	c.Description = cmp.Or(c.Description, "Property listings with owners, images and sale history.")
	c.Path = cmp.Or(c.Path, "/openapi.json")

	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("openapi path %q must start with /", c.Path)
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	c.Title = cmp.Or(overlay.Title, c.Title)
	c.Description = cmp.Or(overlay.Description, c.Description)
	c.Path = cmp.Or(overlay.Path, c.Path)
}
