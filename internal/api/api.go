// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"

	"github.com/JaimeStill/million/internal/auth"
	"github.com/JaimeStill/million/internal/config"
	"github.com/JaimeStill/million/internal/infrastructure"
	"github.com/JaimeStill/million/internal/seed"
	"github.com/JaimeStill/million/pkg/middleware"
	"github.com/JaimeStill/million/pkg/module"
	"github.com/JaimeStill/million/pkg/openapi"
	"github.com/JaimeStill/million/pkg/password"
)

// API is the assembled HTTP surface plus the domain it serves.
type API struct {
	Module  *module.Module
	Runtime *Runtime
	Domain  *Domain
	Spec    *openapi.Spec

	seed bool
}

// New creates the API module with all domain handlers and middleware.
// The OpenAPI document for the mounted routes is served at the configured
// path under the module prefix, /api/openapi.json by default.
func New(cfg *config.Config, infra *infrastructure.Infrastructure) (*API, error) {
	runtime, err := NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}

	dom, err := NewDomain(runtime, NewRepositories(&cfg.Store, runtime))
	if err != nil {
		return nil, fmt.Errorf("domain: %w", err)
	}

	m := module.New(cfg.API.BasePath)
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(auth.Authenticate(runtime.Tokens, runtime.Logger))

	registerRoutes(m, runtime)

	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.Storage.BaseURL)
	m.Describe(spec)

	serveSpec, err := openapi.ServeSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	m.HandleFunc("GET "+cfg.API.OpenAPI.Path, serveSpec)

	return &API{
		Module:  m,
		Runtime: runtime,
		Domain:  dom,
		Spec:    spec,
		seed:    cfg.Store.Seeding(),
	}, nil
}

// Seed writes the demo data set when seeding is enabled and the store is
// empty. On Postgres it first confirms the database is reachable.
func (a *API) Seed(ctx context.Context) error {
	if !a.seed {
		return nil
	}
	if db := a.Runtime.Database; db != nil {
		if err := db.Check(ctx); err != nil {
			return err
		}
	}

	logger := a.Runtime.Logger.With("system", "seed")
	seeded, err := seed.Run(ctx, a.Domain.Repositories, password.Hasher{}, logger)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if seeded {
		logger.Info("demo data seeded", "login", seed.DemoEmail)
	}
	return nil
}
