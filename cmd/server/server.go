package main

import (
	"fmt"
	"time"

	"github.com/JaimeStill/million/internal/config"
	"github.com/JaimeStill/million/internal/infrastructure"
)

// Server owns the process: shared infrastructure, the mounted modules and
// the HTTP listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("infrastructure: %w", err)
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, fmt.Errorf("modules: %w", err)
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info("server configured",
		"version", cfg.Version,
		"addr", cfg.Server.Addr(),
		"store", cfg.Store.Mode,
		"storage", cfg.Storage.Provider,
		"seed", cfg.Store.Seeding(),
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start runs the startup hooks in the background. Seeding waits on the
// database check it performs itself, so it can share the startup phase
// with the storage and database hooks.
func (s *Server) Start() error {
	lc := s.infra.Lifecycle
	logger := s.infra.Logger

	if err := s.infra.Start(); err != nil {
		return err
	}

	lc.OnStartup(func() {
		if err := s.modules.API.Seed(lc.Context()); err != nil {
			logger.Error("demo data not seeded", "error", err)
		}
	})

	if err := s.http.Start(lc); err != nil {
		return err
	}

	go func() {
		lc.WaitForStartup()
		if lc.Ready() {
			logger.Info("ready", "systems", lc.Status())
			return
		}
		logger.Warn("started but not ready", "systems", lc.Status())
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("shutting down", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
