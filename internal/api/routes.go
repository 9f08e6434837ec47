package api

import (
	"github.com/JaimeStill/million/internal/auth"
	"github.com/JaimeStill/million/internal/images"
	"github.com/JaimeStill/million/internal/owners"
	"github.com/JaimeStill/million/internal/properties"
	"github.com/JaimeStill/million/internal/traces"
	"github.com/JaimeStill/million/pkg/module"
)

func registerRoutes(m *module.Module, runtime *Runtime) {
	d := runtime.Dispatcher
	logger := runtime.Logger
	protect := auth.RequireAuth(logger)

	m.Mount(
		auth.NewHandler(d, logger).Routes(),
		owners.NewHandler(d, logger, protect).Routes(),
		properties.NewHandler(d, logger, protect, runtime.Pagination).Routes(),
		images.NewHandler(d, logger, protect, runtime.MaxUploadSize).Routes(),
		traces.NewHandler(d, logger, protect).Routes(),
	)
}
