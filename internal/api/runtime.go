package api

import (
	"fmt"

	"github.com/JaimeStill/million/internal/config"
	"github.com/JaimeStill/million/internal/infrastructure"
	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/pagination"
	"github.com/JaimeStill/million/pkg/token"
)

// Runtime extends Infrastructure with API-specific configuration and the
// request dispatcher shared by every domain system.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination    pagination.Config
	MaxUploadSize int64
	Tokens        *token.Service
	Dispatcher    *dispatch.Dispatcher
}

// NewRuntime creates an API runtime with a module-scoped logger. The
// dispatcher logs every request and feeds the infrastructure metrics registry.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	tokens, err := token.New(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	metrics, err := dispatch.NewMetrics(infra.Metrics)
	if err != nil {
		return nil, fmt.Errorf("dispatch metrics: %w", err)
	}

	logger := infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Metrics:   infra.Metrics,
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination:    cfg.API.Pagination,
		MaxUploadSize: cfg.Storage.MaxUploadSizeBytes(),
		Tokens:        tokens,
		Dispatcher:    dispatch.New(dispatch.LogObserver(logger), metrics.Observer()),
	}, nil
}
