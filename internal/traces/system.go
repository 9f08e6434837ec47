package traces

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/result"
	"github.com/JaimeStill/million/pkg/validation"
)

// System handles the property trace requests.
type System struct {
	traces     domain.PropertyTraceRepository
	properties domain.PropertyRepository
	actors     domain.ActorResolver
	logger     *slog.Logger
}

func New(
	traces domain.PropertyTraceRepository,
	properties domain.PropertyRepository,
	actors domain.ActorResolver,
	logger *slog.Logger,
) *System {
	return &System{
		traces:     traces,
		properties: properties,
		actors:     actors,
		logger:     logger.With("system", "traces"),
	}
}

func (s *System) Register(d *dispatch.Dispatcher) {
	dispatch.Register(d, s.Add,
		validation.Behavior[AddPropertyTrace, uuid.UUID](validation.Func[AddPropertyTrace](validateAdd)),
	)
	dispatch.Register(d, s.GetByProperty)
}

func (s *System) Add(ctx context.Context, req AddPropertyTrace) result.Result[uuid.UUID] {
	const prefix = "Error adding property trace: %v"

	_, fail, err := domain.AuthorizeProperty[uuid.UUID](ctx, s.actors.Actor(ctx), s.properties, req.PropertyID, msgAddDenied)
	if err != nil {
		return result.Failf[uuid.UUID](prefix, err)
	}
	if fail != nil {
		return *fail
	}

	t, err := domain.NewPropertyTrace(req.PropertyID, req.DateSale, req.Name, req.Value, req.Tax)
	if err != nil {
		return result.Failf[uuid.UUID](prefix, err)
	}
	if err := s.traces.Add(ctx, t); err != nil {
		return result.Failf[uuid.UUID](prefix, err)
	}

	s.logger.Info("trace added", "id", t.ID, "property", req.PropertyID)
	return result.Ok(t.ID)
}

func (s *System) GetByProperty(ctx context.Context, req GetPropertyTraces) result.Result[[]View] {
	const prefix = "Error retrieving property traces: %v"

	exists, err := s.properties.Exists(ctx, req.PropertyID)
	if err != nil {
		return result.Failf[[]View](prefix, err)
	}
	if !exists {
		return domain.PropertyNotFound[[]View](req.PropertyID)
	}

	ts, err := s.traces.GetByPropertyID(ctx, req.PropertyID)
	if err != nil {
		return result.Failf[[]View](prefix, err)
	}
	return result.Ok(ToViews(ts))
}
