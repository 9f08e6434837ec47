package owners

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/result"
	"github.com/JaimeStill/million/pkg/validation"
)

// System handles the owner requests.
type System struct {
	owners domain.OwnerRepository
	logger *slog.Logger
}

// New creates the owner System.
func New(owners domain.OwnerRepository, logger *slog.Logger) *System {
	return &System{
		owners: owners,
		logger: logger.With("system", "owners"),
	}
}

// Register binds every owner request to its handler.
func (s *System) Register(d *dispatch.Dispatcher) {
	dispatch.Register(d, s.Create,
		validation.Behavior[CreateOwner, View](validation.Func[CreateOwner](validateCreate)),
	)
	dispatch.Register(d, s.GetByID)
	dispatch.Register(d, s.GetAll)
}

func (s *System) Create(ctx context.Context, req CreateOwner) result.Result[View] {
	photo := ""
	if req.Photo != nil {
		photo = *req.Photo
	}

	o, err := domain.NewOwner(req.Name, req.Address, photo, req.Birthday)
	if err != nil {
		return result.Failf[View]("Error creating owner: %v", err)
	}

	if err := s.owners.Add(ctx, o); err != nil {
		return result.Failf[View]("Error creating owner: %v", err)
	}

	s.logger.Info("owner created", "id", o.ID)
	return result.Ok(ToView(*o))
}

func (s *System) GetByID(ctx context.Context, req GetOwnerByID) result.Result[View] {
	o, err := s.owners.GetByID(ctx, req.ID)
	if err != nil {
		return result.Failf[View]("Error retrieving owner: %v", err)
	}
	if o == nil {
		return result.NotFound[View](fmt.Sprintf("Owner with ID %s not found", req.ID))
	}
	return result.Ok(ToView(*o))
}

func (s *System) GetAll(ctx context.Context, _ GetAllOwners) result.Result[[]View] {
	all, err := s.owners.GetAll(ctx)
	if err != nil {
		return result.Failf[[]View]("Error retrieving owners: %v", err)
	}

	views := make([]View, len(all))
	for i, o := range all {
		views[i] = ToView(o)
	}
	return result.Ok(views)
}
