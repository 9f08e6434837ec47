package properties

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/pagination"
	"github.com/JaimeStill/million/pkg/result"
	"github.com/JaimeStill/million/pkg/validation"
)

const maxCodeAttempts = 5

var errCodeExhausted = errors.New("could not allocate a unique internal code")

// System handles the property requests.
type System struct {
	properties domain.PropertyRepository
	owners     domain.OwnerRepository
	images     domain.PropertyImageRepository
	traces     domain.PropertyTraceRepository
	actors     domain.ActorResolver
	pagination pagination.Config
	logger     *slog.Logger
}

func New(
	repos domain.Repositories,
	actors domain.ActorResolver,
	pagination pagination.Config,
	logger *slog.Logger,
) *System {
	return &System{
		properties: repos.Properties,
		owners:     repos.Owners,
		images:     repos.Images,
		traces:     repos.Traces,
		actors:     actors,
		pagination: pagination,
		logger:     logger.With("system", "properties"),
	}
}

// Register binds every property request to its handler.
func (s *System) Register(d *dispatch.Dispatcher) {
	dispatch.Register(d, s.Create,
		validation.Behavior[CreateProperty, uuid.UUID](validation.Func[CreateProperty](validateCreate)),
	)
	dispatch.Register(d, s.Update,
		validation.Behavior[UpdateProperty, result.Void](validation.Func[UpdateProperty](validateUpdate)),
	)
	dispatch.Register(d, s.UpdatePrice,
		validation.Behavior[UpdatePropertyPrice, result.Void](validation.Func[UpdatePropertyPrice](validatePrice)),
	)
	dispatch.Register(d, s.Delete,
		validation.Behavior[DeleteProperty, result.Void](validation.Func[DeleteProperty](validateDelete)),
	)
	dispatch.Register(d, s.GetByID)
	dispatch.Register(d, s.GetByOwnerID)
	dispatch.Register(d, s.Search,
		validation.Behavior[SearchProperties, pagination.PageResult[Summary]](searchValidator(s.pagination.MaxPageSize)),
	)
}

func (s *System) Create(ctx context.Context, req CreateProperty) result.Result[uuid.UUID] {
	const prefix = "Error creating property: %v"

	ownerID, fail := domain.RequireOwner[uuid.UUID](s.actors.Actor(ctx))
	if fail != nil {
		return *fail
	}

	exists, err := s.owners.Exists(ctx, ownerID)
	if err != nil {
		return result.Failf[uuid.UUID](prefix, err)
	}
	if !exists {
		return result.BadRequest[uuid.UUID](fmt.Sprintf("Owner with ID %s does not exist", ownerID))
	}

	p, err := domain.NewProperty(ownerID, req.Name, req.Description, req.Address, req.Price, req.Year)
	if err != nil {
		return result.Failf[uuid.UUID](prefix, err)
	}

	imgs := make([]domain.PropertyImage, 0, len(req.Images))
	for _, file := range req.Images {
		img, err := domain.NewPropertyImage(p.ID, file, true)
		if err != nil {
			return result.Failf[uuid.UUID](prefix, err)
		}
		imgs = append(imgs, *img)
	}

	if err := s.insertWithUniqueCode(ctx, p, imgs); err != nil {
		return result.Failf[uuid.UUID](prefix, err)
	}

	s.logger.Info("property created", "id", p.ID, "owner", ownerID, "code", p.CodeInternal)
	return result.Ok(p.ID)
}

// insertWithUniqueCode regenerates the internal code until the store
// accepts it. A duplicate reported by the insert itself counts as a
// collision. The property and its images are written in one call.
func (s *System) insertWithUniqueCode(ctx context.Context, p *domain.Property, imgs []domain.PropertyImage) error {
	for range maxCodeAttempts {
		taken, err := s.properties.CodeInternalExists(ctx, p.CodeInternal)
		if err != nil {
			return err
		}
		if taken {
			p.CodeInternal = domain.PropertyCode(p.Created)
			continue
		}

		err = s.properties.Add(ctx, p, imgs...)
		if errors.Is(err, domain.ErrDuplicate) {
			p.CodeInternal = domain.PropertyCode(p.Created)
			continue
		}
		return err
	}
	return errCodeExhausted
}

func (s *System) Update(ctx context.Context, req UpdateProperty) result.Result[result.Void] {
	const prefix = "Error updating property: %v"

	p, fail, err := domain.AuthorizeProperty[result.Void](ctx, s.actors.Actor(ctx), s.properties, req.PropertyID, msgUpdateDenied)
	if err != nil {
		return result.Failf[result.Void](prefix, err)
	}
	if fail != nil {
		return *fail
	}

	if err := p.UpdateDetails(req.Name, req.Description, req.Address, req.Price, req.Year); err != nil {
		return result.Failf[result.Void](prefix, err)
	}
	if err := s.properties.Update(ctx, p); err != nil {
		return result.Failf[result.Void](prefix, err)
	}

	s.logger.Info("property updated", "id", p.ID)
	return result.Done()
}

func (s *System) UpdatePrice(ctx context.Context, req UpdatePropertyPrice) result.Result[result.Void] {
	const prefix = "Error updating property price: %v"

	p, fail, err := domain.AuthorizeProperty[result.Void](ctx, s.actors.Actor(ctx), s.properties, req.PropertyID, msgPriceDenied)
	if err != nil {
		return result.Failf[result.Void](prefix, err)
	}
	if fail != nil {
		return *fail
	}

	if err := p.ChangePrice(req.NewPrice); err != nil {
		return result.Failf[result.Void](prefix, err)
	}
	if err := s.properties.Update(ctx, p); err != nil {
		return result.Failf[result.Void](prefix, err)
	}

	s.logger.Info("property price updated", "id", p.ID, "price", p.Price)
	return result.Done()
}

func (s *System) Delete(ctx context.Context, req DeleteProperty) result.Result[result.Void] {
	const prefix = "Error deleting property: %v"

	_, fail, err := domain.AuthorizeProperty[result.Void](ctx, s.actors.Actor(ctx), s.properties, req.PropertyID, msgDeleteDenied)
	if err != nil {
		return result.Failf[result.Void](prefix, err)
	}
	if fail != nil {
		return *fail
	}

	deleted, err := s.properties.Delete(ctx, req.PropertyID)
	if err != nil {
		return result.Failf[result.Void](prefix, err)
	}
	if !deleted {
		return result.Failf[result.Void]("Failed to delete property")
	}

	s.logger.Info("property deleted", "id", req.PropertyID)
	return result.Done()
}

func (s *System) GetByID(ctx context.Context, req GetPropertyByID) result.Result[Detail] {
	const prefix = "Error retrieving property: %v"

	p, err := s.properties.GetByID(ctx, req.ID)
	if err != nil {
		return result.Failf[Detail](prefix, err)
	}
	if p == nil {
		return domain.PropertyNotFound[Detail](req.ID)
	}

	owner, err := s.owners.GetByID(ctx, p.OwnerID)
	if err != nil {
		return result.Failf[Detail](prefix, err)
	}
	imgs, err := s.images.GetByPropertyID(ctx, p.ID)
	if err != nil {
		return result.Failf[Detail](prefix, err)
	}
	ts, err := s.traces.GetByPropertyID(ctx, p.ID)
	if err != nil {
		return result.Failf[Detail](prefix, err)
	}

	return result.Ok(Describe(*p, ownerName(owner), imgs, ts))
}

func (s *System) GetByOwnerID(ctx context.Context, req GetPropertiesByOwnerID) result.Result[[]Summary] {
	const prefix = "Error retrieving properties for owner: %v"

	owner, err := s.owners.GetByID(ctx, req.OwnerID)
	if err != nil {
		return result.Failf[[]Summary](prefix, err)
	}
	if owner == nil {
		return result.NotFound[[]Summary](fmt.Sprintf("Owner with ID %s not found", req.OwnerID))
	}

	props, err := s.properties.GetByOwnerID(ctx, req.OwnerID)
	if err != nil {
		return result.Failf[[]Summary](prefix, err)
	}

	summaries := make([]Summary, len(props))
	for i, p := range props {
		imgs, err := s.images.GetByPropertyID(ctx, p.ID)
		if err != nil {
			return result.Failf[[]Summary](prefix, err)
		}
		summaries[i] = Summarize(p, owner.Name, imgs)
	}
	return result.Ok(summaries)
}

// Search counts the filtered set, takes one window of it in creation
// order, and enriches each item with its owner name and images.
func (s *System) Search(ctx context.Context, req SearchProperties) result.Result[pagination.PageResult[Summary]] {
	const prefix = "Error searching properties: %v"

	props, total, err := s.properties.SearchPaged(ctx, req.Criteria(), req.PageRequest)
	if err != nil {
		return result.Failf[pagination.PageResult[Summary]](prefix, err)
	}

	summaries, err := s.enrich(ctx, props)
	if err != nil {
		return result.Failf[pagination.PageResult[Summary]](prefix, err)
	}

	return result.Ok(pagination.NewPageResult(summaries, total, req.Page, req.PageSize))
}

// enrich resolves owner names and images for each property in order, one
// lookup at a time. An owner lookup failure degrades to UnknownOwner; an
// image lookup failure fails the whole page.
func (s *System) enrich(ctx context.Context, props []domain.Property) ([]Summary, error) {
	summaries := make([]Summary, 0, len(props))

	for _, p := range props {
		name := UnknownOwner
		owner, err := s.owners.GetByID(ctx, p.OwnerID)
		if err != nil {
			s.logger.Warn("owner lookup failed", "owner", p.OwnerID, "error", err)
		} else {
			name = ownerName(owner)
		}

		imgs, err := s.images.GetByPropertyID(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, Summarize(p, name, imgs))
	}

	return summaries, nil
}

func ownerName(o *domain.Owner) string {
	if o == nil {
		return UnknownOwner
	}
	return o.Name
}
