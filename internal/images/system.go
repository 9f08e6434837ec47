package images

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/result"
	"github.com/JaimeStill/million/pkg/validation"
)

// System handles the property image requests.
type System struct {
	images     domain.PropertyImageRepository
	properties domain.PropertyRepository
	actors     domain.ActorResolver
	files      *FileStore
	logger     *slog.Logger
}

func New(
	images domain.PropertyImageRepository,
	properties domain.PropertyRepository,
	actors domain.ActorResolver,
	files *FileStore,
	logger *slog.Logger,
) *System {
	return &System{
		images:     images,
		properties: properties,
		actors:     actors,
		files:      files,
		logger:     logger.With("system", "images"),
	}
}

// Register binds every image request to its handler.
func (s *System) Register(d *dispatch.Dispatcher) {
	dispatch.Register(d, s.Add,
		validation.Behavior[AddPropertyImage, uuid.UUID](validation.Func[AddPropertyImage](validateAdd)),
	)
	dispatch.Register(d, s.Upload,
		validation.Behavior[UploadPropertyImage, View](validation.Func[UploadPropertyImage](validateUpload)),
	)
	dispatch.Register(d, s.Toggle)
	dispatch.Register(d, s.GetByProperty)
}

func (s *System) Add(ctx context.Context, req AddPropertyImage) result.Result[uuid.UUID] {
	const prefix = "Error adding property image: %v"

	_, fail, err := domain.AuthorizeProperty[uuid.UUID](ctx, s.actors.Actor(ctx), s.properties, req.PropertyID, msgAddDenied)
	if err != nil {
		return result.Failf[uuid.UUID](prefix, err)
	}
	if fail != nil {
		return *fail
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	img, err := domain.NewPropertyImage(req.PropertyID, req.File, enabled)
	if err != nil {
		return result.Failf[uuid.UUID](prefix, err)
	}
	if err := s.images.Add(ctx, img); err != nil {
		return result.Failf[uuid.UUID](prefix, err)
	}

	s.logger.Info("image added", "id", img.ID, "property", req.PropertyID)
	return result.Ok(img.ID)
}

// Upload saves the content before recording the image. A failed insert
// removes the saved content again.
func (s *System) Upload(ctx context.Context, req UploadPropertyImage) result.Result[View] {
	const prefix = "Error adding property image: %v"

	_, fail, err := domain.AuthorizeProperty[View](ctx, s.actors.Actor(ctx), s.properties, req.PropertyID, msgAddDenied)
	if err != nil {
		return result.Failf[View](prefix, err)
	}
	if fail != nil {
		return *fail
	}

	saved := s.files.Save(ctx, req.Data, req.Filename, req.ContentType)
	locator, ok := saved.Unwrap()
	if !ok {
		return result.Relay[View](saved)
	}

	enabled := req.Enabled == nil || *req.Enabled
	img, err := domain.NewPropertyImage(req.PropertyID, s.files.URL(locator), enabled)
	if err == nil {
		err = s.images.Add(ctx, img)
	}
	if err != nil {
		if cleanup := s.files.Delete(ctx, locator); !cleanup.Succeeded() {
			s.logger.Warn("orphaned upload", "key", locator, "error", result.Message(cleanup))
		}
		return result.Failf[View](prefix, err)
	}

	s.logger.Info("image uploaded", "id", img.ID, "property", req.PropertyID, "key", locator)
	return result.Ok(ToView(*img))
}

func (s *System) Toggle(ctx context.Context, req TogglePropertyImage) result.Result[View] {
	const prefix = "Error updating property image: %v"

	actor := s.actors.Actor(ctx)
	if _, fail := domain.RequireOwner[View](actor); fail != nil {
		return *fail
	}

	img, err := s.images.GetByID(ctx, req.ImageID)
	if err != nil {
		return result.Failf[View](prefix, err)
	}
	if img == nil {
		return imageNotFound[View](req.ImageID)
	}

	_, fail, err := domain.AuthorizeProperty[View](ctx, actor, s.properties, img.PropertyID, msgModifyDenied)
	if err != nil {
		return result.Failf[View](prefix, err)
	}
	if fail != nil {
		return *fail
	}

	img.Toggle()
	if err := s.images.Update(ctx, img); err != nil {
		return result.Failf[View](prefix, err)
	}

	s.logger.Info("image toggled", "id", img.ID, "enabled", img.Enabled)
	return result.Ok(ToView(*img))
}

func (s *System) GetByProperty(ctx context.Context, req GetPropertyImages) result.Result[[]View] {
	const prefix = "Error retrieving property images: %v"

	exists, err := s.properties.Exists(ctx, req.PropertyID)
	if err != nil {
		return result.Failf[[]View](prefix, err)
	}
	if !exists {
		return domain.PropertyNotFound[[]View](req.PropertyID)
	}

	imgs, err := s.images.GetByPropertyID(ctx, req.PropertyID)
	if err != nil {
		return result.Failf[[]View](prefix, err)
	}
	return result.Ok(ToViews(imgs))
}
