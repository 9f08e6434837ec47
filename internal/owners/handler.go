package owners

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/handlers"
	"github.com/JaimeStill/million/pkg/openapi"
	"github.com/JaimeStill/million/pkg/routes"
)

var ErrInvalidID = errors.New("invalid owner id")

// Handler provides HTTP endpoints for owner operations.
type Handler struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	protect    func(http.HandlerFunc) http.HandlerFunc
}

// NewHandler creates a Handler. protect wraps the routes that require an
// authenticated caller.
func NewHandler(d *dispatch.Dispatcher, logger *slog.Logger, protect func(http.HandlerFunc) http.HandlerFunc) *Handler {
	return &Handler{
		dispatcher: d,
		logger:     logger.With("handler", "owners"),
		protect:    protect,
	}
}

// Routes returns the route group definition for owner endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/owners",
		Tags:   []string{"Owners"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, Summary: "List owners"},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, Summary: "Get owner"},
			{
				Method: "POST", Pattern: "", Handler: h.protect(h.Create),
				Summary: "Create owner", Secured: true,
				Body: openapi.RequestBodyJSON("name, address, photo and birthday"),
			},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	res := dispatch.Send[[]View](r.Context(), h.dispatcher, GetAllOwners{})
	handlers.Respond(w, h.logger, res)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	res := dispatch.Send[View](r.Context(), h.dispatcher, GetOwnerByID{ID: id})
	handlers.Respond(w, h.logger, res)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOwner
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	res := dispatch.Send[View](r.Context(), h.dispatcher, req)
	handlers.RespondCreated(w, h.logger, res)
}
