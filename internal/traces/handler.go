package traces

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

var ErrInvalidID = errors.New("invalid property id")

// Handler provides HTTP endpoints for property traces.
type Handler struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	protect    func(http.HandlerFunc) http.HandlerFunc
}

func NewHandler(d *dispatch.Dispatcher, logger *slog.Logger, protect func(http.HandlerFunc) http.HandlerFunc) *Handler {
	return &Handler{
		dispatcher: d,
		logger:     logger.With("handler", "traces"),
		protect:    protect,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/properties/{propertyId}/traces",
		Tags:   []string{"Traces"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, Summary: "List sale history, newest first"},
			{
				Method: "POST", Pattern: "", Handler: h.protect(h.Add),
				Summary: "Record a sale", Secured: true,
				Body: openapi.RequestBodyJSON("dateSale, name, value and tax"),
			},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("propertyId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	res := dispatch.Send[[]View](r.Context(), h.dispatcher, GetPropertyTraces{PropertyID: id})
	handlers.Respond(w, h.logger, res)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("propertyId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	var req AddPropertyTrace
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	req.PropertyID = id

	res := dispatch.Send[uuid.UUID](r.Context(), h.dispatcher, req)
	handlers.RespondCreated(w, h.logger, res)
}
