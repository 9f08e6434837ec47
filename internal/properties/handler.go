package properties

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/handlers"
	"github.com/JaimeStill/million/pkg/openapi"
	"github.com/JaimeStill/million/pkg/pagination"
	"github.com/JaimeStill/million/pkg/result"
	"github.com/JaimeStill/million/pkg/routes"
)

var (
	ErrInvalidID    = errors.New("invalid id")
	ErrInvalidPrice = errors.New("minPrice and maxPrice must be numbers")
)

// Handler provides HTTP endpoints for property operations.
type Handler struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	protect    func(http.HandlerFunc) http.HandlerFunc
	pagination pagination.Config
}

func NewHandler(
	d *dispatch.Dispatcher,
	logger *slog.Logger,
	protect func(http.HandlerFunc) http.HandlerFunc,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		dispatcher: d,
		logger:     logger.With("handler", "properties"),
		protect:    protect,
		pagination: pagination,
	}
}

// Routes returns the property endpoints plus the per-owner listing.
func (h *Handler) Routes() routes.Group {
	search := []*openapi.Parameter{
		openapi.QueryParam("name", "string", "Case-insensitive substring of the property name", false),
		openapi.QueryParam("address", "string", "Case-insensitive substring of the address", false),
		openapi.QueryParam("minPrice", "number", "Inclusive lower price bound", false),
		openapi.QueryParam("maxPrice", "number", "Inclusive upper price bound", false),
		openapi.QueryParam("pageNumber", "integer", "Page number (1-indexed)", false),
		openapi.QueryParam("pageSize", "integer", "Results per page", false),
	}

	return routes.Group{
		Tags: []string{"Properties"},
		Children: []routes.Group{
			{
				Prefix: "/properties",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.Search, Summary: "Search properties", Query: search},
					{Method: "GET", Pattern: "/search", Handler: h.Search, Summary: "Search properties", Query: search},
					{Method: "GET", Pattern: "/{id}", Handler: h.Find, Summary: "Get property detail"},
					{
						Method: "POST", Pattern: "", Handler: h.protect(h.Create),
						Summary: "Create property", Secured: true,
						Body: openapi.RequestBodyJSON("name, description, address, price, year and optional image URLs"),
					},
					{
						Method: "PUT", Pattern: "/{id}", Handler: h.protect(h.Update),
						Summary: "Update property", Secured: true,
						Body: openapi.RequestBodyJSON("name, description, address, price and year"),
					},
					{
						Method: "PATCH", Pattern: "/{id}/price", Handler: h.protect(h.UpdatePrice),
						Summary: "Change property price", Secured: true,
						Body: openapi.RequestBodyJSON("price"),
					},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.protect(h.Delete), Summary: "Delete property", Secured: true},
				},
			},
			{
				Prefix: "/owners/{ownerId}/properties",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ByOwner, Summary: "List an owner's properties"},
				},
			},
		},
	}
}

// Search reads name, address, minPrice, maxPrice, pageNumber and pageSize
// from the query string.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	req := SearchProperties{
		Name:        optionalString(values, "name"),
		Address:     optionalString(values, "address"),
		PageRequest: pagination.PageRequestFromQuery(values, h.pagination),
	}

	var err error
	if req.MinPrice, err = optionalFloat(values, "minPrice"); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidPrice)
		return
	}
	if req.MaxPrice, err = optionalFloat(values, "maxPrice"); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidPrice)
		return
	}

	res := dispatch.Send[pagination.PageResult[Summary]](r.Context(), h.dispatcher, req)
	handlers.RespondPage(w, h.logger, res)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	res := dispatch.Send[Detail](r.Context(), h.dispatcher, GetPropertyByID{ID: id})
	handlers.Respond(w, h.logger, res)
}

func (h *Handler) ByOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "ownerId")
	if !ok {
		return
	}

	res := dispatch.Send[[]Summary](r.Context(), h.dispatcher, GetPropertiesByOwnerID{OwnerID: id})
	handlers.Respond(w, h.logger, res)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProperty
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	res := dispatch.Send[uuid.UUID](r.Context(), h.dispatcher, req)
	handlers.RespondCreated(w, h.logger, res)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateProperty
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	req.PropertyID = id

	res := dispatch.Send[result.Void](r.Context(), h.dispatcher, req)
	handlers.RespondMessage(w, h.logger, res, MsgUpdated)
}

func (h *Handler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePropertyPrice
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	req.PropertyID = id

	res := dispatch.Send[result.Void](r.Context(), h.dispatcher, req)
	handlers.RespondMessage(w, h.logger, res, MsgPriceUpdated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	res := dispatch.Send[result.Void](r.Context(), h.dispatcher, DeleteProperty{PropertyID: id})
	handlers.RespondMessage(w, h.logger, res, MsgDeleted)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func optionalString(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	v := values.Get(key)
	return &v
}

func optionalFloat(values url.Values, key string) (*float64, error) {
	v := values.Get(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
