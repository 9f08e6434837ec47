package auth

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/handlers"
	"github.com/JaimeStill/million/pkg/openapi"
	"github.com/JaimeStill/million/pkg/routes"
)

// Handler provides the sign-in and registration endpoints.
type Handler struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

func NewHandler(d *dispatch.Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{
		dispatcher: d,
		logger:     logger.With("handler", "auth"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/auth",
		Tags:   []string{"Auth"},
		Routes: []routes.Route{
			{
				Method: "POST", Pattern: "/login", Handler: h.Login,
				Summary: "Exchange credentials for a token",
				Body:    openapi.RequestBodyJSON("email and password"),
			},
			{
				Method: "POST", Pattern: "/register", Handler: h.Register,
				Summary: "Create an account",
				Body:    openapi.RequestBodyJSON("email, password, names, role and optional ownerId"),
			},
		},
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req Login
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	res := dispatch.Send[Session](r.Context(), h.dispatcher, req)
	handlers.Respond(w, h.logger, res)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req Register
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	res := dispatch.Send[Session](r.Context(), h.dispatcher, req)
	handlers.RespondCreated(w, h.logger, res)
}
