package api

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/JaimeStill/million/pkg/handlers"
	"github.com/JaimeStill/million/pkg/middleware"
	"github.com/JaimeStill/million/pkg/module"
	"github.com/JaimeStill/million/pkg/routes"
	"github.com/JaimeStill/million/pkg/storage"
)

type uploadsHandler struct {
	store  storage.System
	logger *slog.Logger
}

// NewUploadsModule serves stored image files at the public URLs the
// storage system hands out, e.g. /uploads/images/<id>.png.
func NewUploadsModule(store storage.System, logger *slog.Logger) *module.Module {
	h := &uploadsHandler{
		store:  store,
		logger: logger.With("handler", "uploads"),
	}

	m := module.New(strings.TrimSuffix(storage.UploadsPath, "/"))
	m.Use(middleware.Logger(logger))
	m.Mount(routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.download},
		},
	})
	return m
}

func (h *uploadsHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}
