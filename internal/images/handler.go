package images

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/formatting"
	"github.com/JaimeStill/million/pkg/handlers"
	"github.com/JaimeStill/million/pkg/openapi"
	"github.com/JaimeStill/million/pkg/routes"
)

var (
	ErrInvalidID    = errors.New("invalid id")
	ErrInvalidFile  = errors.New("no file was uploaded")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")

	ErrInvalidEnabled = errors.New("enabled must be true or false")
)

// Handler provides HTTP endpoints for property images.
type Handler struct {
	dispatcher    *dispatch.Dispatcher
	logger        *slog.Logger
	protect       func(http.HandlerFunc) http.HandlerFunc
	maxUploadSize int64
}

func NewHandler(
	d *dispatch.Dispatcher,
	logger *slog.Logger,
	protect func(http.HandlerFunc) http.HandlerFunc,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		dispatcher:    d,
		logger:        logger.With("handler", "images"),
		protect:       protect,
		maxUploadSize: maxUploadSize,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags: []string{"Images"},
		Children: []routes.Group{
			{
				Prefix: "/properties/{propertyId}/images",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.List, Summary: "List property images"},
					{
						Method: "POST", Pattern: "", Handler: h.protect(h.Add),
						Summary: "Attach an image by URL", Secured: true,
						Body: openapi.RequestBodyJSON("file and optional enabled flag"),
					},
					{
						Method: "POST", Pattern: "/upload", Handler: h.protect(h.Upload),
						Summary: "Upload an image file", Secured: true,
						Body: openapi.RequestBodyMultipart("file", "image file with optional enabled form value"),
					},
				},
			},
			{
				Prefix: "/images",
				Routes: []routes.Route{
					{Method: "PATCH", Pattern: "/{id}/toggle", Handler: h.protect(h.Toggle), Summary: "Flip image visibility", Secured: true},
				},
			},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "propertyId")
	if !ok {
		return
	}

	res := dispatch.Send[[]View](r.Context(), h.dispatcher, GetPropertyImages{PropertyID: id})
	handlers.Respond(w, h.logger, res)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "propertyId")
	if !ok {
		return
	}

	var req AddPropertyImage
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	req.PropertyID = id

	res := dispatch.Send[uuid.UUID](r.Context(), h.dispatcher, req)
	handlers.RespondCreated(w, h.logger, res)
}

// Upload accepts a multipart form with the image under the "file" field.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "propertyId")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w of %s", ErrFileTooLarge, formatting.FormatBytes(tooLarge.Limit, 0))
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	req := UploadPropertyImage{
		PropertyID:  id,
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}
	if v := r.FormValue("enabled"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidEnabled)
			return
		}
		req.Enabled = &enabled
	}

	res := dispatch.Send[View](r.Context(), h.dispatcher, req)
	handlers.RespondCreated(w, h.logger, res)
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	res := dispatch.Send[View](r.Context(), h.dispatcher, TogglePropertyImage{ImageID: id})
	handlers.Respond(w, h.logger, res)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
