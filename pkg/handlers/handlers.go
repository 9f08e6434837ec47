// Package handlers renders request outcomes as the JSON response envelope
// {success, data|error|message, statusCode}.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/million/pkg/pagination"
	"github.com/JaimeStill/million/pkg/result"
)

// ErrEmptyBody indicates a request that required a JSON body sent none.
var ErrEmptyBody = errors.New("request body is required")

type dataEnvelope struct {
	Success    bool `json:"success"`
	Data       any  `json:"data"`
	StatusCode int  `json:"statusCode"`
}

type messageEnvelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

type errorEnvelope struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

type pageEnvelope struct {
	Success         bool `json:"success"`
	Data            any  `json:"data"`
	TotalCount      int  `json:"totalCount"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	StatusCode      int  `json:"statusCode"`
}

// RespondJSON writes v as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Respond renders r with status 200 on success.
func Respond[T any](w http.ResponseWriter, logger *slog.Logger, r result.Result[T]) {
	respondWith(w, logger, http.StatusOK, r)
}

// RespondCreated renders r with status 201 on success.
func RespondCreated[T any](w http.ResponseWriter, logger *slog.Logger, r result.Result[T]) {
	respondWith(w, logger, http.StatusCreated, r)
}

// RespondMessage renders a successful outcome as a confirmation message in
// place of data.
func RespondMessage(w http.ResponseWriter, logger *slog.Logger, o result.Outcome, message string) {
	if !o.Succeeded() {
		RespondFailure(w, logger, o)
		return
	}
	RespondJSON(w, http.StatusOK, messageEnvelope{
		Success:    true,
		Message:    message,
		StatusCode: http.StatusOK,
	})
}

// RespondPage renders a paged result with its navigation metadata lifted
// into the envelope.
func RespondPage[T any](w http.ResponseWriter, logger *slog.Logger, r result.Result[pagination.PageResult[T]]) {
	page, ok := r.Unwrap()
	if !ok {
		RespondFailure(w, logger, r)
		return
	}
	RespondJSON(w, http.StatusOK, pageEnvelope{
		Success:         true,
		Data:            page.Items,
		TotalCount:      page.TotalCount,
		PageNumber:      page.PageNumber,
		PageSize:        page.PageSize,
		HasNextPage:     page.HasNextPage,
		HasPreviousPage: page.HasPreviousPage,
		StatusCode:      http.StatusOK,
	})
}

// RespondFailure renders a failed outcome using its derived status and
// message.
func RespondFailure(w http.ResponseWriter, logger *slog.Logger, o result.Outcome) {
	status := result.StatusCode(o)
	message := result.Message(o)

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", message)
	} else {
		logger.Debug("request rejected", "status", status, "error", message)
	}

	RespondJSON(w, status, errorEnvelope{
		Success:    false,
		Error:      message,
		StatusCode: status,
	})
}

// RespondError renders a transport-level error, such as a malformed body,
// that never reached a request handler.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "status", status, "error", err)
	}
	RespondJSON(w, status, errorEnvelope{
		Success:    false,
		Error:      err.Error(),
		StatusCode: status,
	})
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func respondWith[T any](w http.ResponseWriter, logger *slog.Logger, status int, r result.Result[T]) {
	value, ok := r.Unwrap()
	if !ok {
		RespondFailure(w, logger, r)
		return
	}
	RespondJSON(w, status, dataEnvelope{
		Success:    true,
		Data:       value,
		StatusCode: status,
	})
}
