package storage

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrNotFound        = errors.New("file not found")
	ErrEmptyKey        = errors.New("file key must not be empty")
	ErrInvalidKey      = errors.New("file key must be relative and stay inside the store")
	ErrUnknownProvider = errors.New("unknown storage provider")
)

// MapHTTPStatus reports the status a handler should answer with for err.
// Anything unrecognized is a server fault.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// keys are slash separated, relative, and never climb out of the root
func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return ErrInvalidKey
	}
	for segment := range strings.SplitSeq(key, "/") {
		if segment == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}
