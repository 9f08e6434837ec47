package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/pkg/result"
	"github.com/JaimeStill/million/pkg/storage"
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

const keyPrefix = "images"

// FileStore persists uploaded image content and resolves the public URL of
// a stored locator.
type FileStore struct {
	blobs  storage.System
	logger *slog.Logger
}

func NewFileStore(blobs storage.System, logger *slog.Logger) *FileStore {
	return &FileStore{
		blobs:  blobs,
		logger: logger.With("component", "files"),
	}
}

// Save writes data under a fresh locator and returns the locator. Only
// image content types are accepted.
func (f *FileStore) Save(ctx context.Context, data []byte, filename, contentType string) result.Result[string] {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	defaultExt, ok := allowedContentTypes[ct]
	if !ok {
		return result.BadRequest[string](
			fmt.Sprintf("File type %s is not allowed. Only images are supported.", contentType),
		)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = defaultExt
	}

	key := path.Join(keyPrefix, uuid.NewString()+ext)
	if err := f.blobs.Upload(ctx, key, bytes.NewReader(data), ct); err != nil {
		return result.Failf[string]("Error saving file: %v", err)
	}

	f.logger.Info("file saved", "key", key, "size", len(data))
	return result.Ok(key)
}

// Delete removes the content at locator. A missing file succeeds.
func (f *FileStore) Delete(ctx context.Context, locator string) result.Result[result.Void] {
	if err := f.blobs.Delete(ctx, locator); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return result.Failf[result.Void]("Error deleting file: %v", err)
	}
	return result.Done()
}

// URL resolves the public address of locator.
func (f *FileStore) URL(locator string) string {
	return f.blobs.URL(locator)
}
