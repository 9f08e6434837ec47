// Package images implements property image attachment, upload, and
// listing, along with the file store the uploads are written to.
package images

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/result"
)

// View is the externally visible shape of a property image.
type View struct {
	ID      uuid.UUID `json:"id"`
	File    string    `json:"file"`
	Enabled bool      `json:"enabled"`
}

func ToView(img domain.PropertyImage) View {
	return View{ID: img.ID, File: img.File, Enabled: img.Enabled}
}

// ToViews maps a slice of images, preserving order.
func ToViews(imgs []domain.PropertyImage) []View {
	views := make([]View, len(imgs))
	for i, img := range imgs {
		views[i] = ToView(img)
	}
	return views
}

// AddPropertyImage attaches an existing file locator to a property.
type AddPropertyImage struct {
	dispatch.Returns[uuid.UUID]
	PropertyID uuid.UUID `json:"propertyId"`
	File       string    `json:"file"`
	Enabled    *bool     `json:"enabled,omitempty"`
}

// UploadPropertyImage stores file content and attaches it to a property.
type UploadPropertyImage struct {
	dispatch.Returns[View]
	PropertyID  uuid.UUID
	Filename    string
	ContentType string
	Data        []byte
	Enabled     *bool
}

// TogglePropertyImage flips the enabled flag of an image.
type TogglePropertyImage struct {
	dispatch.Returns[View]
	ImageID uuid.UUID
}

// GetPropertyImages lists the images of a property.
type GetPropertyImages struct {
	dispatch.Returns[[]View]
	PropertyID uuid.UUID
}

func Requests() []any {
	return []any{AddPropertyImage{}, UploadPropertyImage{}, TogglePropertyImage{}, GetPropertyImages{}}
}

const (
	msgAddDenied    = "You can only add images to your own properties"
	msgModifyDenied = "You can only modify images of your own properties"
)

// imageNotFound is the failure for a missing image.
func imageNotFound[T any](id uuid.UUID) result.Result[T] {
	return result.NotFound[T]("Image with ID " + id.String() + " not found")
}
