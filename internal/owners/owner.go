// Package owners implements owner registration and lookup.
package owners

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/dispatch"
)

// View is the externally visible shape of an owner.
type View struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Photo    string    `json:"photo"`
	Birthday time.Time `json:"birthday"`
}

// ToView maps an owner entity to its view.
func ToView(o domain.Owner) View {
	return View{
		ID:       o.ID,
		Name:     o.Name,
		Address:  o.Address,
		Photo:    o.Photo,
		Birthday: o.Birthday,
	}
}

// CreateOwner registers a new owner.
type CreateOwner struct {
	dispatch.Returns[View]
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Photo    *string   `json:"photo,omitempty"`
	Birthday time.Time `json:"birthday"`
}

// GetOwnerByID looks up a single owner.
type GetOwnerByID struct {
	dispatch.Returns[View]
	ID uuid.UUID
}

// GetAllOwners lists every owner.
type GetAllOwners struct {
	dispatch.Returns[[]View]
}

// Requests lists one value of every request type the package handles.
func Requests() []any {
	return []any{CreateOwner{}, GetOwnerByID{}, GetAllOwners{}}
}
