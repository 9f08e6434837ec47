// Package properties implements the property listing requests: creation,
// edits, deletion, lookup and paged search.
package properties

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/internal/images"
	"github.com/JaimeStill/million/internal/traces"
	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/pagination"
	"github.com/JaimeStill/million/pkg/result"
)

// UnknownOwner stands in for an owner name that could not be resolved.
const UnknownOwner = "Unknown"

// Summary is the listing shape of a property.
type Summary struct {
	ID           uuid.UUID     `json:"id"`
	OwnerID      uuid.UUID     `json:"ownerId"`
	OwnerName    string        `json:"ownerName"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Address      string        `json:"address"`
	Price        float64       `json:"price"`
	CodeInternal string        `json:"codeInternal"`
	Year         int           `json:"year"`
	Created      time.Time     `json:"created"`
	Images       []images.View `json:"images"`
}

// Detail extends Summary with the sale history.
type Detail struct {
	Summary
	Traces []traces.View `json:"traces"`
}

func Summarize(p domain.Property, ownerName string, imgs []domain.PropertyImage) Summary {
	return Summary{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		OwnerName:    ownerName,
		Name:         p.Name,
		Description:  p.Description,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		Created:      p.Created,
		Images:       images.ToViews(imgs),
	}
}

func Describe(p domain.Property, ownerName string, imgs []domain.PropertyImage, ts []domain.PropertyTrace) Detail {
	return Detail{
		Summary: Summarize(p, ownerName, imgs),
		Traces:  traces.ToViews(ts),
	}
}

// CreateProperty lists a new property for the caller's owner. Images are
// file locators attached as enabled images.
type CreateProperty struct {
	dispatch.Returns[uuid.UUID]
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Price       float64  `json:"price"`
	Year        int      `json:"year"`
	Images      []string `json:"images,omitempty"`
}

// UpdateProperty rewrites the editable fields of a property the caller owns.
// The owner and internal code never change.
type UpdateProperty struct {
	dispatch.Returns[result.Void]
	PropertyID  uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Price       float64   `json:"price"`
	Year        int       `json:"year"`
}

// UpdatePropertyPrice changes only the price of a property the caller owns.
type UpdatePropertyPrice struct {
	dispatch.Returns[result.Void]
	PropertyID uuid.UUID `json:"-"`
	NewPrice   float64   `json:"price"`
}

// DeleteProperty removes a property the caller owns along with its images
// and traces.
type DeleteProperty struct {
	dispatch.Returns[result.Void]
	PropertyID uuid.UUID
}

// GetPropertyByID returns one property with its owner name, images and
// sale history.
type GetPropertyByID struct {
	dispatch.Returns[Detail]
	ID uuid.UUID
}

// GetPropertiesByOwnerID lists every property of an existing owner.
type GetPropertiesByOwnerID struct {
	dispatch.Returns[[]Summary]
	OwnerID uuid.UUID
}

// SearchProperties filters properties conjunctively and returns one page.
// Nil filters are ignored.
type SearchProperties struct {
	dispatch.Returns[pagination.PageResult[Summary]]
	Name     *string
	Address  *string
	MinPrice *float64
	MaxPrice *float64
	pagination.PageRequest
}

func (r SearchProperties) Criteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Name:     r.Name,
		Address:  r.Address,
		MinPrice: r.MinPrice,
		MaxPrice: r.MaxPrice,
	}
}

func Requests() []any {
	return []any{
		CreateProperty{},
		UpdateProperty{},
		UpdatePropertyPrice{},
		DeleteProperty{},
		GetPropertyByID{},
		GetPropertiesByOwnerID{},
		SearchProperties{},
	}
}

// Messages returned on success of the void requests.
const (
	MsgUpdated      = "Property updated successfully"
	MsgDeleted      = "Property deleted successfully"
	MsgPriceUpdated = "Property price updated successfully"
)

const (
	msgUpdateDenied = "You can only update your own properties"
	msgDeleteDenied = "You can only delete your own properties"
	msgPriceDenied  = "You can only update the price of your own properties"
)
