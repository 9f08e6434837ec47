// Package traces records and lists the sale history of a property.
package traces

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/dispatch"
)

type View struct {
	ID       uuid.UUID `json:"id"`
	DateSale time.Time `json:"dateSale"`
	Name     string    `json:"name"`
	Value    float64   `json:"value"`
	Tax      float64   `json:"tax"`
}

func ToView(t domain.PropertyTrace) View {
	return View{ID: t.ID, DateSale: t.DateSale, Name: t.Name, Value: t.Value, Tax: t.Tax}
}

func ToViews(ts []domain.PropertyTrace) []View {
	views := make([]View, len(ts))
	for i, t := range ts {
		views[i] = ToView(t)
	}
	return views
}

// AddPropertyTrace appends a sale record to a property's history.
type AddPropertyTrace struct {
	dispatch.Returns[uuid.UUID]
	PropertyID uuid.UUID `json:"propertyId"`
	DateSale   time.Time `json:"dateSale"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Tax        float64   `json:"tax"`
}

// GetPropertyTraces lists a property's history, newest sale first.
type GetPropertyTraces struct {
	dispatch.Returns[[]View]
	PropertyID uuid.UUID
}

func Requests() []any {
	return []any{AddPropertyTrace{}, GetPropertyTraces{}}
}

const msgAddDenied = "You can only add traces to your own properties"
