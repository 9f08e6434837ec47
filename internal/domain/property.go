// Package domain defines the listing entities, the persistence contracts the
// request handlers consume, and the ownership protocol shared by every
// mutating property operation.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entity invariant violations.
var (
	ErrNameRequired    = errors.New("name is required")
	ErrAddressRequired = errors.New("address is required")
	ErrCodeRequired    = errors.New("internal code is required")
	ErrNegativePrice   = errors.New("price cannot be negative")
)

// Property is a listed real-estate asset. OwnerID is fixed at creation.
type Property struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Name         string
	Description  string
	Address      string
	Price        float64
	Year         int
	CodeInternal string
	Created      time.Time
}

// NewProperty builds a property with a fresh identity and internal code.
func NewProperty(ownerID uuid.UUID, name, description, address string, price float64, year int) (*Property, error) {
	now := time.Now().UTC()
	p := &Property{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Name:         name,
		Description:  description,
		Address:      address,
		Price:        price,
		Year:         year,
		CodeInternal: PropertyCode(now),
		Created:      now,
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	return p, nil
}

// PropertyCode generates an internal code of the form PROP-YYYYMMDD-XXXXXXXX.
func PropertyCode(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("PROP-%s-%s", at.UTC().Format("20060102"), suffix)
}

// ChangePrice sets a new non-negative price.
func (p *Property) ChangePrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

// UpdateDetails replaces the descriptive fields. The owner is never touched.
func (p *Property) UpdateDetails(name, description, address string, price float64, year int) error {
	next := *p
	next.Name = name
	next.Description = description
	next.Address = address
	next.Price = price
	next.Year = year

	if err := next.check(); err != nil {
		return err
	}

	*p = next
	return nil
}

func (p *Property) check() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(p.Address) == "" {
		return ErrAddressRequired
	}
	if strings.TrimSpace(p.CodeInternal) == "" {
		return ErrCodeRequired
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// SearchCriteria narrows a property search. Nil fields are ignored; all
// present fields must match.
type SearchCriteria struct {
	Name     *string
	Address  *string
	MinPrice *float64
	MaxPrice *float64
}
