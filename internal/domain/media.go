package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFileRequired  = errors.New("file is required")
	ErrNegativeValue = errors.New("value cannot be negative")
	ErrNegativeTax   = errors.New("tax cannot be negative")
)

// PropertyImage is a file locator attached to a property.
type PropertyImage struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	File       string
	Enabled    bool
}

func NewPropertyImage(propertyID uuid.UUID, file string, enabled bool) (*PropertyImage, error) {
	if strings.TrimSpace(file) == "" {
		return nil, ErrFileRequired
	}
	return &PropertyImage{
		ID:         uuid.New(),
		PropertyID: propertyID,
		File:       file,
		Enabled:    enabled,
	}, nil
}

// Toggle flips the enabled flag.
func (i *PropertyImage) Toggle() {
	i.Enabled = !i.Enabled
}

// PropertyTrace is an append-only sale history record.
type PropertyTrace struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	DateSale   time.Time
	Name       string
	Value      float64
	Tax        float64
}

func NewPropertyTrace(propertyID uuid.UUID, dateSale time.Time, name string, value, tax float64) (*PropertyTrace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if value < 0 {
		return nil, ErrNegativeValue
	}
	if tax < 0 {
		return nil, ErrNegativeTax
	}
	return &PropertyTrace{
		ID:         uuid.New(),
		PropertyID: propertyID,
		DateSale:   dateSale,
		Name:       name,
		Value:      value,
		Tax:        tax,
	}, nil
}
