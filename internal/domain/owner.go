package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Owner is the person a property belongs to.
type Owner struct {
	ID       uuid.UUID
	Name     string
	Address  string
	Photo    string
	Birthday time.Time
}

// NewOwner builds an owner with a fresh identity. An empty photo is stored
// as the empty string.
func NewOwner(name, address, photo string, birthday time.Time) (*Owner, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(address) == "" {
		return nil, ErrAddressRequired
	}
	return &Owner{
		ID:       uuid.New(),
		Name:     name,
		Address:  address,
		Photo:    photo,
		Birthday: birthday,
	}, nil
}

func (o *Owner) ChangeAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrAddressRequired
	}
	o.Address = address
	return nil
}
