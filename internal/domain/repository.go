package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/pkg/pagination"
)

// Storage errors surfaced by repository writes.
var (
	ErrDuplicate        = errors.New("record already exists")
	ErrMissingReference = errors.New("referenced record does not exist")
)

// Repository contracts. A missing record is reported as a nil value with a
// nil error; errors are reserved for storage failures. Delete reports
// whether a row was removed.

type PropertyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)
	GetAll(ctx context.Context) ([]Property, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Property, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]Property, error)

	// SearchPaged returns one window of the filtered set, ordered by creation
	// time then id, together with the size of the whole filtered set.
	SearchPaged(ctx context.Context, criteria SearchCriteria, page pagination.PageRequest) ([]Property, int, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CodeInternalExists(ctx context.Context, code string) (bool, error)

	// Add inserts the property together with its images. Either every row
	// is written or none is.
	Add(ctx context.Context, p *Property, images ...PropertyImage) error
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type OwnerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Owner, error)
	GetAll(ctx context.Context) ([]Owner, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Add(ctx context.Context, o *Owner) error
	Update(ctx context.Context, o *Owner) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type PropertyImageRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PropertyImage, error)
	GetByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]PropertyImage, error)
	GetFirstEnabledByPropertyID(ctx context.Context, propertyID uuid.UUID) (*PropertyImage, error)
	Add(ctx context.Context, img *PropertyImage) error
	Update(ctx context.Context, img *PropertyImage) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type PropertyTraceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PropertyTrace, error)
	GetByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]PropertyTrace, error)
	GetLatestByPropertyID(ctx context.Context, propertyID uuid.UUID) (*PropertyTrace, error)
	Add(ctx context.Context, t *PropertyTrace) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Add(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}

// Repositories groups one implementation of every contract.
type Repositories struct {
	Properties PropertyRepository
	Owners     OwnerRepository
	Images     PropertyImageRepository
	Traces     PropertyTraceRepository
	Users      UserRepository
}
