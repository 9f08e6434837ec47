package owners

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/query"
	"github.com/JaimeStill/million/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "owners", "o").
	Project("id", "ID").
	Project("name", "Name").
	Project("address", "Address").
	Project("photo", "Photo").
	Project("birthday", "Birthday")

var defaultSort = query.SortField{Field: "Name"}

func scanOwner(s repository.Scanner) (domain.Owner, error) {
	var o domain.Owner
	err := s.Scan(&o.ID, &o.Name, &o.Address, &o.Photo, &o.Birthday)
	return o, err
}

// Repository is the PostgreSQL implementation of domain.OwnerRepository.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	o, err := repository.QueryOptional(ctx, r.db, q, args, scanOwner)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	return o, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]domain.Owner, error) {
	q, args := query.NewBuilder(projection, defaultSort, query.SortField{Field: "ID"}).Build()
	all, err := repository.QueryMany(ctx, r.db, q, args, scanOwner)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	return all, nil
}

func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	q, args := query.NewBuilder(projection).WhereEquals("ID", id).BuildExists()
	return repository.QueryBool(ctx, r.db, q, args...)
}

func (r *Repository) Add(ctx context.Context, o *domain.Owner) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO owners(id, name, address, photo, birthday) VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Name, o.Address, o.Photo, o.Birthday,
	)
	if err != nil {
		return repository.MapWriteError(err, domain.ErrDuplicate, domain.ErrMissingReference)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, o *domain.Owner) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE owners SET name = $2, address = $3, photo = $4, birthday = $5 WHERE id = $1`,
		o.ID, o.Name, o.Address, o.Photo, o.Birthday,
	)
	return err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return repository.ExecAffected(ctx, r.db, `DELETE FROM owners WHERE id = $1`, id)
}
