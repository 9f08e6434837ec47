package properties

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/pagination"
	"github.com/JaimeStill/million/pkg/query"
	"github.com/JaimeStill/million/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "properties", "p").
	Project("id", "ID").
	Project("owner_id", "OwnerID").
	Project("name", "Name").
	Project("description", "Description").
	Project("address", "Address").
	Project("price", "Price").
	Project("year", "Year").
	Project("code_internal", "CodeInternal").
	Project("created_at", "CreatedAt")

// stable search order: creation time, then id
var defaultSort = []query.SortField{{Field: "CreatedAt"}, {Field: "ID"}}

func scanProperty(s repository.Scanner) (domain.Property, error) {
	var p domain.Property
	err := s.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Address,
		&p.Price, &p.Year, &p.CodeInternal, &p.Created,
	)
	return p, err
}

// Repository is the PostgreSQL implementation of domain.PropertyRepository.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	p, err := repository.QueryOptional(ctx, r.db, q, args, scanProperty)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]domain.Property, error) {
	return r.Search(ctx, domain.SearchCriteria{})
}

func (r *Repository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]domain.Property, error) {
	q, args := query.NewBuilder(projection, defaultSort...).
		WhereEquals("OwnerID", ownerID).
		Build()
	props, err := repository.QueryMany(ctx, r.db, q, args, scanProperty)
	if err != nil {
		return nil, fmt.Errorf("list owner properties: %w", err)
	}
	return props, nil
}

func (r *Repository) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Property, error) {
	q, args := filtered(criteria).Build()
	props, err := repository.QueryMany(ctx, r.db, q, args, scanProperty)
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	return props, nil
}

func (r *Repository) SearchPaged(
	ctx context.Context,
	criteria domain.SearchCriteria,
	page pagination.PageRequest,
) ([]domain.Property, int, error) {
	b := filtered(criteria)

	countSQL, countArgs := b.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	if total == 0 {
		return []domain.Property{}, 0, nil
	}

	pageSQL, pageArgs := b.BuildPage(page.Page, page.PageSize)
	props, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProperty)
	if err != nil {
		return nil, 0, fmt.Errorf("search properties: %w", err)
	}
	return props, total, nil
}

func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	q, args := query.NewBuilder(projection).WhereEquals("ID", id).BuildExists()
	return repository.QueryBool(ctx, r.db, q, args...)
}

func (r *Repository) CodeInternalExists(ctx context.Context, code string) (bool, error) {
	q, args := query.NewBuilder(projection).WhereEquals("CodeInternal", code).BuildExists()
	return repository.QueryBool(ctx, r.db, q, args...)
}

func (r *Repository) Add(ctx context.Context, p *domain.Property, images ...domain.PropertyImage) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO properties(id, owner_id, name, description, address, price, year, code_internal, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.ID, p.OwnerID, p.Name, p.Description, p.Address, p.Price, p.Year, p.CodeInternal, p.Created,
		)
		if err != nil {
			return struct{}{}, err
		}

		for _, img := range images {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO property_images(id, property_id, file, enabled) VALUES ($1, $2, $3, $4)`,
				img.ID, img.PropertyID, img.File, img.Enabled,
			)
			if err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapWriteError(err, domain.ErrDuplicate, domain.ErrMissingReference)
	}
	return nil
}

// Update rewrites the mutable columns. owner_id and code_internal are
// never written after insert.
func (r *Repository) Update(ctx context.Context, p *domain.Property) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE properties SET name = $2, description = $3, address = $4, price = $5, year = $6 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Address, p.Price, p.Year,
	)
	return err
}

// Delete removes the property. Images and traces cascade in the schema.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return repository.ExecAffected(ctx, r.db, `DELETE FROM properties WHERE id = $1`, id)
}

func filtered(c domain.SearchCriteria) *query.Builder {
	return query.NewBuilder(projection, defaultSort...).
		WhereContains("Name", c.Name).
		WhereContains("Address", c.Address).
		WhereAtLeast("Price", c.MinPrice).
		WhereAtMost("Price", c.MaxPrice)
}
