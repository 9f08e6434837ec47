package traces

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
	NewProjectionMap("public", "property_traces", "pt").
	Project("id", "ID").
	Project("property_id", "PropertyID").
	Project("date_sale", "DateSale").
	Project("name", "Name").
	Project("value", "Value").
	Project("tax", "Tax")

// newest sale first
var defaultSort = []query.SortField{{Field: "DateSale", Descending: true}, {Field: "ID"}}

func scanTrace(s repository.Scanner) (domain.PropertyTrace, error) {
	var t domain.PropertyTrace
	err := s.Scan(&t.ID, &t.PropertyID, &t.DateSale, &t.Name, &t.Value, &t.Tax)
	return t, err
}

// Repository is the PostgreSQL implementation of domain.PropertyTraceRepository.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PropertyTrace, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	t, err := repository.QueryOptional(ctx, r.db, q, args, scanTrace)
	if err != nil {
		return nil, fmt.Errorf("get trace: %w", err)
	}
	return t, nil
}

func (r *Repository) GetByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]domain.PropertyTrace, error) {
	q, args := query.NewBuilder(projection, defaultSort...).
		WhereEquals("PropertyID", propertyID).
		Build()
	ts, err := repository.QueryMany(ctx, r.db, q, args, scanTrace)
	if err != nil {
		return nil, fmt.Errorf("list traces: %w", err)
	}
	return ts, nil
}

func (r *Repository) GetLatestByPropertyID(ctx context.Context, propertyID uuid.UUID) (*domain.PropertyTrace, error) {
	q, args := query.NewBuilder(projection, defaultSort...).
		WhereEquals("PropertyID", propertyID).
		BuildSingleOrNull()
	t, err := repository.QueryOptional(ctx, r.db, q, args, scanTrace)
	if err != nil {
		return nil, fmt.Errorf("get latest trace: %w", err)
	}
	return t, nil
}

func (r *Repository) Add(ctx context.Context, t *domain.PropertyTrace) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO property_traces(id, property_id, date_sale, name, value, tax) VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.PropertyID, t.DateSale, t.Name, t.Value, t.Tax,
	)
	if err != nil {
		return repository.MapWriteError(err, domain.ErrDuplicate, domain.ErrMissingReference)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return repository.ExecAffected(ctx, r.db, `DELETE FROM property_traces WHERE id = $1`, id)
}
