package images

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
	NewProjectionMap("public", "property_images", "pi").
	Project("id", "ID").
	Project("property_id", "PropertyID").
	Project("file", "File").
	Project("enabled", "Enabled").
	Project("created_at", "CreatedAt")

var defaultSort = []query.SortField{{Field: "CreatedAt"}, {Field: "ID"}}

func scanImage(s repository.Scanner) (domain.PropertyImage, error) {
	var img domain.PropertyImage
	var created sql.NullTime
	err := s.Scan(&img.ID, &img.PropertyID, &img.File, &img.Enabled, &created)
	return img, err
}

// Repository is the PostgreSQL implementation of domain.PropertyImageRepository.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PropertyImage, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	img, err := repository.QueryOptional(ctx, r.db, q, args, scanImage)
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	return img, nil
}

func (r *Repository) GetByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]domain.PropertyImage, error) {
	q, args := query.NewBuilder(projection, defaultSort...).
		WhereEquals("PropertyID", propertyID).
		Build()
	imgs, err := repository.QueryMany(ctx, r.db, q, args, scanImage)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return imgs, nil
}

func (r *Repository) GetFirstEnabledByPropertyID(ctx context.Context, propertyID uuid.UUID) (*domain.PropertyImage, error) {
	q, args := query.NewBuilder(projection, defaultSort...).
		WhereEquals("PropertyID", propertyID).
		WhereEquals("Enabled", true).
		BuildSingleOrNull()
	img, err := repository.QueryOptional(ctx, r.db, q, args, scanImage)
	if err != nil {
		return nil, fmt.Errorf("get first image: %w", err)
	}
	return img, nil
}

func (r *Repository) Add(ctx context.Context, img *domain.PropertyImage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO property_images(id, property_id, file, enabled) VALUES ($1, $2, $3, $4)`,
		img.ID, img.PropertyID, img.File, img.Enabled,
	)
	if err != nil {
		return repository.MapWriteError(err, domain.ErrDuplicate, domain.ErrMissingReference)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, img *domain.PropertyImage) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE property_images SET file = $2, enabled = $3 WHERE id = $1`,
		img.ID, img.File, img.Enabled,
	)
	return err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return repository.ExecAffected(ctx, r.db, `DELETE FROM property_images WHERE id = $1`, id)
}
