package auth

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
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("email", "Email").
	Project("password_hash", "PasswordHash").
	Project("role", "Role").
	Project("first_name", "FirstName").
	Project("last_name", "LastName").
	Project("owner_id", "OwnerID").
	Project("created_at", "CreatedAt").
	Project("is_active", "IsActive")

func scanUser(s repository.Scanner) (domain.User, error) {
	var u domain.User
	var role string
	var ownerID uuid.NullUUID
	err := s.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &role, &u.FirstName,
		&u.LastName, &ownerID, &u.CreatedAt, &u.IsActive,
	)
	u.Role = domain.Role(role)
	if ownerID.Valid {
		u.OwnerID = &ownerID.UUID
	}
	return u, err
}

// Repository is the PostgreSQL implementation of domain.UserRepository.
// Emails are stored normalized, so lookups compare normalized input.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	u, err := repository.QueryOptional(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q, args := query.NewBuilder(projection).
		WhereEquals("Email", domain.NormalizeEmail(email)).
		BuildSingleOrNull()
	u, err := repository.QueryOptional(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q, args := query.NewBuilder(projection).
		WhereEquals("Email", domain.NormalizeEmail(email)).
		BuildExists()
	return repository.QueryBool(ctx, r.db, q, args...)
}

func (r *Repository) Add(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users(id, email, password_hash, role, first_name, last_name, owner_id, created_at, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.PasswordHash, string(u.Role), u.FirstName, u.LastName, nullableID(u.OwnerID), u.CreatedAt, u.IsActive,
	)
	if err != nil {
		return repository.MapWriteError(err, domain.ErrDuplicate, domain.ErrMissingReference)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, first_name = $3, last_name = $4, is_active = $5 WHERE id = $1`,
		u.ID, u.PasswordHash, u.FirstName, u.LastName, u.IsActive,
	)
	return err
}

func nullableID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
