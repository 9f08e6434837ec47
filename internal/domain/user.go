package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role of a user.
type Role string

const (
	RoleOwner  Role = "Owner"
	RoleClient Role = "Client"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleClient
}

var (
	ErrEmailRequired     = errors.New("email is required")
	ErrPasswordRequired  = errors.New("password hash is required")
	ErrRoleInvalid       = errors.New("role must be Owner or Client")
	ErrFirstNameRequired = errors.New("first name is required")
	ErrLastNameRequired  = errors.New("last name is required")
	ErrOwnerLinkRequired = errors.New("owner users require an owner id")
)

// User is an account that can authenticate. Email is stored lower-case.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	OwnerID      *uuid.UUID
	CreatedAt    time.Time
	IsActive     bool
}

// NewUser builds an active user. Owner users must link to an owner record.
func NewUser(email, passwordHash string, role Role, firstName, lastName string, ownerID *uuid.UUID) (*User, error) {
	switch {
	case strings.TrimSpace(email) == "":
		return nil, ErrEmailRequired
	case strings.TrimSpace(passwordHash) == "":
		return nil, ErrPasswordRequired
	case !role.Valid():
		return nil, ErrRoleInvalid
	case strings.TrimSpace(firstName) == "":
		return nil, ErrFirstNameRequired
	case strings.TrimSpace(lastName) == "":
		return nil, ErrLastNameRequired
	case role == RoleOwner && ownerID == nil:
		return nil, ErrOwnerLinkRequired
	}

	return &User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		FirstName:    firstName,
		LastName:     lastName,
		OwnerID:      ownerID,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}, nil
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) Deactivate() { u.IsActive = false }

func (u *User) Activate() { u.IsActive = true }

func (u *User) UpdatePassword(hash string) error {
	if strings.TrimSpace(hash) == "" {
		return ErrPasswordRequired
	}
	u.PasswordHash = hash
	return nil
}
