// Package auth signs users in, registers accounts, and resolves the caller
// of each HTTP request from its bearer token.
package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/dispatch"
)

// MsgInvalidCredentials is returned for every failed sign-in so callers
// cannot tell which part was wrong.
const MsgInvalidCredentials = "Invalid email or password"

// Session is the result of a successful sign-in.
type Session struct {
	UserID    uuid.UUID  `json:"userId"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      string     `json:"role"`
	OwnerID   *uuid.UUID `json:"ownerId"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

func newSession(u *domain.User, token string, expires time.Time) Session {
	return Session{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		OwnerID:   u.OwnerID,
		Token:     token,
		ExpiresAt: expires,
	}
}

type Login struct {
	dispatch.Returns[Session]
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and signs it in. Owner accounts link to an
// existing owner record.
type Register struct {
	dispatch.Returns[Session]
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      string     `json:"role"`
	OwnerID   *uuid.UUID `json:"ownerId,omitempty"`
}

func Requests() []any {
	return []any{Login{}, Register{}}
}
