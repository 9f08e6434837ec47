package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/result"
	"github.com/JaimeStill/million/pkg/token"
	"github.com/JaimeStill/million/pkg/validation"
)

// PasswordHasher hashes and verifies stored passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// System handles sign-in and registration.
type System struct {
	users  domain.UserRepository
	owners domain.OwnerRepository
	hasher PasswordHasher
	tokens *token.Service
	logger *slog.Logger
	// verified in place of a stored hash when no account matches
	decoy  func() string
}

func New(
	users domain.UserRepository,
	owners domain.OwnerRepository,
	hasher PasswordHasher,
	tokens *token.Service,
	logger *slog.Logger,
) *System {
	return &System{
		users:  users,
		owners: owners,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("system", "auth"),
		decoy:  sync.OnceValue(func() string {
			h, _ := hasher.Hash(uuid.NewString())
			return h
		}),
	}
}

func (s *System) Register(d *dispatch.Dispatcher) {
	dispatch.Register(d, s.Login,
		validation.Behavior[Login, Session](validation.Func[Login](validateLogin)),
	)
	dispatch.Register(d, s.SignUp,
		validation.Behavior[Register, Session](validation.Func[Register](validateRegister)),
	)
}

// Login verifies credentials. Unknown, inactive and mismatched accounts
// all fail the same way.
func (s *System) Login(ctx context.Context, req Login) result.Result[Session] {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return result.Failf[Session]("Error signing in: %v", err)
	}

	hash := s.decoy()
	if u != nil {
		hash = u.PasswordHash
	}
	verified := s.hasher.Verify(req.Password, hash)

	if u == nil || !u.IsActive || !verified {
		s.logger.Debug("sign-in rejected", "email", domain.NormalizeEmail(req.Email))
		return result.Unauthorized[Session](MsgInvalidCredentials)
	}

	return s.issue(u)
}

func (s *System) SignUp(ctx context.Context, req Register) result.Result[Session] {
	const prefix = "Error registering user: %v"

	taken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return result.Failf[Session](prefix, err)
	}
	if taken {
		return result.BadRequest[Session](fmt.Sprintf("Email %s is already registered", domain.NormalizeEmail(req.Email)))
	}

	role := domain.Role(req.Role)
	ownerID := req.OwnerID
	if role != domain.RoleOwner {
		ownerID = nil
	}
	if ownerID != nil {
		exists, err := s.owners.Exists(ctx, *ownerID)
		if err != nil {
			return result.Failf[Session](prefix, err)
		}
		if !exists {
			return result.BadRequest[Session](fmt.Sprintf("Owner with ID %s does not exist", *ownerID))
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return result.Failf[Session](prefix, err)
	}

	u, err := domain.NewUser(req.Email, hash, role, req.FirstName, req.LastName, ownerID)
	if err != nil {
		return result.Failf[Session](prefix, err)
	}
	if err := s.users.Add(ctx, u); err != nil {
		return result.Failf[Session](prefix, err)
	}

	s.logger.Info("user registered", "id", u.ID, "role", u.Role)
	return s.issue(u)
}

func (s *System) issue(u *domain.User) result.Result[Session] {
	signed, expires, err := s.tokens.Issue(token.Identity{
		UserID:  u.ID,
		Email:   u.Email,
		Role:    string(u.Role),
		OwnerID: u.OwnerID,
	})
	if err != nil {
		return result.Failf[Session]("Error issuing token: %v", err)
	}
	return result.Ok(newSession(u, signed, expires))
}
