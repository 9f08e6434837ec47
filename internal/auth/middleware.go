package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/handlers"
	"github.com/JaimeStill/million/pkg/token"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidToken    = errors.New("invalid or expired token")
)

// Authenticate resolves the bearer token, when one is sent, into the
// request's Actor. Requests without a token pass through anonymously; a
// token that fails verification is rejected with 401.
func Authenticate(tokens *token.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				logger.Debug("token rejected", "error", err)
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			id := claims.Identity()
			ctx := domain.ContextWithActor(r.Context(), domain.Actor{
				UserID:  id.UserID,
				Email:   id.Email,
				Role:    domain.Role(id.Role),
				OwnerID: id.OwnerID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth wraps a route so that anonymous callers receive 401.
func RequireAuth(logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if a, ok := domain.ActorFromContext(r.Context()); !ok || !a.Authenticated() {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
				return
			}
			next(w, r)
		}
	}
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, raw, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// ContextResolver reads the Actor placed on the context by Authenticate.
type ContextResolver struct{}

func (ContextResolver) Actor(ctx context.Context) domain.Actor {
	a, _ := domain.ActorFromContext(ctx)
	return a
}
