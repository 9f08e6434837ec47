package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/pkg/result"
)

// Actor is the authenticated caller. OwnerID is set only for sessions
// linked to an owner record.
type Actor struct {
	UserID  uuid.UUID
	Email   string
	Role    Role
	OwnerID *uuid.UUID
}

func (a Actor) Authenticated() bool { return a.UserID != uuid.Nil }

func (a Actor) IsOwner() bool { return a.Role == RoleOwner }

func (a Actor) IsClient() bool { return a.Role == RoleClient }

// ActorResolver yields the caller of the current request. An anonymous
// caller is the zero Actor.
type ActorResolver interface {
	Actor(ctx context.Context) Actor
}

type actorKey struct{}

// ContextWithActor stores a in ctx.
func ContextWithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFromContext returns the actor stored in ctx, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}

const MsgOwnerClaimMissing = "Owner ID not found in token"

// RequireOwner returns the actor's owner id, or an Unauthorized failure
// when the session carries no owner claim.
func RequireOwner[T any](actor Actor) (uuid.UUID, *result.Result[T]) {
	if actor.OwnerID == nil {
		fail := result.Unauthorized[T](MsgOwnerClaimMissing)
		return uuid.Nil, &fail
	}
	return *actor.OwnerID, nil
}

// PropertyNotFound is the failure for a missing property.
func PropertyNotFound[T any](id uuid.UUID) result.Result[T] {
	return result.NotFound[T](fmt.Sprintf("Property with ID %s not found", id))
}

// AuthorizeProperty applies the ownership protocol to the property id in a
// fixed order: the owner claim must be present, the property must exist,
// and the property must belong to the claimed owner. On success it returns
// the property. A non-nil failure means the caller must stop and return it.
// The error reports repository failures.
func AuthorizeProperty[T any](
	ctx context.Context,
	actor Actor,
	properties PropertyRepository,
	id uuid.UUID,
	denied string,
) (*Property, *result.Result[T], error) {
	ownerID, fail := RequireOwner[T](actor)
	if fail != nil {
		return nil, fail, nil
	}

	p, err := properties.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		missing := PropertyNotFound[T](id)
		return nil, &missing, nil
	}

	if p.OwnerID != ownerID {
		forbidden := result.Forbidden[T](denied)
		return nil, &forbidden, nil
	}

	return p, nil, nil
}
