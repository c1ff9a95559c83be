package auth

import (
	"context"
	"errors"
)

// RoleGuard is the only privileged role in the system. There is a single
// shared guard identity; student-facing routes carry no role at all.
const RoleGuard = "guard"

// Actor identifies the authenticated caller of a mutating operation.
// Handlers extract it from the request context and pass it down explicitly
// instead of reading ambient session state.
type Actor struct {
	Username string
	Role     string
}

// IsGuard reports whether the actor holds the guard role.
func (a Actor) IsGuard() bool {
	return a.Role == RoleGuard
}

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const actorKey contextKey = "actor"

// ErrActorNotFound is returned when no Actor exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrActorNotFound = errors.New("actor not found in context")

// ActorFromCtx extracts the authenticated actor from the request context.
// Returns ErrActorNotFound for unauthenticated requests.
func ActorFromCtx(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(actorKey).(Actor)
	if !ok || actor.Username == "" {
		return Actor{}, ErrActorNotFound
	}
	return actor, nil
}

// WithActor returns a new context with the given actor attached.
// Used by authentication middleware after validating the session.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}
