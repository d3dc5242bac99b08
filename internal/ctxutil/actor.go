// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for the acting operative.
type ActorKey struct{}

// Actor identifies who is driving an operation.
// Role is kept as a plain string so core packages can convert it to their own type.
type Actor struct {
	Username string
	Role     string
}

// WithActor returns a context carrying actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ActorKey{}, actor)
}

// ActorFromContext returns the actor from context and whether one was set.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(ActorKey{}).(Actor)
	return actor, ok
}
