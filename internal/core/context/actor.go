package context

import (
	"context"
)

// ActorContext identifies who is performing the current operation.
// Populated by the HTTP layer from request headers; the ledger records it
// on audit entries so payment history stays attributable.
type ActorContext struct {
	ActorID string
	Name    string
}

type actorContextKey struct{}

// WithActor adds ActorContext to context.
func WithActor(ctx context.Context, actor *ActorContext) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// GetActor returns ActorContext from context, or nil.
func GetActor(ctx context.Context) *ActorContext {
	if v, ok := ctx.Value(actorContextKey{}).(*ActorContext); ok {
		return v
	}
	return nil
}

// GetActorID returns the actor ID from context or an empty string.
func GetActorID(ctx context.Context) string {
	if a := GetActor(ctx); a != nil {
		return a.ActorID
	}
	return ""
}
