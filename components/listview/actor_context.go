package listview

import "context"

// ActorContext identifies who triggered a mutation, for audit trails.
type ActorContext struct {
	ActorID  string
	TenantID string
}

type actorContextKey struct{}

// ContextWithActor stores the actor context on the provided context.
func ContextWithActor(ctx context.Context, meta ActorContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorContextKey{}, meta)
}

// actorFrom extracts the actor context, if present.
func actorFrom(ctx context.Context) ActorContext {
	if ctx == nil {
		return ActorContext{}
	}
	if meta, ok := ctx.Value(actorContextKey{}).(ActorContext); ok {
		return meta
	}
	return ActorContext{}
}
