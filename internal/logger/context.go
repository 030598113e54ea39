package logger

import "context"

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// invocationIDKey is the context key for the dispatch invocation ID.
var invocationIDKey = contextKey{}

// WithInvocationID returns a new context with the given invocation ID stored.
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationIDKey, id)
}

// InvocationID extracts the invocation ID from the context.
// Returns an empty string if none is set.
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationIDKey).(string)
	return id
}
