package auth

import "context"

type contextKey struct{}

// WithIdentity attaches a caller identity to the request context.
// A nil identity is stored as-is and read back as anonymous.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFromContext returns the caller identity, or nil for an
// anonymous request
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(contextKey{}).(*Identity)
	return identity
}
