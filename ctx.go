package lockout

import (
	"context"
)

var principalCtxKey = &contextKey{"principal"}
var originCtxKey = &contextKey{"origin"}

type contextKey struct {
	name string
}

// WithContext sets the authenticated CredentialRecord in the given context.
// Request-scoped state replaces the process-wide "current user" holders
// desktop callers tend to grow.
func WithContext(r context.Context, record *CredentialRecord) context.Context {
	return context.WithValue(r, principalCtxKey, record)
}

// FromContext finds the authenticated CredentialRecord from the context.
func FromContext(ctx context.Context) (*CredentialRecord, bool) {
	raw, ok := ctx.Value(principalCtxKey).(*CredentialRecord)
	return raw, ok
}

// WithOrigin attaches the caller's network or terminal origin to the
// context so audit events can carry it.
func WithOrigin(r context.Context, origin string) context.Context {
	return context.WithValue(r, originCtxKey, origin)
}

// OriginFromContext extracts the origin set with WithOrigin.
func OriginFromContext(ctx context.Context) (string, bool) {
	raw, ok := ctx.Value(originCtxKey).(string)
	return raw, ok
}
