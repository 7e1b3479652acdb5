package lockout

import (
	"context"
	"time"
)

// AuditKind enumerates the event categories this package records.
type AuditKind string

const (
	AuditLoginSuccess  AuditKind = "auth.login.success"
	AuditLoginFailure  AuditKind = "auth.login.failure"
	AuditAccountLocked AuditKind = "auth.login.locked"
)

// AuditEvent captures audit-friendly information about an authentication
// attempt. Identifier may be empty when no record resolved; Origin carries
// the caller-supplied network or terminal origin, if any.
type AuditEvent struct {
	Identifier string
	Kind       AuditKind
	Details    map[string]any
	Origin     string
	OccurredAt time.Time
}

// AuditSink consumes audit events. Sinks are append-only and best-effort:
// LoginService logs and swallows Record errors so audit unavailability can
// never block or corrupt the authentication flow.
type AuditSink interface {
	Record(ctx context.Context, event AuditEvent) error
}

// AuditSinkFunc adapts a function to the AuditSink interface.
type AuditSinkFunc func(ctx context.Context, event AuditEvent) error

// Record implements AuditSink.
func (f AuditSinkFunc) Record(ctx context.Context, event AuditEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopAuditSink struct{}

func (noopAuditSink) Record(context.Context, AuditEvent) error {
	return nil
}

func normalizeAuditSink(s AuditSink) AuditSink {
	if s == nil {
		return noopAuditSink{}
	}
	return s
}
