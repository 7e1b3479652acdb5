package lockout

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialTracker is the store LoginService drives. GetByIdentifier
// resolves a human-entered string (record ID, email, or login identifier) to
// at most one record. TrackFailedLogin performs the conditional
// increment-and-maybe-lock as a single atomic update and returns the
// re-read record so the caller can observe the threshold crossing.
// TrackSuccessfulLogin resets the counter and the lock in one update.
type CredentialTracker interface {
	GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*CredentialRecord, error)
	TrackFailedLogin(ctx context.Context, record *CredentialRecord, maxAttempts int, lockUntil time.Time) (*CredentialRecord, error)
	TrackSuccessfulLogin(ctx context.Context, record *CredentialRecord) error
	UpgradeDigest(ctx context.Context, id uuid.UUID, digest string) error
}

// PasswordAuthenticator verifies and produces password digests.
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, digest string) bool
	IsPasswordDigest(value string) bool
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] LOCKOUT "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] LOCKOUT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] LOCKOUT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] LOCKOUT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
