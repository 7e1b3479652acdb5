package lockout

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// LoginOutcome classifies a finished login attempt. Infrastructure failures
// are not outcomes; they travel the error channel so callers cannot confuse
// a store outage with invalid credentials.
type LoginOutcome string

const (
	// OutcomeSuccess means the password verified and counters were reset.
	OutcomeSuccess LoginOutcome = "success"
	// OutcomeBadPassword means verification failed on an unlocked record.
	OutcomeBadPassword LoginOutcome = "bad-password"
	// OutcomeLocked means the attempt was denied inside the lock window,
	// with no counter movement.
	OutcomeLocked LoginOutcome = "locked"
	// OutcomeNotFound means no record resolved for the identifier.
	OutcomeNotFound LoginOutcome = "not-found"
)

// LoginResult is what a login attempt reports back to the caller.
type LoginResult struct {
	Outcome        LoginOutcome
	Identifier     string
	DisplayName    string
	Role           Role
	Status         AccountStatus
	FailedAttempts int
	LockedUntil    *time.Time
}

// Denied reports whether the attempt was rejected for any reason.
func (r *LoginResult) Denied() bool {
	return r.Outcome != OutcomeSuccess
}

// AuthError maps a denied outcome to its structured error, for callers that
// propagate denials through an error channel instead of inspecting the
// result. Successful attempts map to nil.
func (r *LoginResult) AuthError() error {
	switch r.Outcome {
	case OutcomeNotFound:
		return ErrCredentialNotFound
	case OutcomeLocked:
		return ErrTooManyLoginAttempts
	case OutcomeBadPassword:
		return ErrMismatchedHashAndPassword
	default:
		return nil
	}
}

// UserMessage returns the message safe to show an end user. NotFound and
// BadPassword collapse into the same generic denial so login responses do
// not disclose whether an account exists.
func (r *LoginResult) UserMessage() string {
	switch r.Outcome {
	case OutcomeLocked:
		return "too many failed login attempts, try again later"
	case OutcomeNotFound, OutcomeBadPassword:
		return DenialMessage
	default:
		return ""
	}
}

// LoginService orchestrates the lockout state machine over a credential
// store: resolve the record, deny inside the lock window, verify the
// password, and persist the counter transition, auditing every outcome.
type LoginService struct {
	store        CredentialTracker
	hasher       PasswordAuthenticator
	auditSink    AuditSink
	logger       Logger
	now          func() time.Time
	maxAttempts  int
	lockDuration time.Duration
}

// LoginOption customizes LoginService construction.
type LoginOption func(*LoginService)

// WithLogger overrides the default logger.
func WithLogger(logger Logger) LoginOption {
	return func(s *LoginService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAuditSink configures the AuditSink login outcomes are recorded to.
func WithAuditSink(sink AuditSink) LoginOption {
	return func(s *LoginService) {
		s.auditSink = normalizeAuditSink(sink)
	}
}

// WithHasher overrides the password verifier.
func WithHasher(hasher PasswordAuthenticator) LoginOption {
	return func(s *LoginService) {
		if hasher != nil {
			s.hasher = hasher
		}
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(clock func() time.Time) LoginOption {
	return func(s *LoginService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithMaxAttempts sets the failed-attempt ceiling. Values below 1 are ignored.
func WithMaxAttempts(n int) LoginOption {
	return func(s *LoginService) {
		if n >= 1 {
			s.maxAttempts = n
		}
	}
}

// WithLockDuration sets the lock window entered at the ceiling. Non-positive
// values are ignored.
func WithLockDuration(d time.Duration) LoginOption {
	return func(s *LoginService) {
		if d > 0 {
			s.lockDuration = d
		}
	}
}

// WithConfig applies MaxAttempts and LockDuration from a Config.
func WithConfig(cfg Config) LoginOption {
	return func(s *LoginService) {
		WithMaxAttempts(cfg.MaxAttempts)(s)
		WithLockDuration(cfg.LockDuration)(s)
	}
}

// NewLoginService returns a LoginService over the given store with the
// default policy (5 attempts, 15 minute lock).
func NewLoginService(store CredentialTracker, opts ...LoginOption) *LoginService {
	s := &LoginService{
		store:        store,
		hasher:       BcryptAuthenticator{},
		auditSink:    noopAuditSink{},
		logger:       defLogger{},
		now:          time.Now,
		maxAttempts:  DefaultMaxAttempts,
		lockDuration: DefaultLockDuration,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Login resolves the identifier, applies the lockout transitions, and
// reports the outcome. Counters move only on failed verification outside a
// lock window; a success while unlocked resets both counter and lock. Lock
// expiry is lazy: the first attempt after the deadline is evaluated as if
// unlocked, there is no background sweep.
func (s *LoginService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	now := s.now()

	record, err := s.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.emitAuditEvent(ctx, AuditEvent{
				Kind: AuditLoginFailure,
				Details: map[string]any{
					"identifier": identifier,
					"reason":     "unknown identifier",
				},
			})
			return &LoginResult{Outcome: OutcomeNotFound}, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve credential record")
	}

	record.EnsureStatus()

	if record.LockedAt(now) {
		s.emitAuditEvent(ctx, AuditEvent{
			Identifier: record.Identifier,
			Kind:       AuditAccountLocked,
			Details: map[string]any{
				"failed_attempts": record.FailedAttempts,
				"locked_until":    record.LockedUntil,
			},
		})
		return &LoginResult{
			Outcome:        OutcomeLocked,
			Identifier:     record.Identifier,
			FailedAttempts: record.FailedAttempts,
			LockedUntil:    record.LockedUntil,
		}, nil
	}

	if s.verifyRecord(ctx, record, password) {
		if err := s.store.TrackSuccessfulLogin(ctx, record); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to track successful login")
		}

		record.FailedAttempts = 0
		record.LockedUntil = nil

		s.emitAuditEvent(ctx, AuditEvent{
			Identifier: record.Identifier,
			Kind:       AuditLoginSuccess,
			Details: map[string]any{
				"role": record.Role,
			},
		})

		return &LoginResult{
			Outcome:     OutcomeSuccess,
			Identifier:  record.Identifier,
			DisplayName: record.DisplayName,
			Role:        record.Role,
			Status:      record.Status,
		}, nil
	}

	updated, err := s.store.TrackFailedLogin(ctx, record, s.maxAttempts, now.Add(s.lockDuration))
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to track login attempt")
	}

	if updated.LockedAt(now) {
		s.emitAuditEvent(ctx, AuditEvent{
			Identifier: updated.Identifier,
			Kind:       AuditAccountLocked,
			Details: map[string]any{
				"failed_attempts": updated.FailedAttempts,
				"locked_until":    updated.LockedUntil,
			},
		})
	} else {
		s.emitAuditEvent(ctx, AuditEvent{
			Identifier: updated.Identifier,
			Kind:       AuditLoginFailure,
			Details: map[string]any{
				"failed_attempts": updated.FailedAttempts,
			},
		})
	}

	return &LoginResult{
		Outcome:        OutcomeBadPassword,
		Identifier:     updated.Identifier,
		FailedAttempts: updated.FailedAttempts,
		LockedUntil:    updated.LockedUntil,
	}, nil
}

// verifyRecord checks the password against the record's stored secret.
// Records still on the legacy scheme are compared in constant time and
// upgraded to a digest on their first match; the upgrade is best-effort so
// a write failure cannot turn a correct password into a denial.
func (s *LoginService) verifyRecord(ctx context.Context, record *CredentialRecord, password string) bool {
	if record.PasswordScheme == SchemeLegacy {
		if !compareLegacyPlaintext(password, record.PasswordDigest) {
			return false
		}

		digest, err := s.hasher.HashPassword(password)
		if err != nil {
			s.logger.Warn("failed to hash legacy credential: %v", err)
			return true
		}

		if err := s.store.UpgradeDigest(ctx, record.ID, digest); err != nil {
			s.logger.Warn("failed to upgrade legacy credential: %v", err)
		}

		return true
	}

	return s.hasher.VerifyPassword(password, record.PasswordDigest)
}

func (s *LoginService) emitAuditEvent(ctx context.Context, event AuditEvent) {
	sink := normalizeAuditSink(s.auditSink)

	if event.Details == nil {
		event.Details = map[string]any{}
	}

	if event.Origin == "" {
		if origin, ok := OriginFromContext(ctx); ok {
			event.Origin = origin
		}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}

	if err := sink.Record(ctx, event); err != nil {
		s.logger.Warn("audit sink record error: %v", err)
	}
}
