package lockout

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// DefaultMaxAttempts is the failed-attempt ceiling before a record locks.
var DefaultMaxAttempts = 5

// DefaultLockDuration is the lock window entered when the ceiling is
// reached. The window is computed once at the crossing and is not extended
// by attempts made while locked.
var DefaultLockDuration = 15 * time.Minute

// Config holds the lockout policy knobs.
type Config struct {
	MaxAttempts  int
	LockDuration time.Duration
}

// DefaultConfig returns the default lockout policy.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  DefaultMaxAttempts,
		LockDuration: DefaultLockDuration,
	}
}

// Validate checks the policy is usable.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MaxAttempts, validation.Required, validation.Min(1)),
		validation.Field(&c.LockDuration, validation.Required),
	)
}
