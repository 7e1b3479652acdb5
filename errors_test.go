package lockout_test

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-lockout"
	"github.com/stretchr/testify/assert"
)

func TestStructuredErrorProperties(t *testing.T) {
	t.Run("ErrCredentialNotFound", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryNotFound, lockout.ErrCredentialNotFound.Category)
		assert.Equal(t, lockout.TextCodeCredentialNotFound, lockout.ErrCredentialNotFound.TextCode)
	})

	t.Run("ErrMismatchedHashAndPassword", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, lockout.ErrMismatchedHashAndPassword.Category)
		assert.Equal(t, lockout.TextCodeInvalidCreds, lockout.ErrMismatchedHashAndPassword.TextCode)
		assert.Equal(t, lockout.DenialMessage, lockout.ErrMismatchedHashAndPassword.Message)
	})

	t.Run("ErrTooManyLoginAttempts", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryRateLimit, lockout.ErrTooManyLoginAttempts.Category)
		assert.Equal(t, lockout.TextCodeTooManyAttempts, lockout.ErrTooManyLoginAttempts.TextCode)
	})

	t.Run("ErrNoEmptyString", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryValidation, lockout.ErrNoEmptyString.Category)
		assert.Equal(t, lockout.TextCodeEmptyPassword, lockout.ErrNoEmptyString.TextCode)
	})
}

func TestEnsureActive(t *testing.T) {
	tests := []struct {
		name     string
		status   lockout.AccountStatus
		expected error
	}{
		{"Active", lockout.AccountStatusActive, nil},
		{"Unset defaults to active", lockout.AccountStatus(""), nil},
		{"Pending", lockout.AccountStatusPending, lockout.ErrAccountPending},
		{"Rejected", lockout.AccountStatusRejected, lockout.ErrAccountRejected},
		{"Deactivated", lockout.AccountStatusDeactivated, lockout.ErrAccountDeactivated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lockout.EnsureActive(tt.status)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.expected, err)
			}
		})
	}
}
