package lockout

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeInvalidCreds identifies a credential mismatch.
	TextCodeInvalidCreds = "INVALID_CREDENTIALS"
	// TextCodeTooManyAttempts identifies a lockout denial.
	TextCodeTooManyAttempts = "TOO_MANY_ATTEMPTS"
	// TextCodeCredentialNotFound identifies a missing credential record.
	TextCodeCredentialNotFound = "CREDENTIAL_NOT_FOUND"
	// TextCodeEmptyPassword identifies an empty plaintext input.
	TextCodeEmptyPassword = "EMPTY_PASSWORD"
	// TextCodeAccountInactive identifies a status-gated denial.
	TextCodeAccountInactive = "ACCOUNT_INACTIVE"
)

// DenialMessage is the single user-facing message callers should surface for
// both unknown identifiers and failed verifications, so login responses do
// not disclose whether an account exists. The audit trail keeps the
// distinction.
const DenialMessage = "the credentials provided are invalid"

// ErrCredentialNotFound is returned when no record resolves for an identifier.
var ErrCredentialNotFound = goerrors.New("credential record not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeCredentialNotFound)

// ErrMismatchedHashAndPassword is the generic verification failure.
var ErrMismatchedHashAndPassword = goerrors.New(DenialMessage, goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds)

// ErrTooManyLoginAttempts is returned while a record is inside its lock window.
var ErrTooManyLoginAttempts = goerrors.New("too many failed login attempts", goerrors.CategoryRateLimit).
	WithTextCode(TextCodeTooManyAttempts)

// ErrNoEmptyString rejects empty plaintext passed to HashPassword.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// ErrAccountPending is the status gate for accounts awaiting approval.
var ErrAccountPending = goerrors.New("account is pending approval", goerrors.CategoryAuth).
	WithTextCode(TextCodeAccountInactive)

// ErrAccountRejected is the status gate for rejected accounts.
var ErrAccountRejected = goerrors.New("account registration was rejected", goerrors.CategoryAuth).
	WithTextCode(TextCodeAccountInactive)

// ErrAccountDeactivated is the status gate for deactivated accounts.
var ErrAccountDeactivated = goerrors.New("account has been deactivated", goerrors.CategoryAuth).
	WithTextCode(TextCodeAccountInactive)

// statusAuthError maps an account status to the error callers should layer
// on top of a successful verification. Active (or empty, which defaults to
// active) gates nothing.
func statusAuthError(status AccountStatus) error {
	switch status {
	case AccountStatusPending:
		return ErrAccountPending
	case AccountStatusRejected:
		return ErrAccountRejected
	case AccountStatusDeactivated:
		return ErrAccountDeactivated
	default:
		return nil
	}
}

// EnsureActive reports whether the given status allows the account to use
// the application. Callers run this gate after a successful login, never
// before, so denied attempts do not reveal account status.
func EnsureActive(status AccountStatus) error {
	return statusAuthError(status)
}
