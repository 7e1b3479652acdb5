// Package lockout implements credential verification with failed-attempt
// lockout for account-backed applications (originally extracted from an
// HR/payroll record-keeper).
//
// Lockout state machine:
//   - Each CredentialRecord carries a failed-attempt counter and an optional
//     lock-expiry timestamp, persisted via Bun. While the expiry is in the
//     future every attempt is denied and no counters move; expiry is lazy, so
//     the first attempt after the deadline is evaluated as if unlocked.
//   - LoginService centralizes the transitions: failures increment the
//     counter (clamped at the configured maximum), the threshold crossing
//     sets the lock in the same atomic update, and a success while unlocked
//     resets both fields together.
//
// Audit sinks:
//   - AuditSink is a light-weight append-only emitter used by LoginService to
//     describe login successes, failures, and lock events. Sinks run
//     best-effort (errors are logged) so you can forward to a database or
//     queue without blocking authentication.
//
// Status gating:
//   - Account status (active, pending, rejected, deactivated) is owned by
//     provisioning, not by this package. Login reports it on a successful
//     verification and callers layer EnsureActive on top, so a locked or
//     failed attempt never reveals status.
package lockout
