package lockout

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AccountStatus is owned by account provisioning; this package only reads
// it and reports it on successful verification.
type AccountStatus string

const (
	// AccountStatusActive accounts may authenticate and use the application.
	AccountStatusActive AccountStatus = "active"
	// AccountStatusPending accounts await approval.
	AccountStatusPending AccountStatus = "pending"
	// AccountStatusRejected accounts were denied at provisioning.
	AccountStatusRejected AccountStatus = "rejected"
	// AccountStatusDeactivated accounts were disabled after provisioning.
	AccountStatusDeactivated AccountStatus = "deactivated"
)

// PasswordScheme records how a credential's secret is stored.
type PasswordScheme = string

const (
	// SchemeBcrypt means PasswordDigest holds a salted bcrypt digest.
	SchemeBcrypt PasswordScheme = "bcrypt"
	// SchemeLegacy means PasswordDigest still holds migrated plaintext.
	// Records are upgraded to SchemeBcrypt on their first successful login.
	SchemeLegacy PasswordScheme = "legacy"
)

// CredentialRecord is the persisted authentication state for one account.
// Identifier is immutable after provisioning and is the primary lookup key;
// FailedAttempts and LockedUntil are mutated exclusively through the
// Credentials repository.
type CredentialRecord struct {
	bun.BaseModel  `bun:"table:credentials,alias:cred"`
	ID             uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Identifier     string         `bun:"identifier,notnull,unique" json:"identifier,omitempty"`
	Email          string         `bun:"email,notnull,unique" json:"email,omitempty"`
	DisplayName    string         `bun:"display_name" json:"display_name,omitempty"`
	Role           Role           `bun:"role,notnull" json:"role,omitempty"`
	Status         AccountStatus  `bun:"status" json:"status,omitempty"`
	PasswordDigest string         `bun:"password_digest" json:"-"`
	PasswordScheme PasswordScheme `bun:"password_scheme,notnull,default:'bcrypt'" json:"password_scheme,omitempty"`
	FailedAttempts int            `bun:"failed_attempts" json:"failed_attempts,omitempty"`
	LockedUntil    *time.Time     `bun:"locked_until" json:"locked_until,omitempty"`
	LastLoginAt    *time.Time     `bun:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt      *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time     `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureStatus defaults an unset status to active, matching records created
// before the status column existed.
func (c *CredentialRecord) EnsureStatus() {
	if c.Status == "" {
		c.Status = AccountStatusActive
	}
}

// LockedAt reports whether the record is inside its lock window at the
// given instant. The boundary is exclusive: a lock that expires exactly at
// now is already expired.
func (c *CredentialRecord) LockedAt(now time.Time) bool {
	return c.LockedUntil != nil && c.LockedUntil.After(now)
}

// AuditEntry is one append-only row in the audit trail.
type AuditEntry struct {
	bun.BaseModel `bun:"table:audit_trail,alias:adt"`
	ID            uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Identifier    string         `bun:"identifier" json:"identifier,omitempty"`
	Kind          AuditKind      `bun:"kind,notnull" json:"kind,omitempty"`
	Details       map[string]any `bun:"details" json:"details,omitempty"`
	Origin        string         `bun:"origin" json:"origin,omitempty"`
	OccurredAt    time.Time      `bun:"occurred_at,notnull" json:"occurred_at,omitempty"`
	CreatedAt     *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
