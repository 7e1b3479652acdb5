package lockout

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TrackFailedLoginSQL performs the read-modify-write of the failure counter
// as one conditional statement: the increment is clamped at the attempt
// ceiling, the lock expiry is set in the same update that reaches the
// ceiling, and rows inside an active lock window are excluded entirely so a
// locked record is never mutated by further attempts.
var TrackFailedLoginSQL = `UPDATE "credentials" AS "cred"
SET
	"failed_attempts" = MIN("failed_attempts" + 1, ?),
	"locked_until" = CASE
		WHEN "failed_attempts" + 1 >= ? THEN ?
		ELSE "locked_until"
	END,
	"updated_at" = ?
WHERE
	"cred"."deleted_at" IS NULL
AND (
	"cred"."id" = ?
)
AND (
	"cred"."locked_until" IS NULL OR "cred"."locked_until" <= ?
);`

var UpgradeDigestSQL = `UPDATE "credentials" AS "cred"
SET
	"password_digest" = ?,
	"password_scheme" = 'bcrypt'
WHERE
	"cred"."deleted_at" IS NULL
AND (
	"cred"."id" = ?
) RETURNING *;`

type Credentials interface {
	repository.Repository[*CredentialRecord]

	TrackFailedLogin(ctx context.Context, record *CredentialRecord, maxAttempts int, lockUntil time.Time) (*CredentialRecord, error)
	TrackFailedLoginTx(ctx context.Context, tx bun.IDB, record *CredentialRecord, maxAttempts int, lockUntil time.Time) (*CredentialRecord, error)
	TrackSuccessfulLogin(ctx context.Context, record *CredentialRecord) error
	TrackSuccessfulLoginTx(ctx context.Context, tx bun.IDB, record *CredentialRecord) error

	UpgradeDigest(ctx context.Context, id uuid.UUID, digest string) error
	UpgradeDigestTx(ctx context.Context, tx bun.IDB, id uuid.UUID, digest string) error

	Provision(ctx context.Context, record *CredentialRecord) (*CredentialRecord, error)
	ProvisionTx(ctx context.Context, tx bun.IDB, record *CredentialRecord) (*CredentialRecord, error)
}

type credentials struct {
	repository.Repository[*CredentialRecord]
	db *bun.DB
}

var (
	_ Credentials                              = (*credentials)(nil)
	_ CredentialTracker                        = (*credentials)(nil)
	_ repository.Repository[*CredentialRecord] = (*credentials)(nil)
)

func NewCredentialsRepository(db *bun.DB) Credentials {
	repo := repository.NewRepository[*CredentialRecord](db, repository.ModelHandlers[*CredentialRecord]{
		NewRecord: func() *CredentialRecord { return &CredentialRecord{} },
		GetID: func(c *CredentialRecord) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *CredentialRecord, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string {
			return "identifier"
		},
	})

	return &credentials{
		Repository: repo,
		db:         db,
	}
}

func (a *credentials) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*CredentialRecord, error) {
	return a.GetByIdentifierTx(ctx, a.db, identifier, criteria...)
}

func (a *credentials) GetByIdentifierTx(ctx context.Context, tx bun.IDB, identifier string, criteria ...repository.SelectCriteria) (*CredentialRecord, error) {
	options := resolveCredentialIdentifier(identifier)
	if len(options) == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"identifier": identifier,
			})
	}

	for _, opt := range options {
		record := &CredentialRecord{}
		q := tx.NewSelect().Model(record)

		for _, c := range criteria {
			q.Apply(c)
		}

		err := q.
			Where(fmt.Sprintf("?TableAlias.%s = ?", opt.column), opt.value).
			Limit(1).
			Scan(ctx)

		if err != nil {
			if repository.IsRecordNotFound(err) {
				continue
			}
			return nil, err
		}

		return record, nil
	}

	return nil, repository.NewRecordNotFound().
		WithMetadata(map[string]any{
			"identifier": identifier,
		})
}

func (a *credentials) TrackFailedLogin(ctx context.Context, record *CredentialRecord, maxAttempts int, lockUntil time.Time) (*CredentialRecord, error) {
	return a.TrackFailedLoginTx(ctx, a.db, record, maxAttempts, lockUntil)
}

func (a *credentials) TrackFailedLoginTx(ctx context.Context, tx bun.IDB, record *CredentialRecord, maxAttempts int, lockUntil time.Time) (*CredentialRecord, error) {
	// NOTE: the ORM cannot express the clamp + conditional lock in one
	// statement, and two statements would reintroduce the lost-update race
	// between concurrent attempts against the same record.
	now := time.Now()
	_, err := tx.NewRaw(
		TrackFailedLoginSQL,
		maxAttempts,
		maxAttempts,
		lockUntil,
		now,
		record.ID,
		now,
	).Exec(ctx)
	if err != nil {
		return nil, err
	}

	// Re-read so the caller observes the threshold crossing, including
	// increments applied by concurrent attempts.
	updated := &CredentialRecord{}
	err = tx.NewSelect().
		Model(updated).
		Where("?TableAlias.id = ?", record.ID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (a *credentials) TrackSuccessfulLogin(ctx context.Context, record *CredentialRecord) error {
	return a.TrackSuccessfulLoginTx(ctx, a.db, record)
}

func (a *credentials) TrackSuccessfulLoginTx(ctx context.Context, tx bun.IDB, record *CredentialRecord) error {
	// Reset the counter and the lock together, in the same update that
	// stamps the login.
	lastLoginAt := time.Now()
	_, err := tx.NewRaw(`
		UPDATE "credentials" AS "cred"
		SET
			"last_login_at" = ?,
			"locked_until" = NULL,
			"failed_attempts" = 0
		WHERE
			("cred".id = ?)
			AND "cred"."deleted_at" IS NULL;
	`, lastLoginAt, record.ID).Exec(ctx)

	return err
}

func (a *credentials) UpgradeDigest(ctx context.Context, id uuid.UUID, digest string) error {
	return a.UpgradeDigestTx(ctx, a.db, id, digest)
}

func (a *credentials) UpgradeDigestTx(ctx context.Context, tx bun.IDB, id uuid.UUID, digest string) error {
	res, err := a.Repository.RawTx(ctx, tx, UpgradeDigestSQL, digest, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func (a *credentials) Provision(ctx context.Context, record *CredentialRecord) (*CredentialRecord, error) {
	return a.ProvisionTx(ctx, a.db, record)
}

// ProvisionTx creates a record with defaults applied. Secrets that are not
// already digests are hashed here, so callers migrating legacy rows cannot
// double-hash an existing digest.
func (a *credentials) ProvisionTx(ctx context.Context, tx bun.IDB, record *CredentialRecord) (*CredentialRecord, error) {
	if err := prepareCredentialDefaults(record); err != nil {
		return nil, err
	}
	return a.Repository.CreateTx(ctx, tx, record)
}

func prepareCredentialDefaults(record *CredentialRecord) error {
	if record == nil {
		return ErrCredentialNotFound
	}

	if record.Role == "" {
		record.Role = RoleEmployee
	}

	record.EnsureStatus()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.PasswordScheme == "" {
		record.PasswordScheme = SchemeBcrypt
	}

	if record.PasswordScheme == SchemeBcrypt && record.PasswordDigest != "" {
		if !IsPasswordDigest(record.PasswordDigest) {
			digest, err := HashPassword(record.PasswordDigest)
			if err != nil {
				return err
			}
			record.PasswordDigest = digest
		}
	}

	return nil
}

type identifierOption struct {
	column string
	value  string
}

func resolveCredentialIdentifier(identifier string) []identifierOption {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil
	}

	options := make([]identifierOption, 0, 3)

	if isUUID(trimmed) {
		options = append(options, identifierOption{
			column: "id",
			value:  trimmed,
		})
	}

	if isEmail(trimmed) {
		options = append(options, identifierOption{
			column: "email",
			value:  trimmed,
		})
	}

	options = append(options, identifierOption{
		column: "identifier",
		value:  trimmed,
	})

	return options
}

func isEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func isUUID(identifier string) bool {
	_, err := uuid.Parse(identifier)
	return err == nil
}
