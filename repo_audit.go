package lockout

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunAuditSink persists audit events as audit_trail rows. It only appends;
// reading the trail back is a reporting concern outside this package.
type BunAuditSink struct {
	db *bun.DB
}

// NewBunAuditSink returns an AuditSink backed by the given database.
func NewBunAuditSink(db *bun.DB) *BunAuditSink {
	return &BunAuditSink{db: db}
}

// Record implements AuditSink.
func (s *BunAuditSink) Record(ctx context.Context, event AuditEvent) error {
	return s.RecordTx(ctx, s.db, event)
}

// RecordTx appends the event inside the given transaction or connection.
func (s *BunAuditSink) RecordTx(ctx context.Context, tx bun.IDB, event AuditEvent) error {
	entry := &AuditEntry{
		ID:         uuid.New(),
		Identifier: event.Identifier,
		Kind:       event.Kind,
		Details:    event.Details,
		Origin:     event.Origin,
		OccurredAt: event.OccurredAt,
	}

	_, err := tx.NewInsert().Model(entry).Exec(ctx)
	return err
}

var _ AuditSink = (*BunAuditSink)(nil)
