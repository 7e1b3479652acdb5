package lockout_test

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-lockout"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCredentialTracker implements lockout.CredentialTracker
type MockCredentialTracker struct {
	mock.Mock
}

func (m *MockCredentialTracker) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*lockout.CredentialRecord, error) {
	args := m.Called(ctx, identifier)
	record, _ := args.Get(0).(*lockout.CredentialRecord)
	return record, args.Error(1)
}

func (m *MockCredentialTracker) TrackFailedLogin(ctx context.Context, record *lockout.CredentialRecord, maxAttempts int, lockUntil time.Time) (*lockout.CredentialRecord, error) {
	args := m.Called(ctx, record, maxAttempts, lockUntil)
	updated, _ := args.Get(0).(*lockout.CredentialRecord)
	return updated, args.Error(1)
}

func (m *MockCredentialTracker) TrackSuccessfulLogin(ctx context.Context, record *lockout.CredentialRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCredentialTracker) UpgradeDigest(ctx context.Context, id uuid.UUID, digest string) error {
	args := m.Called(ctx, id, digest)
	return args.Error(0)
}

// capturingSink collects audit events for assertions.
type capturingSink struct {
	mu     sync.Mutex
	events []lockout.AuditEvent
	err    error
}

func (s *capturingSink) Record(ctx context.Context, event lockout.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *capturingSink) Events() []lockout.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]lockout.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *capturingSink) Last() (lockout.AuditEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return lockout.AuditEvent{}, false
	}
	return s.events[len(s.events)-1], true
}

// fakeTracker is an in-memory CredentialTracker with the same conditional
// update semantics as the SQL repository: the increment is clamped, the
// lock is set in the same mutation that reaches the ceiling, and records
// inside an active lock window are left untouched.
type fakeTracker struct {
	mu      sync.Mutex
	records map[string]*lockout.CredentialRecord
	now     func() time.Time
}

func newFakeTracker(now func() time.Time, records ...*lockout.CredentialRecord) *fakeTracker {
	t := &fakeTracker{
		records: map[string]*lockout.CredentialRecord{},
		now:     now,
	}
	for _, r := range records {
		t.records[r.Identifier] = r
	}
	return t
}

func (t *fakeTracker) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*lockout.CredentialRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, ok := t.records[identifier]
	if !ok {
		return nil, lockout.ErrCredentialNotFound
	}

	clone := *record
	return &clone, nil
}

func (t *fakeTracker) TrackFailedLogin(ctx context.Context, record *lockout.CredentialRecord, maxAttempts int, lockUntil time.Time) (*lockout.CredentialRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stored, ok := t.records[record.Identifier]
	if !ok {
		return nil, lockout.ErrCredentialNotFound
	}

	now := t.now()
	if stored.LockedUntil == nil || !stored.LockedUntil.After(now) {
		next := stored.FailedAttempts + 1
		if next >= maxAttempts {
			stored.FailedAttempts = maxAttempts
			until := lockUntil
			stored.LockedUntil = &until
		} else {
			stored.FailedAttempts = next
		}
	}

	clone := *stored
	return &clone, nil
}

func (t *fakeTracker) TrackSuccessfulLogin(ctx context.Context, record *lockout.CredentialRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	stored, ok := t.records[record.Identifier]
	if !ok {
		return lockout.ErrCredentialNotFound
	}

	stored.FailedAttempts = 0
	stored.LockedUntil = nil
	now := t.now()
	stored.LastLoginAt = &now
	return nil
}

func (t *fakeTracker) UpgradeDigest(ctx context.Context, id uuid.UUID, digest string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, stored := range t.records {
		if stored.ID == id {
			stored.PasswordDigest = digest
			stored.PasswordScheme = lockout.SchemeBcrypt
			return nil
		}
	}
	return lockout.ErrCredentialNotFound
}

func (t *fakeTracker) stored(identifier string) *lockout.CredentialRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records[identifier]
}
