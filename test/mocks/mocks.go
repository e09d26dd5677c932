package mocks

import (
	"context"
	"fmt"

	"github.com/civicgate/email-validation/internal/core/domain/profile"
	"github.com/civicgate/email-validation/internal/core/ports"
)

// TokenStoreMock is a lightweight mock for TokenStore
type TokenStoreMock struct {
	GetFn func(ctx context.Context, partitionKey, rowKey string) ([]byte, bool, error)
	Calls int
}

func (m *TokenStoreMock) Get(ctx context.Context, partitionKey, rowKey string) ([]byte, bool, error) {
	m.Calls++
	if m.GetFn != nil {
		return m.GetFn(ctx, partitionKey, rowKey)
	}
	return nil, false, nil
}

// ProfileRepositoryMock is a lightweight mock for ProfileRepository
type ProfileRepositoryMock struct {
	FindLatestByFiscalCodeFn func(ctx context.Context, fiscalCode string) (*profile.Profile, bool, error)
	UpdateFn                 func(ctx context.Context, p *profile.Profile) (*profile.Profile, error)
	FindCalls                int
	UpdateCalls              int
	Updated                  []profile.Profile
}

func (m *ProfileRepositoryMock) FindLatestByFiscalCode(ctx context.Context, fiscalCode string) (*profile.Profile, bool, error) {
	m.FindCalls++
	if m.FindLatestByFiscalCodeFn != nil {
		return m.FindLatestByFiscalCodeFn(ctx, fiscalCode)
	}
	return nil, false, nil
}

func (m *ProfileRepositoryMock) Update(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	m.UpdateCalls++
	m.Updated = append(m.Updated, *p)
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, p)
	}
	return p, nil
}

// ProfileEmailReaderMock serves a fixed slice of entries through the
// iterator port, optionally failing after a given number of entries.
type ProfileEmailReaderMock struct {
	Entries []profile.Email
	// FailAfter injects an iteration error once that many entries have
	// been yielded. Negative means never fail.
	FailAfter int
	ListCalls int
}

func NewProfileEmailReaderMock(entries ...profile.Email) *ProfileEmailReaderMock {
	return &ProfileEmailReaderMock{Entries: entries, FailAfter: -1}
}

func (m *ProfileEmailReaderMock) ListProfilesWithEmail(ctx context.Context, email string) ports.ProfileEmailIterator {
	m.ListCalls++
	return &sliceIterator{entries: m.Entries, failAfter: m.FailAfter}
}

type sliceIterator struct {
	entries   []profile.Email
	failAfter int
	pos       int
	err       error
}

func (it *sliceIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.failAfter >= 0 && it.pos >= it.failAfter {
		it.err = fmt.Errorf("profile emails enumeration failed")
		return false
	}
	if it.pos >= len(it.entries) {
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator) Entry() profile.Email { return it.entries[it.pos-1] }
func (it *sliceIterator) Err() error           { return it.err }
func (it *sliceIterator) Close() error         { return nil }

// EventTrackerMock records tracked events
type EventTrackerMock struct {
	Events []TrackedEvent
}

type TrackedEvent struct {
	Name string
	Tags map[string]string
}

func (m *EventTrackerMock) Track(eventName string, tags map[string]string) {
	m.Events = append(m.Events, TrackedEvent{Name: eventName, Tags: tags})
}
