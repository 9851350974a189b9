package activity

import (
	"context"
	"sync"

	id "consentry/pkg/domain"
)

// InMemoryStore keeps the audit trail in memory for the process lifetime.
// Entries are prepended so the natural order is reverse-chronological;
// consumers that need chronological order must sort by Timestamp themselves.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewInMemoryStore constructs an empty activity store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]Entry{entry}, s.entries...)
	return nil
}

func (s *InMemoryStore) ListByConsent(_ context.Context, consentID id.ConsentID) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, e := range s.entries {
		if e.ConsentID == consentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry{}, s.entries...), nil
}
