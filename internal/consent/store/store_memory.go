package store

import (
	"context"
	"sync"

	"consentry/internal/consent/models"
	"consentry/internal/sentinel"
	id "consentry/pkg/domain"
)

// InMemoryStore holds the consent collection for the process lifetime.
// Listing order is newest-first: new consents are prepended, matching the way
// the audit trail is ordered.
type InMemoryStore struct {
	mu    sync.RWMutex
	byID  map[id.ConsentID]*models.Consent
	order []id.ConsentID
}

// NewInMemoryStore constructs an empty consent store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[id.ConsentID]*models.Consent)}
}

func (s *InMemoryStore) Save(_ context.Context, consent *models.Consent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[consent.ID]; ok {
		return sentinel.ErrAlreadyExists
	}
	s.byID[consent.ID] = consent.Clone()
	s.order = append([]id.ConsentID{consent.ID}, s.order...)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, consentID id.ConsentID) (*models.Consent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	consent, ok := s.byID[consentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return consent.Clone(), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Consent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Consent, 0, len(s.order))
	for _, cid := range s.order {
		out = append(out, s.byID[cid].Clone())
	}
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, consent *models.Consent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[consent.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[consent.ID] = consent.Clone()
	return nil
}
