package activity

import (
	"context"

	id "consentry/pkg/domain"
)

// Store is the append-only persistence boundary for the audit trail.
// Error Contract:
// - Append returns nil on success or a wrapped error on failure
// - List methods return entries newest-first and never an error for empty results
type Store interface {
	Append(ctx context.Context, entry Entry) error
	ListByConsent(ctx context.Context, consentID id.ConsentID) ([]Entry, error)
	ListAll(ctx context.Context) ([]Entry, error)
}
