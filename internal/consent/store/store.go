package store

import (
	"context"

	"consentry/internal/consent/models"
	id "consentry/pkg/domain"
)

// Store is the persistence boundary for the consent collection.
// Error Contract:
// - FindByID returns sentinel.ErrNotFound (wrapped) when no record exists
// - Update returns sentinel.ErrNotFound when the record is missing
// - List never fails for empty collections
// All methods return snapshot copies; mutating a returned consent does not
// affect stored state until Update is called with it.
type Store interface {
	Save(ctx context.Context, consent *models.Consent) error
	FindByID(ctx context.Context, consentID id.ConsentID) (*models.Consent, error)
	List(ctx context.Context) ([]*models.Consent, error)
	Update(ctx context.Context, consent *models.Consent) error
}
