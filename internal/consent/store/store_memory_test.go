package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consentry/internal/catalog"
	"consentry/internal/consent/models"
	"consentry/internal/sentinel"
	id "consentry/pkg/domain"
)

// Unit tests for the in-memory consent store.
// Justification: snapshot isolation (no aliasing of engine-owned state) and
// the not-found sentinel contract are what the service layer builds on.

func newConsent(t *testing.T, consentID id.ConsentID) *models.Consent {
	t.Helper()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c, err := models.New(consentID, "tpp-001", "user-001",
		[]catalog.Permission{catalog.PermReadBalances},
		[]id.AccountID{"acc-001"},
		now, 90*24*time.Hour)
	require.NoError(t, err)
	return c
}

func TestInMemoryStore_SaveAndFind(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	c := newConsent(t, "consent_a")

	require.NoError(t, s.Save(ctx, c))

	t.Run("find returns the saved record", func(t *testing.T) {
		got, err := s.FindByID(ctx, "consent_a")
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
	})

	t.Run("duplicate save is rejected", func(t *testing.T) {
		err := s.Save(ctx, c)
		assert.ErrorIs(t, err, sentinel.ErrAlreadyExists)
	})

	t.Run("missing record returns the sentinel", func(t *testing.T) {
		_, err := s.FindByID(ctx, "consent_404")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestInMemoryStore_SnapshotIsolation(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, newConsent(t, "consent_a")))

	got, err := s.FindByID(ctx, "consent_a")
	require.NoError(t, err)
	got.Status = models.StatusRevoked
	got.Permissions[0] = catalog.PermInitiatePayments

	again, err := s.FindByID(ctx, "consent_a")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, again.Status)
	assert.Equal(t, catalog.PermReadBalances, again.Permissions[0])
}

func TestInMemoryStore_ListNewestFirst(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, newConsent(t, "consent_a")))
	require.NoError(t, s.Save(ctx, newConsent(t, "consent_b")))
	require.NoError(t, s.Save(ctx, newConsent(t, "consent_c")))

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, id.ConsentID("consent_c"), all[0].ID)
	assert.Equal(t, id.ConsentID("consent_a"), all[2].ID)
}

func TestInMemoryStore_Update(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	c := newConsent(t, "consent_a")
	require.NoError(t, s.Save(ctx, c))

	t.Run("update persists changes", func(t *testing.T) {
		c.AccessCount = 5
		require.NoError(t, s.Update(ctx, c))
		got, err := s.FindByID(ctx, "consent_a")
		require.NoError(t, err)
		assert.Equal(t, 5, got.AccessCount)
	})

	t.Run("update of a missing record returns the sentinel", func(t *testing.T) {
		missing := newConsent(t, "consent_404")
		assert.ErrorIs(t, s.Update(ctx, missing), sentinel.ErrNotFound)
	})
}
