package service

// Unit tests for the consent lifecycle engine.
//
// These tests enforce invariants, edge cases, and error propagation across
// the store boundary using mocks. Happy-path flows against real stores live
// in internal/consent/integration_test.go.

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"consentry/internal/activity"
	"consentry/internal/catalog"
	"consentry/internal/consent/metrics"
	"consentry/internal/consent/models"
	"consentry/internal/consent/service/mocks"
	"consentry/internal/platform/middleware"
	"consentry/internal/sentinel"
	id "consentry/pkg/domain"
	dErrors "consentry/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockStore     *mocks.MockStore
	service       *Service
	activityStore *activity.InMemoryStore
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	s.activityStore = activity.NewInMemoryStore()
	recorder := activity.NewRecorder(s.activityStore)
	s.service = NewService(
		s.mockStore,
		catalog.NewProviderDirectory(catalog.DefaultProviders()),
		catalog.NewAccountDirectory(catalog.DefaultAccounts()),
		recorder,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithConsentTTL(90*24*time.Hour),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// ctxAt pins the request clock so time-derived assertions are deterministic.
func ctxAt(t time.Time) context.Context {
	return middleware.WithTime(context.Background(), t)
}

func (s *ServiceSuite) newActiveConsent(now time.Time) *models.Consent {
	consent, err := models.New(
		id.NewConsentID(),
		"tpp-001",
		"user-001",
		[]catalog.Permission{catalog.PermReadAccountsBasic},
		[]id.AccountID{"acc-001"},
		now,
		90*24*time.Hour,
	)
	s.Require().NoError(err)
	return consent
}

// =============================================================================
// Authorize - Validation & Error Propagation
// =============================================================================

// TestAuthorize_ValidationErrors verifies domain error code mapping for invalid input.
// Invariant: A consent can never be created with empty permissions, empty accounts,
// or references to unknown catalog entries.
func (s *ServiceSuite) TestAuthorize_ValidationErrors() {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	perms := []catalog.Permission{catalog.PermReadAccountsBasic}
	accounts := []id.AccountID{"acc-001"}

	s.T().Run("missing user returns CodeInvalidInput", func(t *testing.T) {
		_, err := s.service.Authorize(ctxAt(now), "", "tpp-001", perms, accounts)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.T().Run("empty permissions returns CodeInvalidInput", func(t *testing.T) {
		_, err := s.service.Authorize(ctxAt(now), "user-001", "tpp-001", nil, accounts)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.T().Run("empty accounts returns CodeInvalidInput", func(t *testing.T) {
		_, err := s.service.Authorize(ctxAt(now), "user-001", "tpp-001", perms, nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.T().Run("unknown permission returns CodeInvalidInput", func(t *testing.T) {
		_, err := s.service.Authorize(ctxAt(now), "user-001", "tpp-001", []catalog.Permission{"ReadEverything"}, accounts)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.T().Run("unknown provider returns CodeNotFound", func(t *testing.T) {
		_, err := s.service.Authorize(ctxAt(now), "user-001", "tpp-404", perms, accounts)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.T().Run("unknown account returns CodeNotFound", func(t *testing.T) {
		_, err := s.service.Authorize(ctxAt(now), "user-001", "tpp-001", perms, []id.AccountID{"acc-404"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// TestAuthorize_CreatesActiveConsent verifies the consent lands active with the
// full TTL measured from the request clock, and that the audit trail records it.
func (s *ServiceSuite) TestAuthorize_CreatesActiveConsent() {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.mockStore.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(nil)

	consent, err := s.service.Authorize(ctxAt(now), "user-001", "tpp-001",
		[]catalog.Permission{catalog.PermReadAccountsBasic, catalog.PermReadBalances},
		[]id.AccountID{"acc-001", "acc-002"},
	)
	s.Require().NoError(err)
	s.Equal(models.StatusActive, consent.Status)
	s.Equal(now, consent.CreatedAt)
	s.Require().NotNil(consent.AuthorizedAt)
	s.Equal(now, *consent.AuthorizedAt)
	s.Equal(now.Add(90*24*time.Hour), consent.ExpiresAt)
	s.Zero(consent.AccessCount)

	entries, lErr := s.activityStore.ListByConsent(context.Background(), consent.ID)
	s.Require().NoError(lErr)
	s.Require().Len(entries, 1)
	s.Equal(activity.ActionAuthorized, entries[0].Action)
	s.Equal(now, entries[0].Timestamp)
}

// TestAuthorize_StoreErrorPropagation verifies store failures surface as CodeInternal.
func (s *ServiceSuite) TestAuthorize_StoreErrorPropagation() {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.mockStore.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	_, err := s.service.Authorize(ctxAt(now), "user-001", "tpp-001",
		[]catalog.Permission{catalog.PermReadAccountsBasic},
		[]id.AccountID{"acc-001"},
	)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

// =============================================================================
// Revoke - State Guards
// =============================================================================

// TestRevoke_StateGuards verifies terminal states refuse revocation and absent
// consents are reported, never silently ignored.
// Invariant: RevokedAt is stamped exactly once.
func (s *ServiceSuite) TestRevoke_StateGuards() {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.T().Run("missing consent returns CodeNotFound", func(t *testing.T) {
		s.mockStore.EXPECT().
			FindByID(gomock.Any(), id.ConsentID("consent_missing")).
			Return(nil, sentinel.ErrNotFound)

		err := s.service.Revoke(ctxAt(now), "consent_missing")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.T().Run("already revoked returns CodeConflict", func(t *testing.T) {
		consent := s.newActiveConsent(now.Add(-time.Hour))
		revokedAt := now.Add(-30 * time.Minute)
		consent.Status = models.StatusRevoked
		consent.RevokedAt = &revokedAt

		s.mockStore.EXPECT().
			FindByID(gomock.Any(), consent.ID).
			Return(consent, nil)

		err := s.service.Revoke(ctxAt(now), consent.ID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		assert.Equal(t, revokedAt, *consent.RevokedAt, "revocation timestamp must not be re-stamped")
	})

	s.T().Run("active consent is revoked and stamped", func(t *testing.T) {
		consent := s.newActiveConsent(now.Add(-time.Hour))

		s.mockStore.EXPECT().
			FindByID(gomock.Any(), consent.ID).
			Return(consent, nil)
		s.mockStore.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		err := s.service.Revoke(ctxAt(now), consent.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRevoked, consent.Status)
		require.NotNil(t, consent.RevokedAt)
		assert.Equal(t, now, *consent.RevokedAt)
	})

	s.T().Run("time-expired consent can still be revoked", func(t *testing.T) {
		consent := s.newActiveConsent(now.Add(-100 * 24 * time.Hour))
		require.Equal(t, models.StatusExpired, consent.EffectiveStatus(now))

		s.mockStore.EXPECT().
			FindByID(gomock.Any(), consent.ID).
			Return(consent, nil)
		s.mockStore.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		err := s.service.Revoke(ctxAt(now), consent.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRevoked, consent.Status)
	})
}

// =============================================================================
// Renew - State Guards
// =============================================================================

// TestRenew_StateGuards verifies renewal extends active and time-expired
// consents but never resurrects terminal ones.
func (s *ServiceSuite) TestRenew_StateGuards() {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.T().Run("revoked consent returns CodeConflict", func(t *testing.T) {
		consent := s.newActiveConsent(now.Add(-time.Hour))
		consent.Status = models.StatusRevoked
		consent.RevokedAt = &now

		s.mockStore.EXPECT().
			FindByID(gomock.Any(), consent.ID).
			Return(consent, nil)

		err := s.service.Renew(ctxAt(now), consent.ID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.T().Run("time-expired consent is restored to active", func(t *testing.T) {
		consent := s.newActiveConsent(now.Add(-100 * 24 * time.Hour))
		require.Equal(t, models.StatusExpired, consent.EffectiveStatus(now))

		s.mockStore.EXPECT().
			FindByID(gomock.Any(), consent.ID).
			Return(consent, nil)
		s.mockStore.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		err := s.service.Renew(ctxAt(now), consent.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, consent.EffectiveStatus(now))
		assert.Equal(t, now.Add(90*24*time.Hour), consent.ExpiresAt)
	})

	s.T().Run("active consent expiry is measured from now, not stacked", func(t *testing.T) {
		consent := s.newActiveConsent(now.Add(-10 * 24 * time.Hour))

		s.mockStore.EXPECT().
			FindByID(gomock.Any(), consent.ID).
			Return(consent, nil)
		s.mockStore.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		err := s.service.Renew(ctxAt(now), consent.ID)
		require.NoError(t, err)
		assert.Equal(t, now.Add(90*24*time.Hour), consent.ExpiresAt)
	})
}

// =============================================================================
// RecordAccess - Active-Only Enforcement
// =============================================================================

// TestRecordAccess_ActiveOnly verifies data access is refused for anything but
// an effectively active consent, including stale-active past expiry.
func (s *ServiceSuite) TestRecordAccess_ActiveOnly() {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.T().Run("expired-by-time consent returns CodeConflict", func(t *testing.T) {
		consent := s.newActiveConsent(now.Add(-91 * 24 * time.Hour))

		s.mockStore.EXPECT().
			FindByID(gomock.Any(), consent.ID).
			Return(consent, nil)

		err := s.service.RecordAccess(ctxAt(now), consent.ID, "/accounts", "Retrieved account list")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		assert.Zero(t, consent.AccessCount)
	})

	s.T().Run("revoked consent returns CodeConflict", func(t *testing.T) {
		consent := s.newActiveConsent(now.Add(-time.Hour))
		consent.Status = models.StatusRevoked
		consent.RevokedAt = &now

		s.mockStore.EXPECT().
			FindByID(gomock.Any(), consent.ID).
			Return(consent, nil)

		err := s.service.RecordAccess(ctxAt(now), consent.ID, "/accounts", "Retrieved account list")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.T().Run("active consent increments count and stamps last access", func(t *testing.T) {
		consent := s.newActiveConsent(now.Add(-time.Hour))

		s.mockStore.EXPECT().
			FindByID(gomock.Any(), consent.ID).
			Return(consent, nil)
		s.mockStore.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		err := s.service.RecordAccess(ctxAt(now), consent.ID, "/accounts/balances", "Retrieved balances")
		require.NoError(t, err)
		assert.Equal(t, 1, consent.AccessCount)
		require.NotNil(t, consent.LastAccessedAt)
		assert.Equal(t, now, *consent.LastAccessedAt)

		entries, lErr := s.activityStore.ListByConsent(context.Background(), consent.ID)
		require.NoError(t, lErr)
		require.Len(t, entries, 1)
		assert.Equal(t, activity.ActionAccessed, entries[0].Action)
		assert.Equal(t, "/accounts/balances", entries[0].Endpoint)
	})
}

// =============================================================================
// List - Effective-Status Filtering
// =============================================================================

// TestList_FiltersByEffectiveStatus verifies the status filter evaluates
// effective status, so a stale-active record past expiry matches "expired".
func (s *ServiceSuite) TestList_FiltersByEffectiveStatus() {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	fresh := s.newActiveConsent(now.Add(-time.Hour))
	stale := s.newActiveConsent(now.Add(-100 * 24 * time.Hour))
	all := []*models.Consent{fresh, stale}

	s.T().Run("expired filter matches stale-active", func(t *testing.T) {
		s.mockStore.EXPECT().List(gomock.Any()).Return(all, nil)

		status := models.StatusExpired
		out, err := s.service.List(ctxAt(now), &models.Filter{Status: &status})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, stale.ID, out[0].ID)
	})

	s.T().Run("active filter excludes stale-active", func(t *testing.T) {
		s.mockStore.EXPECT().List(gomock.Any()).Return(all, nil)

		status := models.StatusActive
		out, err := s.service.List(ctxAt(now), &models.Filter{Status: &status})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, fresh.ID, out[0].ID)
	})

	s.T().Run("store error propagates as CodeInternal", func(t *testing.T) {
		s.mockStore.EXPECT().List(gomock.Any()).Return(nil, assert.AnError)

		_, err := s.service.List(ctxAt(now), nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

// TestListExpiringSoon_WindowBoundaries verifies the window excludes consents
// already due and those beyond the horizon.
func (s *ServiceSuite) TestListExpiringSoon_WindowBoundaries() {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	inWindow := s.newActiveConsent(now.Add(-85*24*time.Hour - time.Hour))
	beyond := s.newActiveConsent(now.Add(-time.Hour))
	pastDue := s.newActiveConsent(now.Add(-91 * 24 * time.Hour))

	s.mockStore.EXPECT().
		List(gomock.Any()).
		Return([]*models.Consent{inWindow, beyond, pastDue}, nil)

	out, err := s.service.ListExpiringSoon(ctxAt(now), 7)
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal(inWindow.ID, out[0].ID)
}

// =============================================================================
// Metrics
// =============================================================================

// TestLifecycleOperationsFeedMetrics verifies the counters, the active gauge,
// and the latency histogram are all observed by the lifecycle operations.
// A private registry keeps repeated suite runs from colliding.
func (s *ServiceSuite) TestLifecycleOperationsFeedMetrics() {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := metrics.NewWith(prometheus.NewRegistry())
	svc := NewService(
		s.mockStore,
		catalog.NewProviderDirectory(catalog.DefaultProviders()),
		catalog.NewAccountDirectory(catalog.DefaultAccounts()),
		activity.NewRecorder(s.activityStore),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithConsentTTL(90*24*time.Hour),
		WithMetrics(m),
	)

	s.mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	consent, err := svc.Authorize(ctxAt(now), "user-001", "tpp-001",
		[]catalog.Permission{catalog.PermReadAccountsBasic},
		[]id.AccountID{"acc-001"},
	)
	s.Require().NoError(err)

	s.mockStore.EXPECT().FindByID(gomock.Any(), consent.ID).Return(consent.Clone(), nil)
	s.mockStore.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	s.Require().NoError(svc.Revoke(ctxAt(now), consent.ID))

	s.Equal(float64(1), testutil.ToFloat64(m.ConsentsAuthorized.WithLabelValues("tpp-001")))
	s.Equal(float64(1), testutil.ToFloat64(m.ConsentsRevoked.WithLabelValues("tpp-001")))
	s.Equal(float64(0), testutil.ToFloat64(m.ActiveConsents))

	// One histogram child per observed operation: authorize and revoke.
	s.Equal(2, testutil.CollectAndCount(m.OperationLatency))
}
