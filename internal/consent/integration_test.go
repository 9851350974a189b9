package consent_test

// Integration tests wiring the lifecycle engine, real in-memory stores, the
// activity recorder and the reporting service together. The request clock is
// pinned per step so time-derived behavior is deterministic.

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consentry/internal/activity"
	"consentry/internal/catalog"
	"consentry/internal/consent/models"
	"consentry/internal/consent/service"
	"consentry/internal/consent/store"
	"consentry/internal/platform/middleware"
	"consentry/internal/reporting"
	id "consentry/pkg/domain"
	dErrors "consentry/pkg/domain-errors"
)

type fixture struct {
	consentStore  *store.InMemoryStore
	activityStore *activity.InMemoryStore
	engine        *service.Service
	reports       *reporting.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	consentStore := store.NewInMemoryStore()
	activityStore := activity.NewInMemoryStore()
	providers := catalog.NewProviderDirectory(catalog.DefaultProviders())
	accounts := catalog.NewAccountDirectory(catalog.DefaultAccounts())
	engine := service.NewService(consentStore, providers, accounts,
		activity.NewRecorder(activityStore), logger)
	reports := reporting.NewService(consentStore, activityStore, providers, logger)
	return &fixture{
		consentStore:  consentStore,
		activityStore: activityStore,
		engine:        engine,
		reports:       reports,
	}
}

func at(t time.Time) context.Context {
	return middleware.WithTime(context.Background(), t)
}

func TestAuthorizeFlowUpdatesQueriesAndCounts(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	before, err := f.reports.CountByStatus(at(now))
	require.NoError(t, err)

	consent, err := f.engine.Authorize(at(now), "user-001", "tpp-001",
		[]catalog.Permission{catalog.PermReadAccountsBasic, catalog.PermReadBalances},
		[]id.AccountID{"acc-001"},
	)
	require.NoError(t, err)

	found, err := f.engine.GetByID(at(now), consent.ID)
	require.NoError(t, err)
	assert.Equal(t, consent.ID, found.ID)
	assert.Equal(t, models.StatusActive, found.EffectiveStatus(now))

	after, err := f.reports.CountByStatus(at(now))
	require.NoError(t, err)
	assert.Equal(t, before.Active+1, after.Active)
	assert.Equal(t, before.Total+1, after.Total)

	active, err := f.engine.ListActive(at(now))
	require.NoError(t, err)
	require.Len(t, active, 1)

	byProvider, err := f.engine.ListByProvider(at(now), "tpp-001")
	require.NoError(t, err)
	require.Len(t, byProvider, 1)
	assert.Equal(t, consent.ID, byProvider[0].ID)
}

func TestRenewClearsExpiringSoonWindow(t *testing.T) {
	f := newFixture(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	consent, err := f.engine.Authorize(at(created), "user-001", "tpp-002",
		[]catalog.Permission{catalog.PermReadTransactionsBasic},
		[]id.AccountID{"acc-002"},
	)
	require.NoError(t, err)

	// 85 days later the consent has 5 days left and enters the 7-day window.
	now := created.Add(85 * 24 * time.Hour)
	expiring, err := f.engine.ListExpiringSoon(at(now), 7)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, consent.ID, expiring[0].ID)

	require.NoError(t, f.engine.Renew(at(now), consent.ID))

	expiring, err = f.engine.ListExpiringSoon(at(now), 7)
	require.NoError(t, err)
	assert.Empty(t, expiring, "renewed consent must leave the expiring window")

	renewed, err := f.engine.GetByID(at(now), consent.ID)
	require.NoError(t, err)
	assert.Equal(t, now.Add(90*24*time.Hour), renewed.ExpiresAt)

	trail, err := f.engine.ActivityFor(at(now), consent.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, activity.ActionRenewed, trail[0].Action, "newest entry must lead the trail")
	assert.Equal(t, activity.ActionAuthorized, trail[1].Action)
}

func TestRevokeFlowAndAuditTrailOrdering(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	consent, err := f.engine.Authorize(at(now), "user-001", "tpp-003",
		[]catalog.Permission{catalog.PermReadBalances},
		[]id.AccountID{"acc-001", "acc-003"},
	)
	require.NoError(t, err)

	require.NoError(t, f.engine.RecordAccess(at(now.Add(time.Hour)), consent.ID, "/accounts", "Retrieved account list"))
	require.NoError(t, f.engine.RecordAccess(at(now.Add(2*time.Hour)), consent.ID, "/accounts/balances", "Retrieved balances"))

	require.NoError(t, f.engine.Revoke(at(now.Add(3*time.Hour)), consent.ID))

	// Second revocation is refused and leaves the trail untouched.
	err = f.engine.Revoke(at(now.Add(4*time.Hour)), consent.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	revoked, err := f.engine.GetByID(at(now.Add(4*time.Hour)), consent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRevoked, revoked.Status)
	require.NotNil(t, revoked.RevokedAt)
	assert.Equal(t, now.Add(3*time.Hour), *revoked.RevokedAt)
	assert.Equal(t, 2, revoked.AccessCount)

	trail, err := f.engine.ActivityFor(at(now.Add(4*time.Hour)), consent.ID)
	require.NoError(t, err)
	require.Len(t, trail, 4)
	assert.Equal(t, activity.ActionRevoked, trail[0].Action)
	assert.Equal(t, activity.ActionAccessed, trail[1].Action)
	assert.Equal(t, "/accounts/balances", trail[1].Endpoint)
	assert.Equal(t, activity.ActionAccessed, trail[2].Action)
	assert.Equal(t, activity.ActionAuthorized, trail[3].Action)

	// Access under a revoked consent is refused.
	err = f.engine.RecordAccess(at(now.Add(5*time.Hour)), consent.ID, "/accounts", "Retrieved account list")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestLazyExpiryAcrossEngineAndReporting(t *testing.T) {
	f := newFixture(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	consent, err := f.engine.Authorize(at(created), "user-001", "tpp-004",
		[]catalog.Permission{catalog.PermReadAccountsDetail},
		[]id.AccountID{"acc-001"},
	)
	require.NoError(t, err)

	// Past expiry: reads agree on expired while the stored status is untouched.
	now := created.Add(91 * 24 * time.Hour)
	counts, err := f.reports.CountByStatus(at(now))
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Expired)
	assert.Zero(t, counts.Active)

	found, err := f.engine.GetByID(at(now), consent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, found.Status)
	assert.Equal(t, models.StatusExpired, found.EffectiveStatus(now))

	// Renewal brings it back without a new record.
	require.NoError(t, f.engine.Renew(at(now), consent.ID))
	counts, err = f.reports.CountByStatus(at(now))
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Active)
	assert.Zero(t, counts.Expired)
	assert.Equal(t, 1, counts.Total)
}
