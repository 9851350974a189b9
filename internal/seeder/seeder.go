// Package seeder populates the in-memory stores with the fixed demo dataset
// at process start: eight consents across the TPP directory (four active, two
// expiring within the week, one revoked, one expired) and their activity
// trail, all timestamped relative to the seed clock.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"consentry/internal/activity"
	"consentry/internal/catalog"
	"consentry/internal/consent/models"
	id "consentry/pkg/domain"
	"consentry/pkg/timeutil"
)

// ConsentStore defines methods for seeding consents.
type ConsentStore interface {
	Save(ctx context.Context, consent *models.Consent) error
}

// ActivityStore defines methods for seeding activity entries.
type ActivityStore interface {
	Append(ctx context.Context, entry activity.Entry) error
}

// Seeder populates in-memory stores with demo data.
type Seeder struct {
	consents   ConsentStore
	activities ActivityStore
	logger     *slog.Logger
}

func New(consents ConsentStore, activities ActivityStore, logger *slog.Logger) *Seeder {
	return &Seeder{
		consents:   consents,
		activities: activities,
		logger:     logger,
	}
}

// SeedAll populates all stores with demo data relative to now.
func (s *Seeder) SeedAll(ctx context.Context, now time.Time) error {
	s.logger.Info("seeding demo data...")

	consents := demoConsents(now)
	for _, c := range consents {
		if err := s.consents.Save(ctx, c); err != nil {
			return fmt.Errorf("failed to seed consent %s: %w", c.ID, err)
		}
	}

	entries := demoActivity(now)
	// Oldest first so the prepend-ordered stores read newest-first.
	for i := len(entries) - 1; i >= 0; i-- {
		if err := s.activities.Append(ctx, entries[i]); err != nil {
			return fmt.Errorf("failed to seed activity entry %s: %w", entries[i].ID, err)
		}
	}

	s.logger.Info("demo data seeded successfully",
		"consents", len(consents),
		"activity_entries", len(entries),
	)
	return nil
}

func daysAgo(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * timeutil.Day)
}

func daysFromNow(now time.Time, days int) time.Time {
	return now.Add(time.Duration(days) * timeutil.Day)
}

func hoursAgo(now time.Time, hours int) time.Time {
	return now.Add(-time.Duration(hours) * time.Hour)
}

func ptr(t time.Time) *time.Time { return &t }

func demoConsents(now time.Time) []*models.Consent {
	return []*models.Consent{
		// Active consents.
		{
			ID:         "consent-001",
			ProviderID: "tpp-001", // Budget Buddy
			UserID:     "user-001",
			Status:     models.StatusActive,
			Permissions: []catalog.Permission{
				catalog.PermReadAccountsBasic, catalog.PermReadAccountsDetail,
				catalog.PermReadBalances, catalog.PermReadTransactionsDetail,
			},
			AccountIDs:     []id.AccountID{"acc-001", "acc-002"},
			CreatedAt:      daysAgo(now, 45),
			AuthorizedAt:   ptr(daysAgo(now, 45)),
			ExpiresAt:      daysFromNow(now, 45),
			LastAccessedAt: ptr(hoursAgo(now, 2)),
			AccessCount:    127,
		},
		{
			ID:         "consent-002",
			ProviderID: "tpp-003", // WealthView
			UserID:     "user-001",
			Status:     models.StatusActive,
			Permissions: []catalog.Permission{
				catalog.PermReadAccountsBasic, catalog.PermReadBalances,
			},
			AccountIDs:     []id.AccountID{"acc-001", "acc-002"},
			CreatedAt:      daysAgo(now, 30),
			AuthorizedAt:   ptr(daysAgo(now, 30)),
			ExpiresAt:      daysFromNow(now, 60),
			LastAccessedAt: ptr(daysAgo(now, 3)),
			AccessCount:    45,
		},
		{
			ID:         "consent-003",
			ProviderID: "tpp-004", // InvoiceFlow
			UserID:     "user-001",
			Status:     models.StatusActive,
			Permissions: []catalog.Permission{
				catalog.PermReadAccountsDetail, catalog.PermReadTransactionsDetail,
				catalog.PermInitiatePayments,
			},
			AccountIDs:     []id.AccountID{"acc-003"},
			CreatedAt:      daysAgo(now, 60),
			AuthorizedAt:   ptr(daysAgo(now, 60)),
			ExpiresAt:      daysFromNow(now, 30),
			LastAccessedAt: ptr(hoursAgo(now, 5)),
			AccessCount:    312,
		},
		{
			ID:         "consent-004",
			ProviderID: "tpp-006", // Tink
			UserID:     "user-001",
			Status:     models.StatusActive,
			Permissions: []catalog.Permission{
				catalog.PermReadAccountsBasic, catalog.PermReadBalances,
				catalog.PermReadTransactionsBasic,
			},
			AccountIDs:     []id.AccountID{"acc-001"},
			CreatedAt:      daysAgo(now, 15),
			AuthorizedAt:   ptr(daysAgo(now, 15)),
			ExpiresAt:      daysFromNow(now, 75),
			LastAccessedAt: ptr(daysAgo(now, 2)),
			AccessCount:    28,
		},

		// Expiring within the week.
		{
			ID:         "consent-005",
			ProviderID: "tpp-007", // Plaid
			UserID:     "user-001",
			Status:     models.StatusActive,
			Permissions: []catalog.Permission{
				catalog.PermReadAccountsBasic, catalog.PermReadAccountsDetail,
				catalog.PermReadBalances,
			},
			AccountIDs:     []id.AccountID{"acc-001", "acc-002", "acc-003"},
			CreatedAt:      daysAgo(now, 85),
			AuthorizedAt:   ptr(daysAgo(now, 85)),
			ExpiresAt:      daysFromNow(now, 5),
			LastAccessedAt: ptr(hoursAgo(now, 18)),
			AccessCount:    203,
		},
		{
			ID:         "consent-008",
			ProviderID: "tpp-008", // TrueLayer
			UserID:     "user-001",
			Status:     models.StatusActive,
			Permissions: []catalog.Permission{
				catalog.PermReadAccountsBasic, catalog.PermReadBalances,
				catalog.PermInitiatePayments,
			},
			AccountIDs:     []id.AccountID{"acc-001"},
			CreatedAt:      daysAgo(now, 87),
			AuthorizedAt:   ptr(daysAgo(now, 87)),
			ExpiresAt:      daysFromNow(now, 3),
			LastAccessedAt: ptr(daysAgo(now, 1)),
			AccessCount:    156,
		},

		// Revoked.
		{
			ID:         "consent-006",
			ProviderID: "tpp-005", // LendSmart
			UserID:     "user-001",
			Status:     models.StatusRevoked,
			Permissions: []catalog.Permission{
				catalog.PermReadAccountsDetail, catalog.PermReadTransactionsDetail,
			},
			AccountIDs:     []id.AccountID{"acc-001"},
			CreatedAt:      daysAgo(now, 120),
			AuthorizedAt:   ptr(daysAgo(now, 120)),
			ExpiresAt:      daysAgo(now, 30),
			RevokedAt:      ptr(daysAgo(now, 60)),
			LastAccessedAt: ptr(daysAgo(now, 60)),
			AccessCount:    89,
		},

		// Expired.
		{
			ID:             "consent-007",
			ProviderID:     "tpp-002", // QuickPay Pro
			UserID:         "user-001",
			Status:         models.StatusExpired,
			Permissions:    []catalog.Permission{catalog.PermInitiatePayments},
			AccountIDs:     []id.AccountID{"acc-001"},
			CreatedAt:      daysAgo(now, 100),
			AuthorizedAt:   ptr(daysAgo(now, 100)),
			ExpiresAt:      daysAgo(now, 10),
			LastAccessedAt: ptr(daysAgo(now, 15)),
			AccessCount:    42,
		},
	}
}

func demoActivity(now time.Time) []activity.Entry {
	return []activity.Entry{
		{
			ID:         "log-001",
			ConsentID:  "consent-001",
			ProviderID: "tpp-001",
			Action:     activity.ActionAccessed,
			Timestamp:  hoursAgo(now, 2),
			Details:    "Retrieved account balances",
			Endpoint:   "GET /accounts/{accountId}/balances",
		},
		{
			ID:         "log-002",
			ConsentID:  "consent-001",
			ProviderID: "tpp-001",
			Action:     activity.ActionAccessed,
			Timestamp:  hoursAgo(now, 2),
			Details:    "Retrieved transactions (last 30 days)",
			Endpoint:   "GET /accounts/{accountId}/transactions",
		},
		{
			ID:         "log-003",
			ConsentID:  "consent-003",
			ProviderID: "tpp-004",
			Action:     activity.ActionAccessed,
			Timestamp:  hoursAgo(now, 5),
			Details:    "Initiated payment of €1,250.00",
			Endpoint:   "POST /payments",
		},
		{
			ID:         "log-004",
			ConsentID:  "consent-003",
			ProviderID: "tpp-004",
			Action:     activity.ActionAccessed,
			Timestamp:  daysAgo(now, 1),
			Details:    "Retrieved transaction history",
			Endpoint:   "GET /accounts/{accountId}/transactions",
		},
		{
			ID:         "log-005",
			ConsentID:  "consent-005",
			ProviderID: "tpp-007",
			Action:     activity.ActionAccessed,
			Timestamp:  hoursAgo(now, 18),
			Details:    "Retrieved account list",
			Endpoint:   "GET /accounts",
		},
		{
			ID:         "log-006",
			ConsentID:  "consent-006",
			ProviderID: "tpp-005",
			Action:     activity.ActionRevoked,
			Timestamp:  daysAgo(now, 60),
			Details:    "User revoked consent",
		},
		{
			ID:         "log-007",
			ConsentID:  "consent-001",
			ProviderID: "tpp-001",
			Action:     activity.ActionAuthorized,
			Timestamp:  daysAgo(now, 45),
			Details:    "User authorized new consent",
		},
		{
			ID:         "log-008",
			ConsentID:  "consent-002",
			ProviderID: "tpp-003",
			Action:     activity.ActionAccessed,
			Timestamp:  daysAgo(now, 3),
			Details:    "Retrieved account balances",
			Endpoint:   "GET /accounts/{accountId}/balances",
		},
	}
}
