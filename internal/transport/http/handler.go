// Package httptransport is the thin HTTP layer over the lifecycle and
// reporting services. Handlers decode, delegate, and encode; business rules
// stay in the services.
package httptransport

import (
	"context"
	"log/slog"

	"consentry/internal/activity"
	"consentry/internal/catalog"
	"consentry/internal/consent/models"
	"consentry/internal/reporting"
	id "consentry/pkg/domain"
)

// ConsentService defines the lifecycle operations the transport exposes.
type ConsentService interface {
	Authorize(ctx context.Context, userID id.UserID, providerID id.ProviderID, permissions []catalog.Permission, accountIDs []id.AccountID) (*models.Consent, error)
	Revoke(ctx context.Context, consentID id.ConsentID) error
	Renew(ctx context.Context, consentID id.ConsentID) error
	RecordAccess(ctx context.Context, consentID id.ConsentID, endpoint, details string) error
	GetByID(ctx context.Context, consentID id.ConsentID) (*models.Consent, error)
	List(ctx context.Context, filter *models.Filter) ([]*models.Consent, error)
	ActivityFor(ctx context.Context, consentID id.ConsentID) ([]activity.Entry, error)
}

// ReportingService defines the derived-metrics operations the transport exposes.
type ReportingService interface {
	CountByStatus(ctx context.Context) (reporting.StatusCounts, error)
	ExpiringSoon(ctx context.Context, windowDays int) ([]*models.Consent, error)
	ProviderMetrics(ctx context.Context) ([]reporting.ProviderMetrics, error)
	Funnel(ctx context.Context) []reporting.FunnelStage
	TrendData(ctx context.Context, days int) ([]reporting.TrendPoint, error)
}

// Handler handles all public endpoints.
type Handler struct {
	consent    ConsentService
	reports    ReportingService
	providers  *catalog.ProviderDirectory
	accounts   *catalog.AccountDirectory
	windowDays int
	logger     *slog.Logger
}

// NewHandler creates the HTTP handler set. windowDays is the expiring-soon
// horizon used for derived response fields and the default report window.
func NewHandler(consent ConsentService, reports ReportingService, providers *catalog.ProviderDirectory, accounts *catalog.AccountDirectory, windowDays int, logger *slog.Logger) *Handler {
	return &Handler{
		consent:    consent,
		reports:    reports,
		providers:  providers,
		accounts:   accounts,
		windowDays: windowDays,
		logger:     logger,
	}
}
