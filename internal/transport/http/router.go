package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"consentry/internal/platform/middleware"
	respond "consentry/internal/transport/http/shared/json"
)

// NewRouter wires all public endpoints with the middleware stack. RequestTime
// runs before the handlers so every operation in one request shares a clock.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RequestTime)

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		r.Post("/consents", h.handleAuthorize)
		r.Post("/consents/{id}/revoke", h.handleRevoke)
		r.Post("/consents/{id}/renew", h.handleRenew)
		r.Post("/consents/{id}/access", h.handleRecordAccess)
	})

	r.Get("/consents", h.handleListConsents)
	r.Get("/consents/{id}", h.handleGetConsent)
	r.Get("/consents/{id}/activity", h.handleConsentActivity)

	r.Get("/reports/status-counts", h.handleStatusCounts)
	r.Get("/reports/expiring", h.handleExpiring)
	r.Get("/reports/providers", h.handleProviderMetrics)
	r.Get("/reports/funnel", h.handleFunnel)
	r.Get("/reports/trends", h.handleTrends)

	r.Get("/catalog/providers", h.handleListProviders)
	r.Get("/catalog/providers/{id}", h.handleGetProvider)
	r.Get("/catalog/accounts", h.handleListAccounts)
	r.Get("/catalog/permissions", h.handleListPermissions)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
