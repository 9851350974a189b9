package httptransport

import (
	"net/http"
	"strconv"

	"consentry/internal/platform/middleware"
	"consentry/internal/transport/http/shared"
	respond "consentry/internal/transport/http/shared/json"
	dErrors "consentry/pkg/domain-errors"
)

const defaultTrendDays = 14

func (h *Handler) handleStatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reports.CountByStatus(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, counts)
}

func (h *Handler) handleExpiring(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days := h.windowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "days must be a positive integer"))
			return
		}
		days = parsed
	}

	consents, err := h.reports.ExpiringSoon(ctx, days)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, h.toListConsentsResponse(consents, days, middleware.Now(ctx)))
}

func (h *Handler) handleProviderMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.reports.ProviderMetrics(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"providers": metrics})
}

func (h *Handler) handleFunnel(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{"stages": h.reports.Funnel(r.Context())})
}

func (h *Handler) handleTrends(w http.ResponseWriter, r *http.Request) {
	days := defaultTrendDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "days must be a positive integer"))
			return
		}
		days = parsed
	}

	series, err := h.reports.TrendData(r.Context(), days)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"trends": series})
}
