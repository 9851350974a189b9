package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"consentry/internal/consent/models"
	"consentry/internal/platform/middleware"
	"consentry/internal/transport/http/shared"
	respond "consentry/internal/transport/http/shared/json"
	id "consentry/pkg/domain"
	dErrors "consentry/pkg/domain-errors"
)

func (h *Handler) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req AuthorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode authorize request",
			"request_id", requestID,
			"error", err,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	consent, err := h.consent.Authorize(ctx, req.UserID, req.TppID, req.Permissions, req.AccountIDs)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to authorize consent",
			"request_id", requestID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, h.toConsentResponse(consent, h.windowDays, middleware.Now(ctx)))
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	consentID := id.ConsentID(chi.URLParam(r, "id"))

	if err := h.consent.Revoke(ctx, consentID); err != nil {
		h.logger.WarnContext(ctx, "failed to revoke consent",
			"request_id", middleware.GetRequestID(ctx),
			"consent_id", consentID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}
	h.writeConsentSnapshot(w, r, consentID)
}

func (h *Handler) handleRenew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	consentID := id.ConsentID(chi.URLParam(r, "id"))

	if err := h.consent.Renew(ctx, consentID); err != nil {
		h.logger.WarnContext(ctx, "failed to renew consent",
			"request_id", middleware.GetRequestID(ctx),
			"consent_id", consentID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}
	h.writeConsentSnapshot(w, r, consentID)
}

func (h *Handler) handleRecordAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	consentID := id.ConsentID(chi.URLParam(r, "id"))

	var req AccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Endpoint == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "endpoint required"))
		return
	}

	if err := h.consent.RecordAccess(ctx, consentID, req.Endpoint, req.Details); err != nil {
		h.logger.WarnContext(ctx, "failed to record access",
			"request_id", middleware.GetRequestID(ctx),
			"consent_id", consentID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}
	h.writeConsentSnapshot(w, r, consentID)
}

func (h *Handler) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	h.writeConsentSnapshot(w, r, id.ConsentID(chi.URLParam(r, "id")))
}

func (h *Handler) handleListConsents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := &models.Filter{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.Status(raw)
		if !status.IsValid() {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid status filter"))
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("tppId"); raw != "" {
		provider := id.ProviderID(raw)
		filter.ProviderID = &provider
	}

	consents, err := h.consent.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list consents",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, h.toListConsentsResponse(consents, h.windowDays, middleware.Now(ctx)))
}

func (h *Handler) handleConsentActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	consentID := id.ConsentID(chi.URLParam(r, "id"))

	entries, err := h.consent.ActivityFor(ctx, consentID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, toActivityResponse(entries, middleware.Now(ctx)))
}

// writeConsentSnapshot re-reads the consent and responds with its current
// state, so every mutation returns the same shape as a GET.
func (h *Handler) writeConsentSnapshot(w http.ResponseWriter, r *http.Request, consentID id.ConsentID) {
	ctx := r.Context()
	consent, err := h.consent.GetByID(ctx, consentID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, h.toConsentResponse(consent, h.windowDays, middleware.Now(ctx)))
}
