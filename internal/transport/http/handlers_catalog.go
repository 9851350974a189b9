package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"consentry/internal/catalog"
	"consentry/internal/transport/http/shared"
	respond "consentry/internal/transport/http/shared/json"
	id "consentry/pkg/domain"
	dErrors "consentry/pkg/domain-errors"
)

func (h *Handler) handleListProviders(w http.ResponseWriter, r *http.Request) {
	providers := h.providers.All()
	if raw := r.URL.Query().Get("category"); raw != "" {
		providers = h.providers.ByCategory(catalog.ProviderCategory(raw))
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"providers": providers})
}

func (h *Handler) handleGetProvider(w http.ResponseWriter, r *http.Request) {
	providerID := id.ProviderID(chi.URLParam(r, "id"))
	provider, ok := h.providers.ByID(providerID)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "provider not found"))
		return
	}
	respond.WriteJSON(w, http.StatusOK, provider)
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{"accounts": toAccountResponses(h.accounts.All())})
}

func (h *Handler) handleListPermissions(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{"permissions": catalog.AllPermissions()})
}
