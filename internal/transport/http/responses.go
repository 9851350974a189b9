package httptransport

import (
	"time"

	"consentry/internal/activity"
	"consentry/internal/catalog"
	"consentry/internal/consent/models"
	id "consentry/pkg/domain"
	"consentry/pkg/timeutil"
)

// ConsentResponse is a point-in-time snapshot of a consent. Status is the
// effective status at the request clock; the derived expiry fields save
// clients from re-implementing the day arithmetic.
type ConsentResponse struct {
	ID              id.ConsentID         `json:"id"`
	TppID           id.ProviderID        `json:"tppId"`
	TppName         string               `json:"tppName,omitempty"`
	UserID          id.UserID            `json:"userId"`
	Status          models.Status        `json:"status"`
	Permissions     []catalog.Permission `json:"permissions"`
	AccountIDs      []id.AccountID       `json:"accountIds"`
	CreatedAt       time.Time            `json:"createdAt"`
	AuthorizedAt    *time.Time           `json:"authorizedAt,omitempty"`
	ExpiresAt       time.Time            `json:"expiresAt"`
	RevokedAt       *time.Time           `json:"revokedAt,omitempty"`
	LastAccessedAt  *time.Time           `json:"lastAccessedAt,omitempty"`
	AccessCount     int                  `json:"accessCount"`
	DaysUntilExpiry int                  `json:"daysUntilExpiry"`
	IsExpiringSoon  bool                 `json:"isExpiringSoon"`
}

// ListConsentsResponse is returned when listing consents.
type ListConsentsResponse struct {
	Consents []ConsentResponse `json:"consents"`
	Total    int               `json:"total"`
}

// ActivityResponse is returned for a consent's audit trail, newest first.
type ActivityResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
}

// ActivityEntryResponse is one audit trail entry.
type ActivityEntryResponse struct {
	ID        id.LogID        `json:"id"`
	ConsentID id.ConsentID    `json:"consentId"`
	TppID     id.ProviderID   `json:"tppId"`
	Action    activity.Action `json:"action"`
	Timestamp time.Time       `json:"timestamp"`
	Relative  string          `json:"relativeTime"`
	Details   string          `json:"details,omitempty"`
	Endpoint  string          `json:"endpoint,omitempty"`
}

// AccountResponse carries an account with display-formatted IBAN variants.
type AccountResponse struct {
	catalog.Account
	FormattedIBAN string `json:"formattedIban"`
	MaskedIBAN    string `json:"maskedIban"`
}

func (h *Handler) toConsentResponse(c *models.Consent, windowDays int, now time.Time) ConsentResponse {
	resp := ConsentResponse{
		ID:              c.ID,
		TppID:           c.ProviderID,
		UserID:          c.UserID,
		Status:          c.EffectiveStatus(now),
		Permissions:     c.Permissions,
		AccountIDs:      c.AccountIDs,
		CreatedAt:       c.CreatedAt,
		AuthorizedAt:    c.AuthorizedAt,
		ExpiresAt:       c.ExpiresAt,
		RevokedAt:       c.RevokedAt,
		LastAccessedAt:  c.LastAccessedAt,
		AccessCount:     c.AccessCount,
		DaysUntilExpiry: timeutil.DaysUntil(c.ExpiresAt, now),
		IsExpiringSoon:  c.IsExpiringSoon(now, windowDays),
	}
	if p, ok := h.providers.ByID(c.ProviderID); ok {
		resp.TppName = p.Name
	}
	return resp
}

func (h *Handler) toListConsentsResponse(consents []*models.Consent, windowDays int, now time.Time) ListConsentsResponse {
	out := make([]ConsentResponse, 0, len(consents))
	for _, c := range consents {
		out = append(out, h.toConsentResponse(c, windowDays, now))
	}
	return ListConsentsResponse{Consents: out, Total: len(out)}
}

func toActivityResponse(entries []activity.Entry, now time.Time) ActivityResponse {
	out := make([]ActivityEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityEntryResponse{
			ID:        e.ID,
			ConsentID: e.ConsentID,
			TppID:     e.ProviderID,
			Action:    e.Action,
			Timestamp: e.Timestamp,
			Relative:  timeutil.RelativeTime(e.Timestamp, now),
			Details:   e.Details,
			Endpoint:  e.Endpoint,
		})
	}
	return ActivityResponse{Entries: out}
}

func toAccountResponses(accounts []catalog.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountResponse{
			Account:       a,
			FormattedIBAN: catalog.FormatIBAN(a.IBAN),
			MaskedIBAN:    catalog.MaskIBAN(a.IBAN),
		})
	}
	return out
}
