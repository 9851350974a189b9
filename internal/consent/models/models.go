package models

import (
	"time"

	"consentry/internal/catalog"
	id "consentry/pkg/domain"
	dErrors "consentry/pkg/domain-errors"
	"consentry/pkg/timeutil"
)

// Consent is a time-bounded grant of specific permissions over specific
// accounts to one provider.
//
// # Lifecycle Invariants
//
//   - RevokedAt is non-nil if and only if the stored status is revoked
//   - Permissions and AccountIDs are non-empty for the record's lifetime
//   - ExpiresAt is strictly after CreatedAt at creation and after every renewal
//   - AccessCount never decreases
//
// The stored Status field records the last explicit transition. Expiry is
// time-derived, so every time-sensitive read must go through
// EffectiveStatus(now) rather than the stored field; see Status.
type Consent struct {
	ID             id.ConsentID
	ProviderID     id.ProviderID
	UserID         id.UserID
	Status         Status
	Permissions    []catalog.Permission
	AccountIDs     []id.AccountID
	CreatedAt      time.Time
	AuthorizedAt   *time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	LastAccessedAt *time.Time
	AccessCount    int
}

// New creates a Consent with domain invariant checks. The caller supplies
// the clock; authorization sets status active immediately (no pending hold).
func New(consentID id.ConsentID, providerID id.ProviderID, userID id.UserID, permissions []catalog.Permission, accountIDs []id.AccountID, now time.Time, ttl time.Duration) (*Consent, error) {
	if consentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "consent ID required")
	}
	if providerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "provider ID required")
	}
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user ID required")
	}
	if len(permissions) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "permissions must not be empty")
	}
	if len(accountIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "account references must not be empty")
	}
	if ttl <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "expiry must be after creation time")
	}
	authorizedAt := now
	return &Consent{
		ID:           consentID,
		ProviderID:   providerID,
		UserID:       userID,
		Status:       StatusActive,
		Permissions:  append([]catalog.Permission{}, permissions...),
		AccountIDs:   append([]id.AccountID{}, accountIDs...),
		CreatedAt:    now,
		AuthorizedAt: &authorizedAt,
		ExpiresAt:    now.Add(ttl),
	}, nil
}

// EffectiveStatus reports the lifecycle state at the provided time. Terminal
// states win over time-derived expiry; an active consent whose expiry has
// passed reads as expired without any stored-field mutation.
func (c *Consent) EffectiveStatus(now time.Time) Status {
	switch c.Status {
	case StatusRevoked, StatusRejected:
		return c.Status
	case StatusActive, StatusAuthorized:
		if timeutil.IsExpiredByTime(c.ExpiresAt, now) {
			return StatusExpired
		}
		return c.Status
	default:
		return c.Status
	}
}

// IsTerminal reports whether the stored status admits no further transitions.
func (c *Consent) IsTerminal() bool {
	return c.Status == StatusRevoked || c.Status == StatusRejected
}

// IsExpiringSoon reports whether the consent is active and expires within the window.
func (c *Consent) IsExpiringSoon(now time.Time, windowDays int) bool {
	return c.EffectiveStatus(now) == StatusActive &&
		timeutil.IsExpiringSoon(c.ExpiresAt, now, windowDays)
}

// LastActivityAt is the most recent of last access and creation. Used by
// provider aggregation; always defined since CreatedAt is mandatory.
func (c *Consent) LastActivityAt() time.Time {
	if c.LastAccessedAt != nil && c.LastAccessedAt.After(c.CreatedAt) {
		return *c.LastAccessedAt
	}
	return c.CreatedAt
}

// Clone returns a deep copy so store snapshots can be handed out without
// aliasing engine-owned state.
func (c *Consent) Clone() *Consent {
	cp := *c
	cp.Permissions = append([]catalog.Permission{}, c.Permissions...)
	cp.AccountIDs = append([]id.AccountID{}, c.AccountIDs...)
	if c.AuthorizedAt != nil {
		t := *c.AuthorizedAt
		cp.AuthorizedAt = &t
	}
	if c.RevokedAt != nil {
		t := *c.RevokedAt
		cp.RevokedAt = &t
	}
	if c.LastAccessedAt != nil {
		t := *c.LastAccessedAt
		cp.LastAccessedAt = &t
	}
	return &cp
}

// Filter narrows consent listings by provider and effective status.
type Filter struct {
	ProviderID *id.ProviderID
	Status     *Status
}
