package activity

import (
	"time"

	id "consentry/pkg/domain"
)

// Action describes what happened to a consent.
type Action string

const (
	ActionCreated    Action = "created"
	ActionAuthorized Action = "authorized"
	ActionAccessed   Action = "accessed"
	ActionRevoked    Action = "revoked"
	ActionExpired    Action = "expired"
	ActionRenewed    Action = "renewed"
)

// IsValid checks if the action is one of the supported enum values.
func (a Action) IsValid() bool {
	switch a {
	case ActionCreated, ActionAuthorized, ActionAccessed, ActionRevoked, ActionExpired, ActionRenewed:
		return true
	}
	return false
}

// Entry is an immutable audit record correlated to one consent. The provider
// id is denormalized at event time so the trail stays meaningful even if the
// consent is later inspected in isolation.
type Entry struct {
	ID         id.LogID      `json:"id"`
	ConsentID  id.ConsentID  `json:"consentId"`
	ProviderID id.ProviderID `json:"tppId"`
	Action     Action        `json:"action"`
	Timestamp  time.Time     `json:"timestamp"`
	Details    string        `json:"details"`
	// Endpoint is set only for access events.
	Endpoint string `json:"endpoint,omitempty"`
}
