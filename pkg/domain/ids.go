// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"fmt"

	"github.com/google/uuid"

	dErrors "consentry/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a ProviderID where a ConsentID
// is expected. Catalog entities (providers, accounts, users) carry fixture-style
// ids such as "tpp-001"; generated entities (consents, log entries) carry
// prefixed UUIDs so uniqueness never depends on wall-clock timing.
type (
	ConsentID  string
	ProviderID string
	UserID     string
	AccountID  string
	LogID      string
)

const (
	consentIDPrefix = "consent_"
	logIDPrefix     = "log_"
)

// NewConsentID generates a collision-resistant consent identifier.
func NewConsentID() ConsentID {
	return ConsentID(fmt.Sprintf("%s%s", consentIDPrefix, uuid.New().String()))
}

// NewLogID generates a collision-resistant activity log identifier.
func NewLogID() LogID {
	return LogID(fmt.Sprintf("%s%s", logIDPrefix, uuid.New().String()))
}

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseConsentID(s string) (ConsentID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "consent ID cannot be empty")
	}
	return ConsentID(s), nil
}

func ParseProviderID(s string) (ProviderID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "provider ID cannot be empty")
	}
	return ProviderID(s), nil
}

func ParseAccountID(s string) (AccountID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "account ID cannot be empty")
	}
	return AccountID(s), nil
}

// String methods - for logging and debugging.

func (id ConsentID) String() string  { return string(id) }
func (id ProviderID) String() string { return string(id) }
func (id UserID) String() string     { return string(id) }
func (id AccountID) String() string  { return string(id) }
func (id LogID) String() string      { return string(id) }

// IsNil checks - used for service-layer validation.

func (id ConsentID) IsNil() bool  { return id == "" }
func (id ProviderID) IsNil() bool { return id == "" }
func (id UserID) IsNil() bool     { return id == "" }
func (id AccountID) IsNil() bool  { return id == "" }
func (id LogID) IsNil() bool      { return id == "" }
