package catalog

import (
	id "consentry/pkg/domain"
)

// AuthorizationType is the regulatory category a provider is registered under.
type AuthorizationType string

const (
	AuthAISP     AuthorizationType = "AISP"
	AuthPISP     AuthorizationType = "PISP"
	AuthAISPPISP AuthorizationType = "AISP_PISP"
	AuthCBPII    AuthorizationType = "CBPII"
)

// IsValid checks if the authorization type is a known enum value.
func (a AuthorizationType) IsValid() bool {
	switch a {
	case AuthAISP, AuthPISP, AuthAISPPISP, AuthCBPII:
		return true
	}
	return false
}

// ProviderCategory is the market segment a provider operates in.
type ProviderCategory string

const (
	ProviderBudgeting  ProviderCategory = "budgeting"
	ProviderAccounting ProviderCategory = "accounting"
	ProviderPayments   ProviderCategory = "payments"
	ProviderLending    ProviderCategory = "lending"
	ProviderWealth     ProviderCategory = "wealth"
)

// Provider is a registered third-party provider (TPP). Read-only from the
// lifecycle engine's perspective; the directory is the supplied catalog.
type Provider struct {
	ID                id.ProviderID     `json:"id"`
	Name              string            `json:"name"`
	Website           string            `json:"website"`
	AuthorizationType AuthorizationType `json:"authorizationType"`
	NCARegistration   string            `json:"ncaRegistration"`
	RegisteredCountry string            `json:"registeredCountry"`
	Description       string            `json:"description"`
	Category          ProviderCategory  `json:"category"`
}

// ProviderDirectory is an immutable, id-keyed provider catalog.
type ProviderDirectory struct {
	byID  map[id.ProviderID]Provider
	order []id.ProviderID
}

// NewProviderDirectory builds a directory from a fixed provider set.
func NewProviderDirectory(providers []Provider) *ProviderDirectory {
	d := &ProviderDirectory{byID: make(map[id.ProviderID]Provider, len(providers))}
	for _, p := range providers {
		if _, ok := d.byID[p.ID]; ok {
			continue
		}
		d.byID[p.ID] = p
		d.order = append(d.order, p.ID)
	}
	return d
}

// ByID looks up a provider.
func (d *ProviderDirectory) ByID(providerID id.ProviderID) (Provider, bool) {
	p, ok := d.byID[providerID]
	return p, ok
}

// All returns every provider in registration order.
func (d *ProviderDirectory) All() []Provider {
	out := make([]Provider, 0, len(d.order))
	for _, pid := range d.order {
		out = append(out, d.byID[pid])
	}
	return out
}

// ByCategory filters providers by market segment.
func (d *ProviderDirectory) ByCategory(cat ProviderCategory) []Provider {
	var out []Provider
	for _, p := range d.All() {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}
