package reporting

import (
	"time"

	"consentry/internal/catalog"
	id "consentry/pkg/domain"
)

// StatusCounts holds the effective-status breakdown of the consent
// collection. Every status key is always present, including zero counts,
// and Total is the sum of all six.
type StatusCounts struct {
	Pending    int `json:"pending"`
	Authorized int `json:"authorized"`
	Active     int `json:"active"`
	Expired    int `json:"expired"`
	Revoked    int `json:"revoked"`
	Rejected   int `json:"rejected"`
	Total      int `json:"total"`
}

// ProviderMetrics aggregates one provider's consent portfolio. Only providers
// with at least one consent are emitted.
type ProviderMetrics struct {
	ProviderID         id.ProviderID     `json:"tppId"`
	ProviderName       string            `json:"tppName"`
	ActiveCount        int               `json:"activeCount"`
	TotalCount         int               `json:"totalCount"`
	RevocationRate     float64           `json:"revocationRate"`
	AvgConsentDuration float64           `json:"avgConsentDuration"`
	RiskScore          catalog.RiskLevel `json:"riskScore"`
	LastActivity       time.Time         `json:"lastActivity"`
}

// FunnelStage is one step of the authorization funnel snapshot.
type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// DefaultFunnel returns the authorization funnel demonstration dataset. It is
// an independently-tracked input, not derived from the consent collection.
func DefaultFunnel() []FunnelStage {
	return []FunnelStage{
		{Stage: "initiated", Count: 156},
		{Stage: "redirected", Count: 142},
		{Stage: "authenticated", Count: 128},
		{Stage: "authorized", Count: 118},
		{Stage: "active", Count: 98},
	}
}

// TrendPoint carries one day's lifecycle event counts.
type TrendPoint struct {
	Date    string `json:"date"`
	Created int    `json:"created"`
	Revoked int    `json:"revoked"`
	Expired int    `json:"expired"`
}
