package catalog

import "sort"

// Permission is a fixed PSD2 account-access capability a consent can grant.
type Permission string

const (
	PermReadAccountsBasic        Permission = "ReadAccountsBasic"
	PermReadAccountsDetail       Permission = "ReadAccountsDetail"
	PermReadBalances             Permission = "ReadBalances"
	PermReadTransactionsBasic    Permission = "ReadTransactionsBasic"
	PermReadTransactionsDetail   Permission = "ReadTransactionsDetail"
	PermReadStandingOrdersBasic  Permission = "ReadStandingOrdersBasic"
	PermReadStandingOrdersDetail Permission = "ReadStandingOrdersDetail"
	PermReadDirectDebits         Permission = "ReadDirectDebits"
	PermReadBeneficiariesBasic   Permission = "ReadBeneficiariesBasic"
	PermReadBeneficiariesDetail  Permission = "ReadBeneficiariesDetail"
	PermInitiatePayments         Permission = "InitiatePayments"
)

// PermissionCategory groups permissions for display.
type PermissionCategory string

const (
	CategoryAccount     PermissionCategory = "account"
	CategoryTransaction PermissionCategory = "transaction"
	CategoryPayment     PermissionCategory = "payment"
)

// RiskLevel classifies how sensitive a capability or provider is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PermissionDetail carries the static display metadata for one permission.
type PermissionDetail struct {
	Code        Permission         `json:"code"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    PermissionCategory `json:"category"`
	RiskLevel   RiskLevel          `json:"riskLevel"`
}

// PermissionDetails is the single source of truth for all valid permissions.
// It is a constant lookup table, never mutated at runtime.
var PermissionDetails = map[Permission]PermissionDetail{
	PermReadAccountsBasic: {
		Code:        PermReadAccountsBasic,
		Name:        "View account names",
		Description: "Can see your account names and types",
		Category:    CategoryAccount,
		RiskLevel:   RiskLow,
	},
	PermReadAccountsDetail: {
		Code:        PermReadAccountsDetail,
		Name:        "View account details",
		Description: "Can see your account names, IBANs, and types",
		Category:    CategoryAccount,
		RiskLevel:   RiskLow,
	},
	PermReadBalances: {
		Code:        PermReadBalances,
		Name:        "View balances",
		Description: "Can see your current account balances",
		Category:    CategoryAccount,
		RiskLevel:   RiskLow,
	},
	PermReadTransactionsBasic: {
		Code:        PermReadTransactionsBasic,
		Name:        "View transaction summaries",
		Description: "Can see basic transaction information",
		Category:    CategoryTransaction,
		RiskLevel:   RiskMedium,
	},
	PermReadTransactionsDetail: {
		Code:        PermReadTransactionsDetail,
		Name:        "View transaction details",
		Description: "Can see your full transaction history (last 90 days)",
		Category:    CategoryTransaction,
		RiskLevel:   RiskMedium,
	},
	PermReadStandingOrdersBasic: {
		Code:        PermReadStandingOrdersBasic,
		Name:        "View standing orders",
		Description: "Can see your scheduled payments",
		Category:    CategoryTransaction,
		RiskLevel:   RiskMedium,
	},
	PermReadStandingOrdersDetail: {
		Code:        PermReadStandingOrdersDetail,
		Name:        "View standing order details",
		Description: "Can see full details of your scheduled payments",
		Category:    CategoryTransaction,
		RiskLevel:   RiskMedium,
	},
	PermReadDirectDebits: {
		Code:        PermReadDirectDebits,
		Name:        "View direct debits",
		Description: "Can see your direct debit mandates",
		Category:    CategoryTransaction,
		RiskLevel:   RiskMedium,
	},
	PermReadBeneficiariesBasic: {
		Code:        PermReadBeneficiariesBasic,
		Name:        "View saved payees",
		Description: "Can see your saved payment recipients",
		Category:    CategoryTransaction,
		RiskLevel:   RiskMedium,
	},
	PermReadBeneficiariesDetail: {
		Code:        PermReadBeneficiariesDetail,
		Name:        "View payee details",
		Description: "Can see full details of your saved recipients",
		Category:    CategoryTransaction,
		RiskLevel:   RiskMedium,
	},
	PermInitiatePayments: {
		Code:        PermInitiatePayments,
		Name:        "Make payments",
		Description: "Can initiate payments from your accounts",
		Category:    CategoryPayment,
		RiskLevel:   RiskHigh,
	},
}

// IsValid checks if the permission is one of the supported enum values.
func (p Permission) IsValid() bool {
	_, ok := PermissionDetails[p]
	return ok
}

// Detail returns the static metadata for the permission.
func (p Permission) Detail() (PermissionDetail, bool) {
	d, ok := PermissionDetails[p]
	return d, ok
}

// AllPermissions returns the permission table as a stable, code-sorted slice.
func AllPermissions() []PermissionDetail {
	out := make([]PermissionDetail, 0, len(PermissionDetails))
	for _, d := range PermissionDetails {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
