package catalog

// Fixture catalogs for the demo deployment. In a real integration these would
// come from the national competent authority register and the bank's core
// account system; here they are the fixed dataset the process starts with.

// DefaultProviders returns the demo TPP register.
func DefaultProviders() []Provider {
	return []Provider{
		{
			ID:                "tpp-001",
			Name:              "Budget Buddy",
			Website:           "https://budgetbuddy.example.com",
			AuthorizationType: AuthAISP,
			NCARegistration:   "FCA-123456",
			RegisteredCountry: "UK",
			Description:       "Personal budgeting and expense tracking app",
			Category:          ProviderBudgeting,
		},
		{
			ID:                "tpp-002",
			Name:              "QuickPay Pro",
			Website:           "https://quickpay.example.com",
			AuthorizationType: AuthPISP,
			NCARegistration:   "BaFin-789012",
			RegisteredCountry: "DE",
			Description:       "Fast payment initiation for e-commerce",
			Category:          ProviderPayments,
		},
		{
			ID:                "tpp-003",
			Name:              "WealthView",
			Website:           "https://wealthview.example.com",
			AuthorizationType: AuthAISP,
			NCARegistration:   "CSSF-345678",
			RegisteredCountry: "LU",
			Description:       "Investment portfolio aggregation and analysis",
			Category:          ProviderWealth,
		},
		{
			ID:                "tpp-004",
			Name:              "InvoiceFlow",
			Website:           "https://invoiceflow.example.com",
			AuthorizationType: AuthAISPPISP,
			NCARegistration:   "DNB-901234",
			RegisteredCountry: "NL",
			Description:       "Business invoicing with automatic payment reconciliation",
			Category:          ProviderAccounting,
		},
		{
			ID:                "tpp-005",
			Name:              "LendSmart",
			Website:           "https://lendsmart.example.com",
			AuthorizationType: AuthAISP,
			NCARegistration:   "CBI-567890",
			RegisteredCountry: "IE",
			Description:       "Credit scoring and loan comparison",
			Category:          ProviderLending,
		},
		{
			ID:                "tpp-006",
			Name:              "Tink",
			Website:           "https://tink.com",
			AuthorizationType: AuthAISPPISP,
			NCARegistration:   "FI-FSA-112233",
			RegisteredCountry: "SE",
			Description:       "Open banking platform for financial services",
			Category:          ProviderBudgeting,
		},
		{
			ID:                "tpp-007",
			Name:              "Plaid",
			Website:           "https://plaid.com",
			AuthorizationType: AuthAISP,
			NCARegistration:   "FCA-445566",
			RegisteredCountry: "UK",
			Description:       "Financial data connectivity platform",
			Category:          ProviderAccounting,
		},
		{
			ID:                "tpp-008",
			Name:              "TrueLayer",
			Website:           "https://truelayer.com",
			AuthorizationType: AuthAISPPISP,
			NCARegistration:   "FCA-778899",
			RegisteredCountry: "UK",
			Description:       "Open banking payments and data",
			Category:          ProviderPayments,
		},
	}
}

// DefaultAccounts returns the demo user's bank accounts.
func DefaultAccounts() []Account {
	return []Account{
		{
			ID:       "acc-001",
			IBAN:     "IE29AIBK93115212345678",
			Name:     "Main Current Account",
			Type:     AccountCurrent,
			Currency: "EUR",
			Balance:  12450.00,
		},
		{
			ID:       "acc-002",
			IBAN:     "IE29AIBK93115287654321",
			Name:     "Savings Account",
			Type:     AccountSavings,
			Currency: "EUR",
			Balance:  45000.00,
		},
		{
			ID:       "acc-003",
			IBAN:     "IE29AIBK93115298765432",
			Name:     "Business Account",
			Type:     AccountBusiness,
			Currency: "EUR",
			Balance:  89750.50,
		},
	}
}
