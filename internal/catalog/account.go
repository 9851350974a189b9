package catalog

import (
	"fmt"
	"strings"

	id "consentry/pkg/domain"
)

// AccountType distinguishes the user's bank account products.
type AccountType string

const (
	AccountCurrent  AccountType = "current"
	AccountSavings  AccountType = "savings"
	AccountBusiness AccountType = "business"
)

// Account is a bank account a consent can reference. Read-only from the
// lifecycle engine's perspective.
type Account struct {
	ID       id.AccountID `json:"id"`
	IBAN     string       `json:"iban"`
	Name     string       `json:"name"`
	Type     AccountType  `json:"type"`
	Currency string       `json:"currency"`
	Balance  float64      `json:"balance"`
}

// AccountDirectory is an immutable, id-keyed account catalog.
type AccountDirectory struct {
	byID  map[id.AccountID]Account
	order []id.AccountID
}

// NewAccountDirectory builds a directory from a fixed account set.
func NewAccountDirectory(accounts []Account) *AccountDirectory {
	d := &AccountDirectory{byID: make(map[id.AccountID]Account, len(accounts))}
	for _, a := range accounts {
		if _, ok := d.byID[a.ID]; ok {
			continue
		}
		d.byID[a.ID] = a
		d.order = append(d.order, a.ID)
	}
	return d
}

// ByID looks up an account.
func (d *AccountDirectory) ByID(accountID id.AccountID) (Account, bool) {
	a, ok := d.byID[accountID]
	return a, ok
}

// All returns every account in registration order.
func (d *AccountDirectory) All() []Account {
	out := make([]Account, 0, len(d.order))
	for _, aid := range d.order {
		out = append(out, d.byID[aid])
	}
	return out
}

// ByIDs resolves a set of account references, preserving input order and
// skipping unknown ids.
func (d *AccountDirectory) ByIDs(ids []id.AccountID) []Account {
	var out []Account
	for _, aid := range ids {
		if a, ok := d.byID[aid]; ok {
			out = append(out, a)
		}
	}
	return out
}

// FormatIBAN renders an IBAN in display groups of four characters.
func FormatIBAN(iban string) string {
	var b strings.Builder
	for i, r := range iban {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MaskIBAN hides the middle of an IBAN, keeping the first and last four characters.
func MaskIBAN(iban string) string {
	if len(iban) <= 8 {
		return iban
	}
	return fmt.Sprintf("%s...%s", iban[:4], iban[len(iban)-4:])
}
