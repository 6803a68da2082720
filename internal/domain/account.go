package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings       AccountType = "savings"
	AccountTypeCash          AccountType = "cash"
	AccountTypeFDR           AccountType = "fdr"
	AccountTypeDPS           AccountType = "dps"
	AccountTypeShanchayPatra AccountType = "shanchaypatra"
	AccountTypeOther         AccountType = "other"
)

// AccountTypes lists the account types in display order.
var AccountTypes = []AccountType{
	AccountTypeSavings,
	AccountTypeCash,
	AccountTypeFDR,
	AccountTypeDPS,
	AccountTypeShanchayPatra,
	AccountTypeOther,
}

var accountTypeLabels = map[AccountType][2]string{
	AccountTypeSavings:       {"Savings Account", "Savings"},
	AccountTypeCash:          {"Cash", "Cash"},
	AccountTypeFDR:           {"Fixed Deposit Receipt (FDR)", "FDR"},
	AccountTypeDPS:           {"Deposit Pension Scheme (DPS)", "DPS"},
	AccountTypeShanchayPatra: {"Shanchay Patra", "Shanchay Patra"},
	AccountTypeOther:         {"Other", "Other"},
}

func (t AccountType) Valid() bool {
	_, ok := accountTypeLabels[t]
	return ok
}

// Label is the long form used in selection lists.
func (t AccountType) Label() string {
	return accountTypeLabels[t][0]
}

// ShortLabel is the compact form used in tables.
func (t AccountType) ShortLabel() string {
	return accountTypeLabels[t][1]
}

// Account is a cooperative account whose balance the backend maintains
// from its transactions.
type Account struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	Type          AccountType     `json:"type"`
	IsLocked      bool            `json:"isLocked"`
	AccountHolder MemberRef       `json:"accountHolder"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CreateAccountRequest is the create-account form.
type CreateAccountRequest struct {
	Name          string      `json:"name" validate:"trimmed_required,trimmed_min=3"`
	AccountHolder string      `json:"accountHolder" validate:"required"`
	Type          AccountType `json:"type" validate:"required,account_type"`
}

// AccountListParams controls ordering of the account list.
type AccountListParams struct {
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

type AccountTypeTotal struct {
	Type    AccountType     `json:"type"`
	Label   string          `json:"label"`
	Count   int             `json:"count"`
	Balance decimal.Decimal `json:"balance"`
}

// TotalBalance sums the balances of accounts.
func TotalBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// TotalsByType groups balances per account type in display order,
// skipping types without accounts.
func TotalsByType(accounts []Account) []AccountTypeTotal {
	byType := make(map[AccountType]*AccountTypeTotal)
	for _, a := range accounts {
		t, ok := byType[a.Type]
		if !ok {
			t = &AccountTypeTotal{Type: a.Type, Label: a.Type.ShortLabel(), Balance: decimal.Zero}
			byType[a.Type] = t
		}
		t.Count++
		t.Balance = t.Balance.Add(a.Balance)
	}

	totals := make([]AccountTypeTotal, 0, len(byType))
	for _, typ := range AccountTypes {
		if t, ok := byType[typ]; ok {
			totals = append(totals, *t)
			delete(byType, typ)
		}
	}
	// Types the backend knows about but we do not.
	for _, t := range byType {
		totals = append(totals, *t)
	}
	return totals
}
