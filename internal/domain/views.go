package domain

import "github.com/shopspring/decimal"

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Pagination mirrors the backend's paging block.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// NormalizePage fills in defaults for missing or invalid paging input.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

type AccountTransactions struct {
	Account      Account       `json:"account"`
	Transactions []Transaction `json:"transactions"`
	Totals       LedgerTotals  `json:"totals"`
	Pagination   *Pagination   `json:"pagination,omitempty"`
}

type LoanPage struct {
	Loans      []Loan      `json:"loans"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type LoanDetails struct {
	Loan               Loan            `json:"loan"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
}

type LoanInterests struct {
	Interests      []LoanInterest         `json:"interests"`
	PaymentSummary InterestPaymentSummary `json:"paymentSummary"`
}
