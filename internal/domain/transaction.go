package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// Label is what staff see: deposits credit an account, withdrawals debit it.
func (t TransactionType) Label() string {
	switch t {
	case TransactionTypeCredit:
		return "Deposit"
	case TransactionTypeDebit:
		return "Withdraw"
	}
	return string(t)
}

// Transaction is an append-only ledger entry. Amount is always positive;
// Type decides its effect on the balance.
type Transaction struct {
	ID              string          `json:"_id"`
	AccountID       string          `json:"accountId,omitempty"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Comment         string          `json:"comment"`
	TransactionDate Date            `json:"transactionDate"`
	EnteredBy       MemberRef       `json:"enteredBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// SignedAmount is +amount for credits and -amount for debits.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// LedgerTotals summarises a page of transactions.
type LedgerTotals struct {
	Credits decimal.Decimal `json:"credits"`
	Debits  decimal.Decimal `json:"debits"`
	Net     decimal.Decimal `json:"net"`
}

// SumTransactions totals credits and debits; Net is what they contribute to a balance.
func SumTransactions(txs []Transaction) LedgerTotals {
	totals := LedgerTotals{Credits: decimal.Zero, Debits: decimal.Zero, Net: decimal.Zero}
	for _, tx := range txs {
		switch tx.Type {
		case TransactionTypeCredit:
			totals.Credits = totals.Credits.Add(tx.Amount)
		case TransactionTypeDebit:
			totals.Debits = totals.Debits.Add(tx.Amount)
		}
		totals.Net = totals.Net.Add(tx.SignedAmount())
	}
	return totals
}

// EnterTransactionRequest is the ledger entry form for one account.
type EnterTransactionRequest struct {
	AccountID       string          `json:"accountId" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	Type            TransactionType `json:"type" validate:"required,transaction_type"`
	Comment         string          `json:"comment" validate:"trimmed_required,trimmed_min=3"`
	TransactionDate Date            `json:"transactionDate" validate:"required"`
}
