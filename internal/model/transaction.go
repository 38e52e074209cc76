package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TxType says whether a transaction adds to or draws from the balance.
type TxType string

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

// TxStatus tracks whether a transaction has settled.
type TxStatus string

const (
	Paid    TxStatus = "paid"
	Pending TxStatus = "pending"
)

// Valid reports whether s is a known status.
func (s TxStatus) Valid() bool {
	return s == Paid || s == Pending
}

// ParseTxType parses "income" or "expense".
func ParseTxType(s string) (TxType, error) {
	t := TxType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid transaction type %q (want income or expense)", s)
	}
	return t, nil
}

// ParseTxStatus parses "paid" or "pending".
func ParseTxStatus(s string) (TxStatus, error) {
	st := TxStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid transaction status %q (want paid or pending)", s)
	}
	return st, nil
}

// Transaction is a single income or expense entry. Amount is always a
// magnitude; the sign comes from Type.
type Transaction struct {
	ID          string          `json:"id,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
	Category    string          `json:"category"`
	Type        TxType          `json:"type"`
	Status      TxStatus        `json:"status"`
}

// Signed returns the amount with the sign implied by Type.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
