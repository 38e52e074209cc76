package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies where money is held.
type AccountType string

const (
	Wallet     AccountType = "wallet"
	Bank       AccountType = "bank"
	Investment AccountType = "investment"
)

// AccountTypes lists all account types in display order.
var AccountTypes = []AccountType{Wallet, Bank, Investment}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case Wallet, Bank, Investment:
		return true
	}
	return false
}

// ParseAccountType parses wallet, bank or investment.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid account type %q (want wallet, bank or investment)", s)
	}
	return t, nil
}

// Account holds a signed balance.
type Account struct {
	ID      string          `json:"id,omitempty"`
	UserID  string          `json:"user_id,omitempty"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Type    AccountType     `json:"type"`
}

// CreditCard tracks a card's limit and the invoice currently open on it.
type CreditCard struct {
	ID             string          `json:"id,omitempty"`
	UserID         string          `json:"user_id,omitempty"`
	Name           string          `json:"name"`
	Limit          decimal.Decimal `json:"limit"`
	CurrentInvoice decimal.Decimal `json:"currentInvoice"`
	DueDate        Date            `json:"dueDate"`
}

// Available is Limit - CurrentInvoice. Not clamped: an overspent card
// reports a negative value.
func (c CreditCard) Available() decimal.Decimal {
	return c.Limit.Sub(c.CurrentInvoice)
}

// DueDateFromDay returns the next date on or after now that falls on the
// given day of the month. Days past the end of a month clamp to its last day.
func DueDateFromDay(day int, now time.Time) (Date, error) {
	if day < 1 || day > 31 {
		return Date{}, fmt.Errorf("invalid due day %d (want 1-31)", day)
	}
	today := DateOf(now)
	y, m := today.Year(), today.Month()
	due := NewDate(y, m, min(day, daysIn(y, m)))
	if !due.Before(today.Time) {
		return due, nil
	}
	next := today.AddDate(0, 1, 1-today.Day())
	y, m = next.Year(), next.Month()
	return NewDate(y, m, min(day, daysIn(y, m))), nil
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
