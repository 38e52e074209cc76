package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals holds income and expense sums over a set of transactions.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// DayGroup collects one calendar day's transactions.
type DayGroup struct {
	IncomeSum  decimal.Decimal
	ExpenseSum decimal.Decimal
	Items      []Transaction
}

// Tier is the three-way budget health classification.
type Tier int

const (
	TierOK Tier = iota
	TierCaution
	TierDanger
)

func (t Tier) String() string {
	switch t {
	case TierCaution:
		return "caution"
	case TierDanger:
		return "danger"
	default:
		return "ok"
	}
}

// BudgetVisual is the derived display state of a budget.
type BudgetVisual struct {
	Tier    Tier
	BarTier Tier
	Warning bool
	Percent float64 // spent/limit * 100, 0 when limit is 0
}

// AccountSummary sums balances across accounts.
type AccountSummary struct {
	Total  decimal.Decimal
	ByType map[AccountType]decimal.Decimal
	Count  int
}

// CardSummary sums limits and invoices across credit cards.
type CardSummary struct {
	Limit        decimal.Decimal
	OpenInvoices decimal.Decimal
	Available    decimal.Decimal
	NextDue      Date
	NextDueCard  string
	Count        int
}

// BudgetSummary sums limits and spending across budgets.
type BudgetSummary struct {
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Exceeded  int
	Count     int
}

// MonthTotals is one point of the monthly report series.
type MonthTotals struct {
	Month   time.Time // first day of the month, UTC
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
	Count   int
}

// CategoryTotal is one row of a per-category breakdown.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
	Share    float64 // percent of the breakdown total
	Count    int
}
