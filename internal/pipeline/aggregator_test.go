package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/finboard/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(t *testing.T, date string, typ model.TxType, amount string) model.Transaction {
	t.Helper()
	d, err := model.ParseDate(date)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", date, err)
	}
	return model.Transaction{
		Description: string(typ) + " " + date,
		Amount:      dec(amount),
		Date:        d,
		Type:        typ,
		Status:      model.Paid,
	}
}

func TestTotalsByType(t *testing.T) {
	tests := []struct {
		name    string
		txs     []model.Transaction
		income  string
		expense string
		balance string
	}{
		{"empty", nil, "0", "0", "0"},
		{
			"mixed",
			[]model.Transaction{
				tx(t, "2025-11-05", model.Income, "5000"),
				tx(t, "2025-11-05", model.Expense, "1200"),
				tx(t, "2025-11-20", model.Expense, "55.90"),
			},
			"5000", "1255.90", "3744.10",
		},
		{
			"expense only",
			[]model.Transaction{tx(t, "2025-11-10", model.Expense, "450")},
			"0", "450", "-450",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalsByType(tt.txs)
			if !got.Income.Equal(dec(tt.income)) {
				t.Fatalf("Income = %s, want %s", got.Income, tt.income)
			}
			if !got.Expense.Equal(dec(tt.expense)) {
				t.Fatalf("Expense = %s, want %s", got.Expense, tt.expense)
			}
			if !got.Balance.Equal(dec(tt.balance)) {
				t.Fatalf("Balance = %s, want %s", got.Balance, tt.balance)
			}
			if !got.Balance.Equal(got.Income.Sub(got.Expense)) {
				t.Fatalf("Balance %s != Income - Expense", got.Balance)
			}
			if got.Income.IsNegative() || got.Expense.IsNegative() {
				t.Fatalf("negative sums from non-negative input: %+v", got)
			}
		})
	}
}

func TestTotalsByTypeIdempotent(t *testing.T) {
	txs := []model.Transaction{
		tx(t, "2025-11-05", model.Income, "5000"),
		tx(t, "2025-11-10", model.Expense, "450"),
	}
	before := append([]model.Transaction(nil), txs...)

	first := TotalsByType(txs)
	second := TotalsByType(txs)
	if !first.Income.Equal(second.Income) || !first.Expense.Equal(second.Expense) || !first.Balance.Equal(second.Balance) {
		t.Fatalf("repeated call differs: %+v vs %+v", first, second)
	}
	for i := range txs {
		if txs[i].Description != before[i].Description || !txs[i].Amount.Equal(before[i].Amount) {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

func TestAccountTotals(t *testing.T) {
	accts := []model.Account{
		{Name: "Wallet", Balance: dec("150.50"), Type: model.Wallet},
		{Name: "Banco X", Balance: dec("500"), Type: model.Bank},
		{Name: "Banco Y", Balance: dec("-80"), Type: model.Bank},
	}
	sum := AccountTotals(accts)
	if sum.Count != 3 {
		t.Fatalf("Count = %d, want 3", sum.Count)
	}
	if !sum.Total.Equal(dec("570.50")) {
		t.Fatalf("Total = %s, want 570.50", sum.Total)
	}
	if !sum.ByType[model.Bank].Equal(dec("420")) {
		t.Fatalf("Bank total = %s, want 420", sum.ByType[model.Bank])
	}
}

func TestCardTotals(t *testing.T) {
	now := time.Date(2025, 11, 12, 9, 0, 0, 0, time.UTC)
	cards := []model.CreditCard{
		{Name: "Gold", Limit: dec("5000"), CurrentInvoice: dec("1200"), DueDate: model.NewDate(2025, 11, 10)},
		{Name: "Black", Limit: dec("10000"), CurrentInvoice: dec("10500"), DueDate: model.NewDate(2025, 11, 20)},
		{Name: "Basic", Limit: dec("800"), CurrentInvoice: dec("0"), DueDate: model.NewDate(2025, 12, 1)},
	}
	sum := CardTotals(cards, now)

	if !sum.Limit.Equal(dec("15800")) {
		t.Fatalf("Limit = %s, want 15800", sum.Limit)
	}
	if !sum.OpenInvoices.Equal(dec("11700")) {
		t.Fatalf("OpenInvoices = %s, want 11700", sum.OpenInvoices)
	}
	if !sum.Available.Equal(dec("4100")) {
		t.Fatalf("Available = %s, want 4100", sum.Available)
	}
	if sum.NextDueCard != "Black" || sum.NextDue.String() != "2025-11-20" {
		t.Fatalf("NextDue = %s (%s), want 2025-11-20 (Black)", sum.NextDue, sum.NextDueCard)
	}

	past := CardTotals(cards[:1], now)
	if past.NextDueCard != "Gold" {
		t.Fatalf("all-past NextDueCard = %q, want Gold", past.NextDueCard)
	}
}

func TestBudgetTotals(t *testing.T) {
	bs := []model.Budget{
		{Category: "Food", Limit: dec("100"), Spent: dec("101")},
		{Category: "Fun", Limit: dec("200"), Spent: dec("50")},
	}
	sum := BudgetTotals(bs)
	if sum.Exceeded != 1 {
		t.Fatalf("Exceeded = %d, want 1", sum.Exceeded)
	}
	if !sum.Remaining.Equal(dec("149")) {
		t.Fatalf("Remaining = %s, want 149", sum.Remaining)
	}
}
