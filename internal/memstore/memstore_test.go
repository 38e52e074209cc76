package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"
)

func TestSeedDemoTotals(t *testing.T) {
	ctx := context.Background()
	s := New(auth.Session{})
	s.Seed(ctx)

	ds := pipeline.Load(ctx, s, nil)
	if err := ds.Err(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Transactions) != 8 {
		t.Fatalf("transactions = %d, want 8", len(ds.Transactions))
	}

	totals := pipeline.TotalsByType(ds.Transactions)
	if !totals.Income.Equal(decimal.NewFromInt(5800)) {
		t.Fatalf("income = %s", totals.Income)
	}
	if !totals.Expense.Equal(decimal.RequireFromString("2115.9")) {
		t.Fatalf("expense = %s", totals.Expense)
	}
	if !totals.Balance.Equal(decimal.RequireFromString("3684.1")) {
		t.Fatalf("balance = %s", totals.Balance)
	}

	if ds.Budgets[0].Category != "Transporte" {
		t.Fatalf("newest budget = %q, want Transporte", ds.Budgets[0].Category)
	}
	if ds.Accounts[0].Name != "Banco X" {
		t.Fatalf("first account = %q", ds.Accounts[0].Name)
	}
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	s := New(auth.Local("u1"))

	for _, d := range []int{20, 3, 11} {
		if _, err := s.CreateTransaction(ctx, model.Transaction{
			Description: "x",
			Amount:      decimal.NewFromInt(1),
			Date:        model.NewDate(2025, time.November, d),
			Type:        model.Expense,
			Status:      model.Paid,
		}); err != nil {
			t.Fatal(err)
		}
	}
	txs, _ := s.ListTransactions(ctx)
	if txs[0].Date.Day() != 3 || txs[2].Date.Day() != 20 {
		t.Fatalf("order = %v %v %v", txs[0].Date, txs[1].Date, txs[2].Date)
	}

	for _, k := range []model.CategoryKind{model.KindIncome, model.KindExpense, model.KindExpense} {
		if _, err := s.CreateCategory(ctx, model.Category{Name: string(k), Kind: k}); err != nil {
			t.Fatal(err)
		}
	}
	inc, _ := s.ListCategories(ctx, model.KindIncome)
	all, _ := s.ListCategories(ctx, "")
	if len(inc) != 1 || len(all) != 3 {
		t.Fatalf("income = %d, all = %d", len(inc), len(all))
	}
}

func TestUserScoping(t *testing.T) {
	ctx := context.Background()
	s := New(auth.Local("u1"))
	s.Seed(ctx)

	other := New(auth.Local("u2"))
	accts, _ := other.ListAccounts(ctx)
	if len(accts) != 0 {
		t.Fatalf("u2 sees %d accounts", len(accts))
	}

	n, err := s.Probe(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Probe = %d, %v", n, err)
	}
}

func TestCreateRequiresSession(t *testing.T) {
	s := New(auth.Session{})
	_, err := s.CreateCard(context.Background(), model.CreditCard{Name: "Nubank"})
	if !errors.Is(err, gateway.ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}
