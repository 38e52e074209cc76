package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"
)

func openTestStore(t *testing.T, userID string) *Store {
	t.Helper()
	s, err := Open(Options{
		Dialect: SQLite,
		DSN:     filepath.Join(t.TempDir(), "finboard.db"),
		Session: auth.Local(userID),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAccountRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, "user-1")

	created, err := s.CreateAccount(ctx, model.Account{
		Name:    "Banco X",
		Balance: decimal.NewFromInt(500),
		Type:    model.Bank,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created account has no id")
	}
	if created.UserID != "user-1" {
		t.Fatalf("user id = %q", created.UserID)
	}

	accts, err := s.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accts) != 1 {
		t.Fatalf("got %d accounts, want 1", len(accts))
	}
	got := accts[0]
	if got.Name != "Banco X" || got.Type != model.Bank || !got.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("round trip = %+v", got)
	}
	if got.ID != created.ID {
		t.Fatalf("id = %q, want %q", got.ID, created.ID)
	}
}

func TestTransactionsOrderedByDate(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, "user-1")

	for _, d := range []int{15, 5, 28} {
		_, err := s.CreateTransaction(ctx, model.Transaction{
			Description: "tx",
			Amount:      decimal.RequireFromString("55.90"),
			Date:        model.NewDate(2025, time.November, d),
			Category:    "Lazer",
			Type:        model.Expense,
			Status:      model.Paid,
		})
		if err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	txs, err := s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	var days []int
	for _, tx := range txs {
		days = append(days, tx.Date.Day())
	}
	if len(days) != 3 || days[0] != 5 || days[1] != 15 || days[2] != 28 {
		t.Fatalf("days = %v, want [5 15 28]", days)
	}
	if !txs[0].Amount.Equal(decimal.RequireFromString("55.9")) {
		t.Fatalf("amount = %s", txs[0].Amount)
	}

	n, err := s.Probe(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Probe = %d, %v; want 1", n, err)
	}
}

func TestBudgetsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, "user-1")

	base := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	for i, cat := range []string{"Moradia", "Lazer", "Saúde"} {
		at := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return at }
		if _, err := s.CreateBudget(ctx, model.Budget{
			Category: cat,
			Limit:    decimal.NewFromInt(100),
			Spent:    decimal.NewFromInt(int64(50 * i)),
			Period:   "Novembro",
		}); err != nil {
			t.Fatalf("CreateBudget: %v", err)
		}
	}

	bs, err := s.ListBudgets(ctx)
	if err != nil {
		t.Fatalf("ListBudgets: %v", err)
	}
	if len(bs) != 3 || bs[0].Category != "Saúde" || bs[2].Category != "Moradia" {
		t.Fatalf("order = %+v", bs)
	}
	if !bs[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("created_at = %v", bs[0].CreatedAt)
	}
	if bs[0].Exceeded() {
		t.Fatal("spent equal to limit is not exceeded")
	}
}

func TestCategoriesKindFilter(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, "user-1")

	for _, c := range []model.Category{
		{Name: "Salário", Kind: model.KindIncome},
		{Name: "Alimentação", Kind: model.KindExpense},
		{Name: "Moradia", Kind: model.KindExpense},
	} {
		if _, err := s.CreateCategory(ctx, c); err != nil {
			t.Fatalf("CreateCategory: %v", err)
		}
	}

	all, err := s.ListCategories(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Name != "Alimentação" {
		t.Fatalf("all = %+v", all)
	}

	exp, err := s.ListCategories(ctx, model.KindExpense)
	if err != nil {
		t.Fatal(err)
	}
	if len(exp) != 2 {
		t.Fatalf("expense categories = %d, want 2", len(exp))
	}
}

func TestCardDueDateRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, "user-1")

	due := model.NewDate(2025, time.December, 10)
	if _, err := s.CreateCard(ctx, model.CreditCard{
		Name:           "Nubank",
		Limit:          decimal.NewFromInt(3000),
		CurrentInvoice: decimal.RequireFromString("812.40"),
		DueDate:        due,
	}); err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	if _, err := s.CreateCard(ctx, model.CreditCard{Name: "Inter", Limit: decimal.NewFromInt(1000)}); err != nil {
		t.Fatalf("CreateCard without due date: %v", err)
	}

	cards, err := s.ListCards(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 2 || cards[0].Name != "Inter" {
		t.Fatalf("cards = %+v", cards)
	}
	if !cards[0].DueDate.IsZero() {
		t.Fatalf("Inter due = %v, want zero", cards[0].DueDate)
	}
	if !cards[1].DueDate.Equal(due.Time) {
		t.Fatalf("Nubank due = %v", cards[1].DueDate)
	}
}

func TestRecordsScopedToUser(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")

	alice, err := Open(Options{Dialect: SQLite, DSN: path, Session: auth.Local("alice")})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = alice.Close() }()
	if _, err := alice.CreateAccount(ctx, model.Account{Name: "Carteira", Type: model.Wallet}); err != nil {
		t.Fatal(err)
	}

	bob, err := Open(Options{Dialect: SQLite, DSN: path, Session: auth.Local("bob")})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = bob.Close() }()

	accts, err := bob.ListAccounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(accts) != 0 {
		t.Fatalf("bob sees %d accounts", len(accts))
	}
}

func TestCreateWithoutSession(t *testing.T) {
	s := openTestStore(t, "")

	_, err := s.CreateAccount(context.Background(), model.Account{Name: "x", Type: model.Bank})
	if !errors.Is(err, gateway.ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestCreateValidates(t *testing.T) {
	s := openTestStore(t, "user-1")

	_, err := s.CreateAccount(context.Background(), model.Account{Name: "x", Type: "vault"})
	var ge *gateway.Error
	if !errors.As(err, &ge) {
		t.Fatalf("err = %v, want *gateway.Error", err)
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: Postgres}
	if got := pg.rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Fatalf("rebind = %q", got)
	}
	lite := &Store{dialect: SQLite}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Fatalf("rebind = %q", got)
	}
}
