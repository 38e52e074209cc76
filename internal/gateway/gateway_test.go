package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finboard/internal/model"
)

func TestUnconfiguredReturnsConfigMissing(t *testing.T) {
	ctx := context.Background()
	var g Gateway = Unconfigured{}

	txs, err := g.ListTransactions(ctx)
	if !errors.Is(err, ErrConfigMissing) {
		t.Fatalf("err = %v, want ErrConfigMissing", err)
	}
	if txs == nil || len(txs) != 0 {
		t.Fatalf("txs = %#v, want empty non-nil", txs)
	}
	if Info(err).Message != "configuration missing" {
		t.Fatalf("message = %q", Info(err).Message)
	}

	if _, err := g.CreateAccount(ctx, model.Account{Name: "x", Type: model.Bank}); !errors.Is(err, ErrConfigMissing) {
		t.Fatalf("create err = %v", err)
	}
	if n, err := g.Probe(ctx); n != 0 || !errors.Is(err, ErrConfigMissing) {
		t.Fatalf("probe = %d, %v", n, err)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(OpListBudgets, nil) != nil {
		t.Fatal("Wrap(nil) should be nil")
	}

	base := errors.New("connection refused")
	err := Wrap(OpListBudgets, base)
	if !errors.Is(err, base) {
		t.Fatal("wrapped error lost its cause")
	}
	if got := err.Error(); got != "list budgets: connection refused" {
		t.Fatalf("Error() = %q", got)
	}
	if Info(err).Message != "connection refused" {
		t.Fatalf("Info message = %q", Info(err).Message)
	}

	missing := Wrap(OpListCards, fmt.Errorf("rest: %w", ErrConfigMissing))
	if !errors.Is(missing, ErrConfigMissing) {
		t.Fatal("ErrConfigMissing not matched through Wrap")
	}
	if Info(missing).Message != "configuration missing" {
		t.Fatalf("message = %q", Info(missing).Message)
	}
}

func TestResultJSON(t *testing.T) {
	ok := NewResult([]string{"a"}, nil)
	b, err := json.Marshal(ok)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"data":["a"],"error":null}` {
		t.Fatalf("json = %s", b)
	}

	failed := NewResult([]string{}, ErrConfigMissing)
	b, err = json.Marshal(failed)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"data":[],"error":{"message":"configuration missing"}}` {
		t.Fatalf("json = %s", b)
	}
}

func TestValidate(t *testing.T) {
	good := model.Transaction{
		Description: "Aluguel",
		Amount:      decimal.NewFromInt(1200),
		Date:        model.NewDate(2025, 11, 5),
		Type:        model.Expense,
		Status:      model.Pending,
	}
	if err := ValidateTransaction(good); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tests := []struct {
		name string
		err  error
	}{
		{"blank description", ValidateTransaction(func() model.Transaction { x := good; x.Description = " "; return x }())},
		{"negative amount", ValidateTransaction(func() model.Transaction { x := good; x.Amount = decimal.NewFromInt(-1); return x }())},
		{"bad type", ValidateTransaction(func() model.Transaction { x := good; x.Type = "gift"; return x }())},
		{"no date", ValidateTransaction(func() model.Transaction { x := good; x.Date = model.Date{}; return x }())},
		{"account type", ValidateAccount(model.Account{Name: "Banco X", Type: "safe"})},
		{"account name", ValidateAccount(model.Account{Type: model.Bank})},
		{"card name", ValidateCard(model.CreditCard{})},
		{"budget category", ValidateBudget(model.Budget{})},
		{"category kind", ValidateCategory(model.Category{Name: "Food", Kind: "other"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ge *Error
			if !errors.As(tt.err, &ge) {
				t.Fatalf("err = %v, want *Error", tt.err)
			}
		})
	}

	if err := ValidateCategory(model.Category{Name: "Food"}); err != nil {
		t.Fatalf("empty kind should be allowed: %v", err)
	}
}

type recordingPublisher struct {
	collections []string
	fail        error
}

func (p *recordingPublisher) PublishRecordCreated(_ context.Context, collection, _, _ string, _ any) error {
	p.collections = append(p.collections, collection)
	return p.fail
}

type stubGateway struct {
	Unconfigured
	createErr error
}

func (s stubGateway) CreateAccount(_ context.Context, a model.Account) (model.Account, error) {
	if s.createErr != nil {
		return model.Account{}, s.createErr
	}
	a.ID = "acc-1"
	return a, nil
}

func TestWithEventsPublishesOnSuccess(t *testing.T) {
	pub := &recordingPublisher{fail: errors.New("broker down")}
	g := WithEvents(stubGateway{}, pub, nil)

	out, err := g.CreateAccount(context.Background(), model.Account{Name: "Banco X", Type: model.Bank})
	if err != nil {
		t.Fatalf("publish failure must not fail create: %v", err)
	}
	if out.ID != "acc-1" {
		t.Fatalf("id = %q", out.ID)
	}
	if len(pub.collections) != 1 || pub.collections[0] != "accounts" {
		t.Fatalf("published = %v", pub.collections)
	}

	pub.collections = nil
	g = WithEvents(stubGateway{createErr: errors.New("boom")}, pub, nil)
	if _, err := g.CreateAccount(context.Background(), model.Account{Name: "x", Type: model.Bank}); err == nil {
		t.Fatal("expected create error")
	}
	if len(pub.collections) != 0 {
		t.Fatalf("published on failure: %v", pub.collections)
	}
}

func TestWithEventsNilPublisher(t *testing.T) {
	base := stubGateway{}
	if g := WithEvents(base, nil, nil); g != Gateway(base) {
		t.Fatal("nil publisher should return the gateway unchanged")
	}
}
