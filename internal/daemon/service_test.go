package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/memstore"
	"github.com/theirongolddev/finboard/internal/model"
)

var november = time.Date(2025, time.November, 20, 12, 0, 0, 0, time.UTC)

func newDemoService(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	m := memstore.New(auth.Session{})
	m.Seed(context.Background())
	s := New(Config{Backend: "memory", Interval: 10 * time.Second, Month: november}, m, nil)
	s.now = func() time.Time { return november }
	return s, m
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Transactions:  8,
		Pending:       5,
		Income:        decimal.NewFromInt(5800),
		Expense:       decimal.RequireFromString("2115.90"),
		Balance:       decimal.RequireFromString("3684.10"),
		AccountsTotal: decimal.NewFromInt(1000),
	}
	curr := prev
	curr.Transactions = 9
	curr.Expense = decimal.RequireFromString("2215.90")
	curr.Balance = decimal.RequireFromString("3584.10")

	delta := diffSnapshots(prev, curr)
	if delta.Transactions != 1 {
		t.Fatalf("Transactions delta = %d, want 1", delta.Transactions)
	}
	if !delta.Expense.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("Expense delta = %s, want 100", delta.Expense)
	}
	if !delta.Balance.Equal(decimal.NewFromInt(-100)) {
		t.Fatalf("Balance delta = %s, want -100", delta.Balance)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(prev, prev).isZero() {
		t.Fatal("identical snapshots should give a zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	}, gateway.Unconfigured{}, nil)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollEmitsSnapshotThenDelta(t *testing.T) {
	ctx := context.Background()
	s, m := newDemoService(t)

	s.pollOnce(ctx)
	st := s.snapshotStatus()
	if st.Summary.Transactions != 8 || st.Summary.Pending != 5 {
		t.Fatalf("summary = %+v", st.Summary)
	}
	if !st.Summary.Balance.Equal(decimal.RequireFromString("3684.1")) {
		t.Fatalf("balance = %s", st.Summary.Balance)
	}
	if st.Summary.BudgetsExceeded != 1 {
		t.Fatalf("budgets exceeded = %d, want 1", st.Summary.BudgetsExceeded)
	}

	// Unchanged data emits nothing new.
	s.pollOnce(ctx)
	if st := s.snapshotStatus(); st.EventCount != 1 {
		t.Fatalf("event count = %d, want 1", st.EventCount)
	}

	if _, err := m.CreateTransaction(ctx, model.Transaction{
		Description: "Farmácia",
		Amount:      decimal.NewFromInt(40),
		Date:        model.NewDate(2025, time.November, 21),
		Category:    "Saúde",
		Type:        model.Expense,
		Status:      model.Paid,
	}); err != nil {
		t.Fatal(err)
	}
	s.pollOnce(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.events) != 2 {
		t.Fatalf("events = %d, want 2", len(s.events))
	}
	last := s.events[1]
	if last.Type != EventFinanceDelta || last.Delta.Transactions != 1 || !last.Delta.Expense.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("last event = %+v", last)
	}
}

func TestPollRecordsConfigMissing(t *testing.T) {
	s := New(Config{Backend: "rest"}, gateway.Unconfigured{}, nil)
	s.pollOnce(context.Background())

	st := s.snapshotStatus()
	if st.LastError == "" {
		t.Fatal("expected last error")
	}
	if st.CollectionErrors["accounts"] != "configuration missing" {
		t.Fatalf("collection errors = %v", st.CollectionErrors)
	}
}

func TestCollectionsEndpoint(t *testing.T) {
	s, _ := newDemoService(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/collections/categories?kind=income")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var res gateway.Result[[]model.Category]
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Error != nil {
		t.Fatalf("error = %+v", res.Error)
	}
	if len(res.Data) != 2 || res.Data[0].Name != "Extra" {
		t.Fatalf("data = %+v", res.Data)
	}

	resp2, err := http.Get(srv.URL + "/v1/collections/loans")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp2.Body.Close() }()
	if resp2.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown collection status = %d", resp2.StatusCode)
	}
}

func TestCollectionsEndpointUnconfigured(t *testing.T) {
	s := New(Config{}, gateway.Unconfigured{}, nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/collections/accounts")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()

	var res gateway.Result[[]model.Account]
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Error == nil || res.Error.Message != "configuration missing" {
		t.Fatalf("error = %+v", res.Error)
	}
	if res.Data == nil || len(res.Data) != 0 {
		t.Fatalf("data = %#v, want empty", res.Data)
	}
}
