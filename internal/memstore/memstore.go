// Package memstore is an in-memory gateway backend used for demos and tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"
)

// Store keeps every collection in memory, scoped by user id.
type Store struct {
	mu      sync.RWMutex
	session auth.Session
	now     func() time.Time

	transactions []model.Transaction
	budgets      []model.Budget
	accounts     []model.Account
	cards        []model.CreditCard
	categories   []model.Category
}

var _ gateway.Gateway = (*Store)(nil)

// New returns an empty store acting as sess.
func New(sess auth.Session) *Store {
	return &Store{session: sess, now: time.Now}
}

func (s *Store) owner(op string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.session.Present() {
		return "", gateway.Wrap(op, gateway.ErrNoSession)
	}
	return s.session.UserID, nil
}

func mine[T any](items []T, userOf func(T) string, user string) []T {
	out := []T{}
	for _, it := range items {
		if userOf(it) == user {
			out = append(out, it)
		}
	}
	return out
}

// ListTransactions returns transactions by date ascending.
func (s *Store) ListTransactions(context.Context) ([]model.Transaction, error) {
	s.mu.RLock()
	out := mine(s.transactions, func(t model.Transaction) string { return t.UserID }, s.session.UserID)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out, nil
}

// ListBudgets returns budgets newest first.
func (s *Store) ListBudgets(context.Context) ([]model.Budget, error) {
	s.mu.RLock()
	out := mine(s.budgets, func(b model.Budget) string { return b.UserID }, s.session.UserID)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListAccounts returns accounts by name.
func (s *Store) ListAccounts(context.Context) ([]model.Account, error) {
	s.mu.RLock()
	out := mine(s.accounts, func(a model.Account) string { return a.UserID }, s.session.UserID)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListCards returns credit cards by name.
func (s *Store) ListCards(context.Context) ([]model.CreditCard, error) {
	s.mu.RLock()
	out := mine(s.cards, func(c model.CreditCard) string { return c.UserID }, s.session.UserID)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListCategories returns categories of kind by name; empty kind lists all.
func (s *Store) ListCategories(_ context.Context, kind model.CategoryKind) ([]model.Category, error) {
	s.mu.RLock()
	all := mine(s.categories, func(c model.Category) string { return c.UserID }, s.session.UserID)
	s.mu.RUnlock()

	out := all[:0]
	for _, c := range all {
		if kind == "" || c.Kind == kind {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Probe reports whether the user has at least one transaction.
func (s *Store) Probe(ctx context.Context) (int, error) {
	txs, _ := s.ListTransactions(ctx)
	return min(len(txs), 1), nil
}

// CreateTransaction stores tx for the signed-in user.
func (s *Store) CreateTransaction(_ context.Context, tx model.Transaction) (model.Transaction, error) {
	owner, err := s.owner(gateway.OpCreateTransaction)
	if err != nil {
		return model.Transaction{}, err
	}
	if err := gateway.ValidateTransaction(tx); err != nil {
		return model.Transaction{}, err
	}
	tx.ID, tx.UserID = uuid.NewString(), owner
	tx.Amount = tx.Amount.Round(2)

	s.mu.Lock()
	s.transactions = append(s.transactions, tx)
	s.mu.Unlock()
	return tx, nil
}

// CreateBudget stores b for the signed-in user.
func (s *Store) CreateBudget(_ context.Context, b model.Budget) (model.Budget, error) {
	owner, err := s.owner(gateway.OpCreateBudget)
	if err != nil {
		return model.Budget{}, err
	}
	if err := gateway.ValidateBudget(b); err != nil {
		return model.Budget{}, err
	}
	b.ID, b.UserID = uuid.NewString(), owner
	b.CreatedAt = s.now().UTC()

	s.mu.Lock()
	s.budgets = append(s.budgets, b)
	s.mu.Unlock()
	return b, nil
}

// CreateAccount stores a for the signed-in user.
func (s *Store) CreateAccount(_ context.Context, a model.Account) (model.Account, error) {
	owner, err := s.owner(gateway.OpCreateAccount)
	if err != nil {
		return model.Account{}, err
	}
	if err := gateway.ValidateAccount(a); err != nil {
		return model.Account{}, err
	}
	a.ID, a.UserID = uuid.NewString(), owner

	s.mu.Lock()
	s.accounts = append(s.accounts, a)
	s.mu.Unlock()
	return a, nil
}

// CreateCard stores c for the signed-in user.
func (s *Store) CreateCard(_ context.Context, c model.CreditCard) (model.CreditCard, error) {
	owner, err := s.owner(gateway.OpCreateCard)
	if err != nil {
		return model.CreditCard{}, err
	}
	if err := gateway.ValidateCard(c); err != nil {
		return model.CreditCard{}, err
	}
	c.ID, c.UserID = uuid.NewString(), owner

	s.mu.Lock()
	s.cards = append(s.cards, c)
	s.mu.Unlock()
	return c, nil
}

// CreateCategory stores c for the signed-in user.
func (s *Store) CreateCategory(_ context.Context, c model.Category) (model.Category, error) {
	owner, err := s.owner(gateway.OpCreateCategory)
	if err != nil {
		return model.Category{}, err
	}
	if err := gateway.ValidateCategory(c); err != nil {
		return model.Category{}, err
	}
	c.ID, c.UserID = uuid.NewString(), owner

	s.mu.Lock()
	s.categories = append(s.categories, c)
	s.mu.Unlock()
	return c, nil
}
