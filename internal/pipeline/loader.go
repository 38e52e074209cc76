package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/theirongolddev/finboard/internal/model"

	"golang.org/x/sync/errgroup"
)

// Collection names, in the order they are reported.
const (
	CollTransactions = "transactions"
	CollBudgets      = "budgets"
	CollAccounts     = "accounts"
	CollCards        = "cards"
	CollCategories   = "categories"
)

// Collections lists every collection Load fetches.
var Collections = []string{CollTransactions, CollBudgets, CollAccounts, CollCards, CollCategories}

// Reader is the read side of a collection gateway.
type Reader interface {
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	ListBudgets(ctx context.Context) ([]model.Budget, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
	ListCards(ctx context.Context) ([]model.CreditCard, error)
	ListCategories(ctx context.Context, kind model.CategoryKind) ([]model.Category, error)
}

// Dataset is everything the views render, fetched in one pass.
type Dataset struct {
	Transactions []model.Transaction
	Budgets      []model.Budget
	Accounts     []model.Account
	Cards        []model.CreditCard
	Categories   []model.Category

	// Errors holds the failure of each collection that could not be read.
	Errors   map[string]error
	LoadTime time.Duration
}

// Err joins the collection errors in Collections order, or returns nil.
func (d *Dataset) Err() error {
	var errs []error
	for _, name := range Collections {
		if err := d.Errors[name]; err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ProgressFunc is called as each collection finishes loading.
type ProgressFunc func(done, total int)

const maxConcurrentFetches = 3

// Load fetches all collections concurrently. A failing collection does not
// abort the others: whatever arrived is kept and the failure is recorded in
// Dataset.Errors.
func Load(ctx context.Context, r Reader, progressFn ProgressFunc) *Dataset {
	start := time.Now()
	ds := &Dataset{Errors: make(map[string]error)}

	var (
		mu   sync.Mutex
		done int
	)
	finish := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			ds.Errors[name] = err
		}
		done++
		if progressFn != nil {
			progressFn(done, len(Collections))
		}
	}

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	g.Go(func() error {
		txs, err := r.ListTransactions(ctx)
		ds.Transactions = txs
		finish(CollTransactions, err)
		return nil
	})
	g.Go(func() error {
		bs, err := r.ListBudgets(ctx)
		ds.Budgets = bs
		finish(CollBudgets, err)
		return nil
	})
	g.Go(func() error {
		as, err := r.ListAccounts(ctx)
		ds.Accounts = as
		finish(CollAccounts, err)
		return nil
	})
	g.Go(func() error {
		cs, err := r.ListCards(ctx)
		ds.Cards = cs
		finish(CollCards, err)
		return nil
	})
	g.Go(func() error {
		cats, err := r.ListCategories(ctx, "")
		ds.Categories = cats
		finish(CollCategories, err)
		return nil
	})

	_ = g.Wait()
	ds.LoadTime = time.Since(start)
	return ds
}
