package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"
)

var _ gateway.Gateway = (*Client)(nil)

// Table names on the remote project.
const (
	tableTransactions = "transactions"
	tableBudgets      = "budgets"
	tableAccounts     = "accounts"
	tableCards        = "cards"
	tableCategories   = "categories"
)

// selectQuery builds ?select=*&order=... scoped to the session user when
// there is one. Row-level security scopes rows server side as well.
func (c *Client) selectQuery(order string) url.Values {
	q := url.Values{}
	q.Set("select", "*")
	if order != "" {
		q.Set("order", order)
	}
	if c.session.Present() {
		q.Set("user_id", "eq."+c.session.UserID)
	}
	return q
}

// list fetches rows of table into a fresh slice of T. The slice is never nil.
func list[T any](ctx context.Context, c *Client, op, table string, q url.Values) ([]T, error) {
	out := []T{}
	body, err := c.get(ctx, "/rest/v1/"+table, q)
	if err != nil {
		return out, gateway.Wrap(op, err)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return []T{}, gateway.Wrap(op, fmt.Errorf("rest: parsing %s: %w", table, err))
	}
	return out, nil
}

// insert posts payload and decodes the single returned row.
func insert[T any](ctx context.Context, c *Client, op, table string, payload any) (T, error) {
	var zero T
	header := http.Header{}
	header.Set("Prefer", "return=representation")

	body, err := c.post(ctx, "/rest/v1/"+table, nil, []any{payload}, header)
	if err != nil {
		return zero, gateway.Wrap(op, err)
	}
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return zero, gateway.Wrap(op, fmt.Errorf("rest: parsing %s insert: %w", table, err))
	}
	if len(rows) == 0 {
		return zero, gateway.Wrap(op, fmt.Errorf("rest: %s insert returned no rows", table))
	}
	return rows[0], nil
}

func (c *Client) owner(op string) (string, error) {
	if !c.session.Present() {
		return "", gateway.Wrap(op, gateway.ErrNoSession)
	}
	return c.session.UserID, nil
}

// ListTransactions returns transactions by date ascending.
func (c *Client) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return list[model.Transaction](ctx, c, gateway.OpListTransactions, tableTransactions, c.selectQuery("date.asc"))
}

// ListBudgets returns budgets newest first.
func (c *Client) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	return list[model.Budget](ctx, c, gateway.OpListBudgets, tableBudgets, c.selectQuery("created_at.desc"))
}

// ListAccounts returns accounts by name.
func (c *Client) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return list[model.Account](ctx, c, gateway.OpListAccounts, tableAccounts, c.selectQuery("name.asc"))
}

// ListCards returns credit cards by name.
func (c *Client) ListCards(ctx context.Context) ([]model.CreditCard, error) {
	return list[model.CreditCard](ctx, c, gateway.OpListCards, tableCards, c.selectQuery("name.asc"))
}

// ListCategories returns categories of kind by name; empty kind lists all.
func (c *Client) ListCategories(ctx context.Context, kind model.CategoryKind) ([]model.Category, error) {
	q := c.selectQuery("name.asc")
	if kind != "" {
		q.Set("kind", "eq."+string(kind))
	}
	return list[model.Category](ctx, c, gateway.OpListCategories, tableCategories, q)
}

// Probe reads at most one transaction.
func (c *Client) Probe(ctx context.Context) (int, error) {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("limit", "1")
	rows, err := list[struct {
		ID string `json:"id"`
	}](ctx, c, gateway.OpProbe, tableTransactions, q)
	return len(rows), err
}

// CreateTransaction inserts tx for the signed-in user.
func (c *Client) CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	const op = gateway.OpCreateTransaction
	owner, err := c.owner(op)
	if err != nil {
		return model.Transaction{}, err
	}
	if err := gateway.ValidateTransaction(tx); err != nil {
		return model.Transaction{}, err
	}
	return insert[model.Transaction](ctx, c, op, tableTransactions, transactionInsert{
		UserID:      owner,
		Description: tx.Description,
		Amount:      number(tx.Amount),
		Date:        tx.Date,
		Category:    tx.Category,
		Type:        tx.Type,
		Status:      tx.Status,
	})
}

// CreateBudget inserts b for the signed-in user.
func (c *Client) CreateBudget(ctx context.Context, b model.Budget) (model.Budget, error) {
	const op = gateway.OpCreateBudget
	owner, err := c.owner(op)
	if err != nil {
		return model.Budget{}, err
	}
	if err := gateway.ValidateBudget(b); err != nil {
		return model.Budget{}, err
	}
	return insert[model.Budget](ctx, c, op, tableBudgets, budgetInsert{
		UserID:   owner,
		Category: b.Category,
		Icon:     b.Icon,
		IconBg:   b.IconBg,
		Period:   b.Period,
		Spent:    number(b.Spent),
		Limit:    number(b.Limit),
		Color:    b.Color,
	})
}

// CreateAccount inserts a for the signed-in user.
func (c *Client) CreateAccount(ctx context.Context, a model.Account) (model.Account, error) {
	const op = gateway.OpCreateAccount
	owner, err := c.owner(op)
	if err != nil {
		return model.Account{}, err
	}
	if err := gateway.ValidateAccount(a); err != nil {
		return model.Account{}, err
	}
	return insert[model.Account](ctx, c, op, tableAccounts, accountInsert{
		UserID:  owner,
		Name:    a.Name,
		Balance: number(a.Balance),
		Type:    a.Type,
	})
}

// CreateCard inserts cc for the signed-in user.
func (c *Client) CreateCard(ctx context.Context, cc model.CreditCard) (model.CreditCard, error) {
	const op = gateway.OpCreateCard
	owner, err := c.owner(op)
	if err != nil {
		return model.CreditCard{}, err
	}
	if err := gateway.ValidateCard(cc); err != nil {
		return model.CreditCard{}, err
	}
	return insert[model.CreditCard](ctx, c, op, tableCards, cardInsert{
		UserID:         owner,
		Name:           cc.Name,
		Limit:          number(cc.Limit),
		CurrentInvoice: number(cc.CurrentInvoice),
		DueDate:        cc.DueDate,
	})
}

// CreateCategory inserts cat for the signed-in user.
func (c *Client) CreateCategory(ctx context.Context, cat model.Category) (model.Category, error) {
	const op = gateway.OpCreateCategory
	owner, err := c.owner(op)
	if err != nil {
		return model.Category{}, err
	}
	if err := gateway.ValidateCategory(cat); err != nil {
		return model.Category{}, err
	}
	return insert[model.Category](ctx, c, op, tableCategories, categoryInsert{
		UserID: owner,
		Name:   cat.Name,
		Icon:   cat.Icon,
		Color:  cat.Color,
		Kind:   cat.Kind,
	})
}
