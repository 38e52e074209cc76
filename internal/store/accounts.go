package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"
)

// ListAccounts returns the user's accounts by name.
func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.query(ctx, `
		SELECT id, user_id, name, balance, type
		FROM accounts
		WHERE user_id = ?
		ORDER BY name ASC`, s.session.UserID)
	if err != nil {
		return []model.Account{}, s.fail(ctx, gateway.OpListAccounts, err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.Account{}
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Balance, &a.Type); err != nil {
			return out, s.fail(ctx, gateway.OpListAccounts, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return out, s.fail(ctx, gateway.OpListAccounts, err)
	}
	return out, nil
}

// CreateAccount inserts a for the signed-in user.
func (s *Store) CreateAccount(ctx context.Context, a model.Account) (model.Account, error) {
	const op = gateway.OpCreateAccount
	owner, err := s.owner(op)
	if err != nil {
		return model.Account{}, err
	}
	if err := gateway.ValidateAccount(a); err != nil {
		return model.Account{}, err
	}

	a.ID = uuid.NewString()
	a.UserID = owner
	a.Balance = a.Balance.Round(2)
	err = s.exec(ctx, `
		INSERT INTO accounts (id, user_id, name, balance, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Name, a.Balance, string(a.Type), s.stamp())
	if err != nil {
		return model.Account{}, s.fail(ctx, op, err)
	}
	return a, nil
}

// ListCards returns the user's credit cards by name.
func (s *Store) ListCards(ctx context.Context) ([]model.CreditCard, error) {
	rows, err := s.query(ctx, `
		SELECT id, user_id, name, limit_amount, current_invoice, due_date
		FROM credit_cards
		WHERE user_id = ?
		ORDER BY name ASC`, s.session.UserID)
	if err != nil {
		return []model.CreditCard{}, s.fail(ctx, gateway.OpListCards, err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.CreditCard{}
	for rows.Next() {
		var c model.CreditCard
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Limit, &c.CurrentInvoice, &c.DueDate); err != nil {
			return out, s.fail(ctx, gateway.OpListCards, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return out, s.fail(ctx, gateway.OpListCards, err)
	}
	return out, nil
}

// CreateCard inserts c for the signed-in user.
func (s *Store) CreateCard(ctx context.Context, c model.CreditCard) (model.CreditCard, error) {
	const op = gateway.OpCreateCard
	owner, err := s.owner(op)
	if err != nil {
		return model.CreditCard{}, err
	}
	if err := gateway.ValidateCard(c); err != nil {
		return model.CreditCard{}, err
	}

	c.ID = uuid.NewString()
	c.UserID = owner
	c.Limit = c.Limit.Round(2)
	c.CurrentInvoice = c.CurrentInvoice.Round(2)
	err = s.exec(ctx, `
		INSERT INTO credit_cards (id, user_id, name, limit_amount, current_invoice, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Limit, c.CurrentInvoice, c.DueDate, s.stamp())
	if err != nil {
		return model.CreditCard{}, s.fail(ctx, op, err)
	}
	return c, nil
}
