package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"
)

// ListTransactions returns the user's transactions by date ascending.
func (s *Store) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.query(ctx, `
		SELECT id, user_id, description, amount, date, category, type, status
		FROM transactions
		WHERE user_id = ?
		ORDER BY date ASC, created_at ASC`, s.session.UserID)
	if err != nil {
		return []model.Transaction{}, s.fail(ctx, gateway.OpListTransactions, err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.Transaction{}
	for rows.Next() {
		var tx model.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Description, &tx.Amount, &tx.Date,
			&tx.Category, &tx.Type, &tx.Status); err != nil {
			return out, s.fail(ctx, gateway.OpListTransactions, err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return out, s.fail(ctx, gateway.OpListTransactions, err)
	}
	return out, nil
}

// CreateTransaction inserts tx for the signed-in user.
func (s *Store) CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	const op = gateway.OpCreateTransaction
	owner, err := s.owner(op)
	if err != nil {
		return model.Transaction{}, err
	}
	if err := gateway.ValidateTransaction(tx); err != nil {
		return model.Transaction{}, err
	}

	tx.ID = uuid.NewString()
	tx.UserID = owner
	tx.Amount = tx.Amount.Round(2)
	err = s.exec(ctx, `
		INSERT INTO transactions (id, user_id, description, amount, date, category, type, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.Description, tx.Amount, tx.Date, tx.Category,
		string(tx.Type), string(tx.Status), s.stamp())
	if err != nil {
		return model.Transaction{}, s.fail(ctx, op, err)
	}
	return tx, nil
}
