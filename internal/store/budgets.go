package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"
)

// ListBudgets returns the user's budgets, newest first.
func (s *Store) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	rows, err := s.query(ctx, `
		SELECT id, user_id, category, icon, icon_bg, limit_amount, spent, period, color, created_at
		FROM budgets
		WHERE user_id = ?
		ORDER BY created_at DESC, id`, s.session.UserID)
	if err != nil {
		return []model.Budget{}, s.fail(ctx, gateway.OpListBudgets, err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.Budget{}
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Icon, &b.IconBg,
			&b.Limit, &b.Spent, &b.Period, &b.Color, scanTime{&b.CreatedAt}); err != nil {
			return out, s.fail(ctx, gateway.OpListBudgets, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return out, s.fail(ctx, gateway.OpListBudgets, err)
	}
	return out, nil
}

// CreateBudget inserts b for the signed-in user.
func (s *Store) CreateBudget(ctx context.Context, b model.Budget) (model.Budget, error) {
	const op = gateway.OpCreateBudget
	owner, err := s.owner(op)
	if err != nil {
		return model.Budget{}, err
	}
	if err := gateway.ValidateBudget(b); err != nil {
		return model.Budget{}, err
	}

	b.ID = uuid.NewString()
	b.UserID = owner
	b.Limit = b.Limit.Round(2)
	b.Spent = b.Spent.Round(2)
	created := s.stamp()
	err = s.exec(ctx, `
		INSERT INTO budgets (id, user_id, category, icon, icon_bg, limit_amount, spent, period, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.Category, b.Icon, b.IconBg, b.Limit, b.Spent, b.Period, b.Color, created)
	if err != nil {
		return model.Budget{}, s.fail(ctx, op, err)
	}
	_ = scanTime{&b.CreatedAt}.Scan(created)
	return b, nil
}
