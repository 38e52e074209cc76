package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"
)

// ListCategories returns the user's categories by name. An empty kind lists
// every category.
func (s *Store) ListCategories(ctx context.Context, kind model.CategoryKind) ([]model.Category, error) {
	q := "SELECT id, user_id, name, icon, color, kind FROM categories WHERE user_id = ?"
	args := []any{s.session.UserID}
	if kind != "" {
		q += " AND kind = ?"
		args = append(args, string(kind))
	}
	q += " ORDER BY name ASC"

	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return []model.Category{}, s.fail(ctx, gateway.OpListCategories, err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.Kind); err != nil {
			return out, s.fail(ctx, gateway.OpListCategories, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return out, s.fail(ctx, gateway.OpListCategories, err)
	}
	return out, nil
}

// CreateCategory inserts c for the signed-in user.
func (s *Store) CreateCategory(ctx context.Context, c model.Category) (model.Category, error) {
	const op = gateway.OpCreateCategory
	owner, err := s.owner(op)
	if err != nil {
		return model.Category{}, err
	}
	if err := gateway.ValidateCategory(c); err != nil {
		return model.Category{}, err
	}

	c.ID = uuid.NewString()
	c.UserID = owner
	err = s.exec(ctx, `
		INSERT INTO categories (id, user_id, name, icon, color, kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Icon, c.Color, string(c.Kind), s.stamp())
	if err != nil {
		return model.Category{}, s.fail(ctx, op, err)
	}
	return c, nil
}
