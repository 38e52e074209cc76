package model

import "fmt"

// CategoryKind separates income categories from expense categories.
type CategoryKind string

const (
	KindExpense CategoryKind = "expense"
	KindIncome  CategoryKind = "income"
)

// Valid reports whether k is a known kind.
func (k CategoryKind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// ParseCategoryKind parses "expense" or "income". The empty string is
// accepted and means "any kind".
func ParseCategoryKind(s string) (CategoryKind, error) {
	if s == "" {
		return "", nil
	}
	k := CategoryKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("invalid category kind %q (want expense or income)", s)
	}
	return k, nil
}

// Category labels transactions and budgets.
type Category struct {
	ID     string       `json:"id,omitempty"`
	UserID string       `json:"user_id,omitempty"`
	Name   string       `json:"name"`
	Icon   string       `json:"icon"`
	Color  string       `json:"color"`
	Kind   CategoryKind `json:"kind"`
}
