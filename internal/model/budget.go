package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending cap for one category. Spent is maintained
// independently of transactions.
type Budget struct {
	ID        string          `json:"id,omitempty"`
	UserID    string          `json:"user_id,omitempty"`
	Category  string          `json:"category"`
	Icon      string          `json:"icon"`
	IconBg    string          `json:"iconBg"`
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Period    string          `json:"period"`
	Color     string          `json:"color"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
}

// Remaining is Limit - Spent. It goes negative once the budget is exceeded.
func (b Budget) Remaining() decimal.Decimal {
	return b.Limit.Sub(b.Spent)
}

// Exceeded reports whether Spent is strictly above Limit.
func (b Budget) Exceeded() bool {
	return b.Spent.GreaterThan(b.Limit)
}
