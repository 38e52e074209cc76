package pipeline

import (
	"time"

	"github.com/theirongolddev/finboard/internal/model"

	"github.com/shopspring/decimal"
)

var (
	cautionRatio = decimal.NewFromFloat(0.85)
	hundred      = decimal.NewFromInt(100)
)

// BudgetVisual classifies a budget by its spent/limit ratio: above 100% is
// danger (with warning), above 85% is caution, anything else is ok. A zero
// limit is always ok.
func BudgetVisual(b model.Budget) model.BudgetVisual {
	if !b.Limit.IsPositive() {
		return model.BudgetVisual{Tier: model.TierOK, BarTier: model.TierOK}
	}

	// Tiers compare exact amounts; Div rounds and is only used for display.
	pct, _ := b.Spent.Div(b.Limit).Mul(hundred).Float64()

	v := model.BudgetVisual{Tier: model.TierOK, Percent: pct}
	switch {
	case b.Spent.GreaterThan(b.Limit):
		v.Tier = model.TierDanger
		v.Warning = true
	case b.Spent.GreaterThan(b.Limit.Mul(cautionRatio)):
		v.Tier = model.TierCaution
	}
	v.BarTier = v.Tier
	return v
}

// FilterBudgets returns the budgets matching filterKey, in input order.
// "exceeded" keeps budgets with spent > limit, "current" keeps those whose
// period equals currentPeriod, and every other key keeps everything.
func FilterBudgets(budgets []model.Budget, filterKey, currentPeriod string) []model.Budget {
	var keep func(model.Budget) bool
	switch filterKey {
	case model.BudgetFilterExceeded:
		keep = model.Budget.Exceeded
	case model.BudgetFilterCurrent:
		keep = func(b model.Budget) bool { return b.Period == currentPeriod }
	default:
		return append([]model.Budget(nil), budgets...)
	}

	var out []model.Budget
	for _, b := range budgets {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// PeriodLabel is the default "current period" label for an anchor month:
// the English month name, matching how budget periods are entered.
func PeriodLabel(anchor time.Time) string {
	return anchor.Month().String()
}
