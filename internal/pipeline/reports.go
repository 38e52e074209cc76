package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/finboard/internal/model"

	"github.com/shopspring/decimal"
)

// MonthlySeries returns income/expense totals for the months ending with
// end's month, oldest first. Months without transactions are zero-filled.
func MonthlySeries(txs []model.Transaction, end time.Time, months int) []model.MonthTotals {
	if months < 1 {
		return nil
	}

	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	first := last.AddDate(0, -(months - 1), 0)

	series := make([]model.MonthTotals, months)
	index := make(map[string]int, months)
	for i := range series {
		m := first.AddDate(0, i, 0)
		series[i] = model.MonthTotals{Month: m, Income: decimal.Zero, Expense: decimal.Zero}
		index[m.Format("2006-01")] = i
	}

	for _, t := range txs {
		i, ok := index[t.Date.Format("2006-01")]
		if !ok {
			continue
		}
		mt := &series[i]
		mt.Count++
		if t.Type == model.Income {
			mt.Income = mt.Income.Add(t.Amount)
		} else {
			mt.Expense = mt.Expense.Add(t.Amount)
		}
	}

	for i := range series {
		series[i].Balance = series[i].Income.Sub(series[i].Expense)
	}
	return series
}

// ByCategory sums transactions of the given type per category, largest
// first. Share is each category's percentage of the total.
func ByCategory(txs []model.Transaction, typ model.TxType) []model.CategoryTotal {
	catMap := make(map[string]*model.CategoryTotal)
	total := decimal.Zero

	for _, t := range txs {
		if t.Type != typ {
			continue
		}
		name := t.Category
		if name == "" {
			name = "(uncategorized)"
		}
		ct, ok := catMap[name]
		if !ok {
			ct = &model.CategoryTotal{Category: name, Amount: decimal.Zero}
			catMap[name] = ct
		}
		ct.Amount = ct.Amount.Add(t.Amount)
		ct.Count++
		total = total.Add(t.Amount)
	}

	result := make([]model.CategoryTotal, 0, len(catMap))
	for _, ct := range catMap {
		if total.IsPositive() {
			ct.Share, _ = ct.Amount.Div(total).Mul(hundred).Float64()
		}
		result = append(result, *ct)
	}

	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Amount.Cmp(result[j].Amount); c != 0 {
			return c > 0
		}
		return result[i].Category < result[j].Category
	})
	return result
}
