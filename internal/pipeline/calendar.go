package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/finboard/internal/model"
)

// Status badge labels.
const (
	BadgeReceived   = "Received"
	BadgeReceivable = "Receivable"
	BadgePaid       = "Paid"
	BadgePayable    = "Payable"
)

// StatusBadge returns the label for a transaction's type and status.
func StatusBadge(t model.Transaction) string {
	if t.Type == model.Income {
		if t.Status == model.Paid {
			return BadgeReceived
		}
		return BadgeReceivable
	}
	if t.Status == model.Paid {
		return BadgePaid
	}
	return BadgePayable
}

// InMonth returns the transactions dated within anchor's year and month, in
// input order.
func InMonth(txs []model.Transaction, anchor time.Time) []model.Transaction {
	var out []model.Transaction
	for _, t := range txs {
		if t.Date.SameMonth(anchor) {
			out = append(out, t)
		}
	}
	return out
}

// GroupByDay buckets the anchor month's transactions by day of month.
// Items keep their input order within a day.
func GroupByDay(txs []model.Transaction, anchor time.Time) map[int]model.DayGroup {
	groups := make(map[int]model.DayGroup)
	for _, t := range txs {
		if !t.Date.SameMonth(anchor) {
			continue
		}
		day := t.Date.Day()
		g := groups[day]
		if t.Type == model.Income {
			g.IncomeSum = g.IncomeSum.Add(t.Amount)
		} else {
			g.ExpenseSum = g.ExpenseSum.Add(t.Amount)
		}
		g.Items = append(g.Items, t)
		groups[day] = g
	}
	return groups
}

// SelectDayOrMonth returns the detail list for the calendar. With a selected
// day (> 0) it is that day's items; otherwise it is the whole anchor month
// sorted by date, ties kept in input order.
func SelectDayOrMonth(grouped map[int]model.DayGroup, selectedDay int, txs []model.Transaction, anchor time.Time) []model.Transaction {
	if selectedDay > 0 {
		g, ok := grouped[selectedDay]
		if !ok {
			return []model.Transaction{}
		}
		return append([]model.Transaction(nil), g.Items...)
	}

	month := InMonth(txs, anchor)
	sort.SliceStable(month, func(i, j int) bool {
		return month[i].Date.Before(month[j].Date.Time)
	})
	return month
}

// MonthGrid lays out anchor's month as Sunday-first weeks. Cells outside the
// month are 0.
func MonthGrid(anchor time.Time) [][7]int {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var weeks [][7]int
	var week [7]int
	col := int(first.Weekday())
	for day := 1; day <= daysInMonth; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// TxFilter narrows a transaction list. Empty or "all" fields match
// everything.
type TxFilter struct {
	Status   string
	Type     string
	Category string
	Search   string
}

// FilterTransactions returns the transactions matching f, in input order.
func FilterTransactions(txs []model.Transaction, f TxFilter) []model.Transaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var out []model.Transaction
	for _, t := range txs {
		if f.Status != "" && f.Status != model.FilterAll && string(t.Status) != f.Status {
			continue
		}
		if f.Type != "" && f.Type != model.FilterAll && string(t.Type) != f.Type {
			continue
		}
		if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}
