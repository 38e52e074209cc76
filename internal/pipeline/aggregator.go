// Package pipeline loads finance records and derives the summaries shown by
// the dashboard, list, calendar and report views.
package pipeline

import (
	"time"

	"github.com/theirongolddev/finboard/internal/model"

	"github.com/shopspring/decimal"
)

// TotalsByType sums transaction amounts partitioned by type.
func TotalsByType(txs []model.Transaction) model.Totals {
	income := decimal.Zero
	expense := decimal.Zero

	for _, t := range txs {
		switch t.Type {
		case model.Income:
			income = income.Add(t.Amount)
		case model.Expense:
			expense = expense.Add(t.Amount)
		}
	}

	return model.Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// AccountTotals sums balances overall and per account type.
func AccountTotals(accounts []model.Account) model.AccountSummary {
	sum := model.AccountSummary{
		Total:  decimal.Zero,
		ByType: make(map[model.AccountType]decimal.Decimal),
	}
	for _, a := range accounts {
		sum.Count++
		sum.Total = sum.Total.Add(a.Balance)
		sum.ByType[a.Type] = sum.ByType[a.Type].Add(a.Balance)
	}
	return sum
}

// CardTotals sums limits, open invoices and availability across cards and
// picks the next due date. The next due date is the earliest one on or after
// now; when every card is past due the earliest overall is used.
func CardTotals(cards []model.CreditCard, now time.Time) model.CardSummary {
	sum := model.CardSummary{
		Limit:        decimal.Zero,
		OpenInvoices: decimal.Zero,
		Available:    decimal.Zero,
	}
	today := model.DateOf(now)

	var (
		upcoming, earliest         model.Date
		upcomingName, earliestName string
	)
	for _, c := range cards {
		sum.Count++
		sum.Limit = sum.Limit.Add(c.Limit)
		sum.OpenInvoices = sum.OpenInvoices.Add(c.CurrentInvoice)
		sum.Available = sum.Available.Add(c.Available())

		if c.DueDate.IsZero() {
			continue
		}
		if earliest.IsZero() || c.DueDate.Before(earliest.Time) {
			earliest, earliestName = c.DueDate, c.Name
		}
		if !c.DueDate.Before(today.Time) && (upcoming.IsZero() || c.DueDate.Before(upcoming.Time)) {
			upcoming, upcomingName = c.DueDate, c.Name
		}
	}

	if !upcoming.IsZero() {
		sum.NextDue, sum.NextDueCard = upcoming, upcomingName
	} else {
		sum.NextDue, sum.NextDueCard = earliest, earliestName
	}
	return sum
}

// BudgetTotals sums limits and spending and counts exceeded budgets.
func BudgetTotals(budgets []model.Budget) model.BudgetSummary {
	sum := model.BudgetSummary{
		Limit: decimal.Zero,
		Spent: decimal.Zero,
	}
	for _, b := range budgets {
		sum.Count++
		sum.Limit = sum.Limit.Add(b.Limit)
		sum.Spent = sum.Spent.Add(b.Spent)
		if b.Exceeded() {
			sum.Exceeded++
		}
	}
	sum.Remaining = sum.Limit.Sub(sum.Spent)
	return sum
}
