package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"
	"github.com/theirongolddev/finboard/internal/tui/components"
	"github.com/theirongolddev/finboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	// Row 1: month totals
	balanceColor := t.GreenBright
	if a.totals.Balance.IsNegative() {
		balanceColor = t.Red
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Balance", Value: cli.FormatMoney(a.totals.Balance), Delta: "vs last month " + cli.FormatDelta(a.totals.Balance, a.prevTotals.Balance), Color: balanceColor},
		{Label: "Income", Value: cli.FormatMoney(a.totals.Income), Delta: cli.FormatDelta(a.totals.Income, a.prevTotals.Income), Color: t.GreenBright},
		{Label: "Expense", Value: cli.FormatMoney(a.totals.Expense), Delta: cli.FormatDelta(a.totals.Expense, a.prevTotals.Expense), Color: t.Red},
		{Label: "Accounts", Value: cli.FormatMoney(a.accounts.Total), Delta: fmt.Sprintf("%d accounts", a.accounts.Count)},
	}, cw))
	b.WriteString("\n")

	// Row 2: daily expense chart for the anchor month
	days := daysInMonth(a.anchor)
	income := make([]float64, days)
	expense := make([]float64, days)
	labels := make([]string, days)
	for d := 1; d <= days; d++ {
		g := a.byDay[d]
		income[d-1] = g.IncomeSum.InexactFloat64()
		expense[d-1] = g.ExpenseSum.InexactFloat64()
		labels[d-1] = strconv.Itoa(d)
	}
	chartH := 8
	if a.isCompactLayout() {
		chartH = 6
	}
	b.WriteString(components.ContentCard(
		"Daily flow · "+cli.FormatMonth(a.anchor),
		components.BarChart([]components.Series{
			{Values: income, Color: t.Green},
			{Values: expense, Color: t.Red},
		}, labels, components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")

	// Row 3: budgets + upcoming
	halves := components.LayoutRow(cw, 2)
	budgetCard := components.ContentCard("Budgets", a.budgetDigest(components.CardInnerWidth(halves[0])), halves[0])
	pendingCard := components.ContentCard("Pending this month", a.pendingDigest(components.CardInnerWidth(halves[1])), halves[1])

	if a.isCompactLayout() {
		b.WriteString(budgetCard)
		b.WriteString("\n")
		b.WriteString(pendingCard)
	} else {
		b.WriteString(components.CardRow([]string{budgetCard, pendingCard}))
	}

	return b.String()
}

// budgetDigest lists the most consumed budgets.
func (a App) budgetDigest(innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	budgets := a.dataset().Budgets
	if len(budgets) == 0 {
		return muted.Render("No budgets yet.")
	}

	var b strings.Builder
	labelW := 14
	barW := max(innerW-labelW-8, 6)
	shown := 0
	for _, bg := range budgets {
		if shown == 5 {
			break
		}
		v := pipeline.BudgetVisual(bg)
		if shown > 0 {
			b.WriteString("\n")
		}
		b.WriteString(components.BudgetBar(bg.Category, v.Percent, v.BarTier, labelW, barW))
		shown++
	}

	s := a.budgets
	b.WriteString("\n")
	summary := fmt.Sprintf("%s of %s spent", cli.FormatMoney(s.Spent), cli.FormatMoney(s.Limit))
	if s.Exceeded > 0 {
		summary += fmt.Sprintf(" · %d exceeded", s.Exceeded)
	}
	b.WriteString(muted.Render(summary))
	return b.String()
}

// pendingDigest lists the anchor month's unsettled transactions.
func (a App) pendingDigest(innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	pending := pipeline.FilterTransactions(a.monthTxs, pipeline.TxFilter{Status: string(model.Pending)})

	var b strings.Builder
	if len(pending) == 0 {
		b.WriteString(muted.Render("Nothing pending."))
	}
	amountW := 16
	descW := max(innerW-amountW-8, 8)
	for i, tx := range pending {
		if i == 6 {
			b.WriteString(muted.Render(fmt.Sprintf("\n+%d more", len(pending)-i)))
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		amount := lipgloss.NewStyle().Foreground(t.ForType(tx.Type)).Background(t.Surface).
			Render(fmt.Sprintf("%*s", amountW, cli.FormatSignedMoney(tx.Signed())))
		b.WriteString(muted.Render(fmt.Sprintf("%02d ", tx.Date.Day())))
		b.WriteString(text.Render(fmt.Sprintf("%-*s", descW, truncStr(tx.Description, descW))))
		b.WriteString(amount)
	}

	if a.cards.Count > 0 && !a.cards.NextDue.IsZero() {
		b.WriteString("\n\n")
		b.WriteString(muted.Render(fmt.Sprintf("Next card due: %s on %s", a.cards.NextDueCard, cli.FormatDate(a.cards.NextDue))))
	}
	return b.String()
}
