package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"
	"github.com/theirongolddev/finboard/internal/tui/components"
	"github.com/theirongolddev/finboard/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const maxReportMonths = 24

func (a App) updateReportsKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "+", "=":
		a.reportMonths = min(a.reportMonths+1, maxReportMonths)
	case "-", "_":
		a.reportMonths = max(a.reportMonths-1, 1)
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderReportsTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	txs := a.dataset().Transactions
	series := pipeline.MonthlySeries(txs, a.anchor, a.reportMonths)

	income := make([]float64, len(series))
	expense := make([]float64, len(series))
	labels := make([]string, len(series))
	totIn, totOut := decimal.Zero, decimal.Zero
	for i, m := range series {
		income[i] = m.Income.InexactFloat64()
		expense[i] = m.Expense.InexactFloat64()
		labels[i] = m.Month.Format("Jan")
		totIn = totIn.Add(m.Income)
		totOut = totOut.Add(m.Expense)
	}

	var b strings.Builder

	var chart strings.Builder
	chart.WriteString(components.BarChart([]components.Series{
		{Values: income, Color: t.Green},
		{Values: expense, Color: t.Red},
	}, labels, components.CardInnerWidth(cw), 10))
	chart.WriteString("\n")
	n := decimal.NewFromInt(int64(len(series)))
	chart.WriteString(muted.Render(fmt.Sprintf("avg in %s · avg out %s · [+/-] months",
		cli.FormatMoney(totIn.Div(n)), cli.FormatMoney(totOut.Div(n)))))

	title := fmt.Sprintf("Last %d months · to %s", a.reportMonths, cli.FormatMonth(a.anchor))
	b.WriteString(components.ContentCard(title, chart.String(), cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	expCard := components.ContentCard("Expense by category · "+cli.FormatMonth(a.anchor),
		categoryBars(a.monthTxs, model.Expense, t.Red, components.CardInnerWidth(halves[0])), halves[0])
	incCard := components.ContentCard("Income by category · "+cli.FormatMonth(a.anchor),
		categoryBars(a.monthTxs, model.Income, t.GreenBright, components.CardInnerWidth(halves[1])), halves[1])
	if a.isCompactLayout() {
		b.WriteString(expCard)
		b.WriteString("\n")
		b.WriteString(incCard)
	} else {
		b.WriteString(components.CardRow([]string{expCard, incCard}))
	}

	return b.String()
}

func categoryBars(txs []model.Transaction, typ model.TxType, color lipgloss.Color, w int) string {
	cats := pipeline.ByCategory(txs, typ)
	if len(cats) == 0 {
		t := theme.Active
		return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("Nothing this month.")
	}
	rows := make([]components.HBar, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, components.HBar{
			Label:   c.Category,
			Value:   c.Amount.InexactFloat64(),
			Caption: fmt.Sprintf("%s %5.1f%%", cli.FormatMoney(c.Amount), c.Share),
		})
	}
	return components.HBarList(rows, color, w)
}
