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
)

func (a App) updateBudgetsKey(key string) (App, tea.Cmd, bool) {
	if key == "f" {
		a.budgetFilter = components.NextOption(model.BudgetFilterOptions, a.budgetFilter)
		return a, nil, true
	}
	return a, nil, false
}

// visibleBudgets applies the budget pill to the loaded budgets.
func (a App) visibleBudgets() []model.Budget {
	return pipeline.FilterBudgets(a.dataset().Budgets, a.budgetFilter, a.currentPeriod())
}

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warn := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder

	// Summary over every budget, regardless of the pill.
	s := a.budgets
	remainingColor := t.GreenBright
	if s.Remaining.IsNegative() {
		remainingColor = t.Red
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Limit", Value: cli.FormatMoney(s.Limit), Delta: fmt.Sprintf("%d budgets", s.Count)},
		{Label: "Spent", Value: cli.FormatMoney(s.Spent), Color: t.Red},
		{Label: "Remaining", Value: cli.FormatMoney(s.Remaining), Color: remainingColor},
		{Label: "Exceeded", Value: fmt.Sprintf("%d", s.Exceeded), Delta: "period " + a.currentPeriod(), Color: t.ForTier(exceededTier(s.Exceeded))},
	}, cw))
	b.WriteString("\n")

	var body strings.Builder
	body.WriteString(components.FilterPills("f", model.BudgetFilterOptions, a.budgetFilter))
	body.WriteString("\n\n")

	list := a.visibleBudgets()
	if len(list) == 0 {
		body.WriteString(muted.Render("No budgets match this filter."))
		b.WriteString(components.ContentCard("Budgets", body.String(), cw))
		return b.String()
	}

	innerW := components.CardInnerWidth(cw)
	labelW := 18
	periodW := 12
	remW := 16
	barW := max(innerW-labelW-periodW-remW-10, 8)

	for i, bg := range list {
		if i > 0 {
			body.WriteString("\n")
		}
		v := pipeline.BudgetVisual(bg)
		mark := "  "
		if v.Warning {
			mark = "! "
		}
		body.WriteString(warn.Render(mark))
		body.WriteString(components.BudgetBar(bg.Category, v.Percent, v.BarTier, labelW, barW))
		body.WriteString(blank.Render(" "))

		rem := bg.Remaining()
		remStyle := muted
		if rem.IsNegative() {
			remStyle = warn
		}
		body.WriteString(remStyle.Render(fmt.Sprintf("%*s", remW, cli.FormatSignedMoney(rem))))
		body.WriteString(muted.Render(fmt.Sprintf(" %-*s", periodW, truncStr(bg.Period, periodW))))
	}

	body.WriteString("\n\n")
	body.WriteString(muted.Render(fmt.Sprintf("%d of %d shown · ! over limit", len(list), len(a.dataset().Budgets))))

	b.WriteString(components.ContentCard("Budgets", body.String(), cw))
	return b.String()
}

func exceededTier(n int) model.Tier {
	if n > 0 {
		return model.TierDanger
	}
	return model.TierOK
}
