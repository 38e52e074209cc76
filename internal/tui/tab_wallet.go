package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/tui/components"
	"github.com/theirongolddev/finboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderWalletTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	cardsAvail := t.GreenBright
	if a.cards.Available.IsNegative() {
		cardsAvail = t.Red
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Net worth", Value: cli.FormatMoney(a.accounts.Total.Sub(a.cards.OpenInvoices)), Delta: "accounts minus open invoices"},
		{Label: "Accounts", Value: cli.FormatMoney(a.accounts.Total), Delta: fmt.Sprintf("%d accounts", a.accounts.Count)},
		{Label: "Open invoices", Value: cli.FormatMoney(a.cards.OpenInvoices), Delta: fmt.Sprintf("%d cards", a.cards.Count), Color: t.Red},
		{Label: "Card credit", Value: cli.FormatMoney(a.cards.Available), Delta: "of " + cli.FormatMoney(a.cards.Limit), Color: cardsAvail},
	}, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	accountsCard := components.ContentCard("Accounts", a.accountList(components.CardInnerWidth(halves[0])), halves[0])
	cardsCard := components.ContentCard("Credit cards", a.cardList(components.CardInnerWidth(halves[1])), halves[1])
	if a.isCompactLayout() {
		b.WriteString(accountsCard)
		b.WriteString("\n")
		b.WriteString(cardsCard)
	} else {
		b.WriteString(components.CardRow([]string{accountsCard, cardsCard}))
	}
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Categories", a.categoryList(components.CardInnerWidth(cw)), cw))
	return b.String()
}

// accountList groups accounts under their type with a per-type subtotal.
func (a App) accountList(innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	accounts := a.dataset().Accounts
	if len(accounts) == 0 {
		return muted.Render("No accounts yet.")
	}

	amountW := 16
	nameW := max(innerW-amountW-3, 8)

	var b strings.Builder
	first := true
	for _, typ := range model.AccountTypes {
		var rows []model.Account
		for _, acc := range accounts {
			if acc.Type == typ {
				rows = append(rows, acc)
			}
		}
		if len(rows) == 0 {
			continue
		}
		if !first {
			b.WriteString("\n\n")
		}
		first = false

		head := lipgloss.NewStyle().Foreground(t.ForAccount(typ)).Background(t.Surface).Bold(true)
		b.WriteString(head.Render(fmt.Sprintf("%-*s", nameW+1, strings.ToUpper(string(typ)))))
		b.WriteString(head.Render(fmt.Sprintf("%*s", amountW, cli.FormatMoney(a.accounts.ByType[typ]))))
		for _, acc := range rows {
			b.WriteString("\n")
			b.WriteString(text.Render(fmt.Sprintf("  %-*s", nameW-1, truncStr(acc.Name, nameW-1))))
			amt := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
			if acc.Balance.IsNegative() {
				amt = amt.Foreground(t.Red)
			}
			b.WriteString(amt.Render(fmt.Sprintf("%*s", amountW, cli.FormatMoney(acc.Balance))))
		}
	}
	return b.String()
}

// cardList shows each card's invoice against its limit.
func (a App) cardList(innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	cards := a.dataset().Cards
	if len(cards) == 0 {
		return muted.Render("No credit cards yet.")
	}

	var b strings.Builder
	for i, c := range cards {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text.Render(truncStr(c.Name, innerW)))
		b.WriteString("\n")

		pct := 0.0
		if c.Limit.IsPositive() {
			pct, _ = c.CurrentInvoice.Div(c.Limit).Float64()
		}
		color := t.ForTier(model.TierOK)
		switch {
		case pct > 1:
			color = t.ForTier(model.TierDanger)
		case pct > 0.85:
			color = t.ForTier(model.TierCaution)
		}
		b.WriteString(components.CompactBar("used", pct, color, innerW))
		b.WriteString("\n")
		due := "no due date"
		if !c.DueDate.IsZero() {
			due = "due " + cli.FormatDate(c.DueDate)
		}
		b.WriteString(muted.Render(fmt.Sprintf("invoice %s · available %s · %s",
			cli.FormatMoney(c.CurrentInvoice), cli.FormatSignedMoney(c.Available()), due)))
	}

	if !a.cards.NextDue.IsZero() {
		b.WriteString("\n\n")
		b.WriteString(muted.Render(fmt.Sprintf("Next due: %s on %s", a.cards.NextDueCard, cli.FormatDate(a.cards.NextDue))))
	}
	return b.String()
}

// categoryList lists categories in two columns, expense then income.
func (a App) categoryList(innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	cats := a.dataset().Categories
	if len(cats) == 0 {
		return muted.Render("No categories yet.")
	}

	var expense, income []string
	for _, c := range cats {
		if c.Kind == model.KindIncome {
			income = append(income, c.Name)
		} else {
			expense = append(expense, c.Name)
		}
	}

	colW := max(innerW/2-1, 10)
	rows := max(len(expense), len(income))
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).
		Render(fmt.Sprintf("%-*s ", colW, fmt.Sprintf("Expense (%d)", len(expense)))))
	b.WriteString(lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true).
		Render(fmt.Sprintf("Income (%d)", len(income))))
	for i := 0; i < rows; i++ {
		var left, right string
		if i < len(expense) {
			left = expense[i]
		}
		if i < len(income) {
			right = income[i]
		}
		b.WriteString("\n")
		b.WriteString(text.Render(fmt.Sprintf("%-*s ", colW, truncStr(left, colW))))
		b.WriteString(text.Render(truncStr(right, colW)))
	}
	return b.String()
}
