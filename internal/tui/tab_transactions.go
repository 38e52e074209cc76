package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"
	"github.com/theirongolddev/finboard/internal/tui/components"
	"github.com/theirongolddev/finboard/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// txListState tracks the transactions tab.
type txListState struct {
	cursor int

	status string
	typ    string

	searching   bool
	searchInput textinput.Model
	query       string
}

func newTxListState() txListState {
	return txListState{status: model.FilterAll, typ: model.FilterAll}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "description or category"
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

// filteredTransactions is the anchor month's list after the tab's filters.
func (a App) filteredTransactions() []model.Transaction {
	month := pipeline.SelectDayOrMonth(a.byDay, 0, a.dataset().Transactions, a.anchor)
	return pipeline.FilterTransactions(month, pipeline.TxFilter{
		Status: a.txs.status,
		Type:   a.txs.typ,
		Search: a.txs.query,
	})
}

func (a App) updateTransactionsKey(key string) (App, tea.Cmd, bool) {
	n := len(a.filteredTransactions())

	switch key {
	case "/":
		a.txs.searching = true
		a.txs.searchInput = newSearchInput()
		a.txs.searchInput.SetValue(a.txs.query)
		a.txs.searchInput.Focus()
		return a, textinput.Blink, true
	case "esc":
		if a.txs.query != "" {
			a.txs.query = ""
			a.txs.cursor = 0
		}
		return a, nil, true
	case "f":
		a.txs.status = components.NextOption(model.StatusFilterOptions, a.txs.status)
		a.txs.cursor = 0
		return a, nil, true
	case "y":
		a.txs.typ = components.NextOption(model.TypeFilterOptions, a.txs.typ)
		a.txs.cursor = 0
		return a, nil, true
	case "j", "down":
		if a.txs.cursor < n-1 {
			a.txs.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.txs.cursor > 0 {
			a.txs.cursor--
		}
		return a, nil, true
	case "g":
		a.txs.cursor = 0
		return a, nil, true
	case "G":
		a.txs.cursor = max(n-1, 0)
		return a, nil, true
	case "ctrl+d":
		a.txs.cursor = min(a.txs.cursor+a.halfPage(), max(n-1, 0))
		return a, nil, true
	case "ctrl+u":
		a.txs.cursor = max(a.txs.cursor-a.halfPage(), 0)
		return a, nil, true
	}
	return a, nil, false
}

func (a App) halfPage() int {
	return max((a.height-scrollOverhead)/2, minHalfPageScroll)
}

// updateTxSearch handles keys while the search input is focused.
func (a App) updateTxSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.txs.query = strings.TrimSpace(a.txs.searchInput.Value())
		a.txs.searching = false
		a.txs.cursor = 0
		return a, nil
	case "esc":
		a.txs.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.txs.searchInput, cmd = a.txs.searchInput.Update(msg)
	return a, cmd
}

func (a App) renderTransactionsTab(cw, h int) string {
	t := theme.Active

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selected := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	header := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	txs := a.filteredTransactions()
	innerW := components.CardInnerWidth(cw)

	var body strings.Builder

	// Filter row
	body.WriteString(components.FilterPills("f", model.StatusFilterOptions, a.txs.status))
	body.WriteString(muted.Render("   "))
	body.WriteString(components.FilterPills("y", model.TypeFilterOptions, a.txs.typ))
	body.WriteString("\n")
	switch {
	case a.txs.searching:
		body.WriteString(muted.Render("/ ") + a.txs.searchInput.View())
	case a.txs.query != "":
		body.WriteString(muted.Render(fmt.Sprintf("search: %q  [esc] clear", a.txs.query)))
	default:
		body.WriteString(muted.Render("[/] search"))
	}
	body.WriteString("\n\n")

	if len(txs) == 0 {
		body.WriteString(muted.Render("No transactions for " + cli.FormatMonth(a.anchor) + "."))
		return components.ContentCard("Transactions", body.String(), cw)
	}

	// Columns: date, description, category, badge, amount
	dateW, badgeW, amountW := 10, 10, 15
	catW := 14
	descW := max(innerW-dateW-catW-badgeW-amountW-4, 10)

	row := func(date, desc, cat, badge, amount string) string {
		return fmt.Sprintf("%-*s %-*s %-*s %-*s %*s",
			dateW, date,
			descW, truncStr(desc, descW),
			catW, truncStr(cat, catW),
			badgeW, badge,
			amountW, amount)
	}
	body.WriteString(header.Render(row("Date", "Description", "Category", "Status", "Amount")))
	body.WriteString("\n")

	// Card chrome, the filter rows and the footer take about ten lines.
	visible := max(h-10, 3)
	offset := 0
	if a.txs.cursor >= offset+visible {
		offset = a.txs.cursor - visible + 1
	}
	end := min(offset+visible, len(txs))

	for i := offset; i < end; i++ {
		tx := txs[i]
		line := row(cli.FormatDate(tx.Date), tx.Description, tx.Category, pipeline.StatusBadge(tx), cli.FormatSignedMoney(tx.Signed()))
		if i == a.txs.cursor {
			body.WriteString(selected.Render(line))
		} else {
			// Amount column colored by type.
			cut := len([]rune(line)) - amountW
			r := []rune(line)
			body.WriteString(text.Render(string(r[:cut])))
			body.WriteString(lipgloss.NewStyle().Foreground(t.ForType(tx.Type)).Background(t.Surface).Render(string(r[cut:])))
		}
		body.WriteString("\n")
	}

	totals := pipeline.TotalsByType(txs)
	body.WriteString(muted.Render(fmt.Sprintf("%d of %d · in %s · out %s · net %s",
		len(txs), len(a.monthTxs),
		cli.FormatMoney(totals.Income),
		cli.FormatMoney(totals.Expense),
		cli.FormatSignedMoney(totals.Balance))))

	return components.ContentCard("Transactions · "+cli.FormatMonth(a.anchor), body.String(), cw)
}
