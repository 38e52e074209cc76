package components

import (
	"strings"

	"github.com/theirongolddev/finboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one entry of the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // index of the shortcut letter in Name, -1 if absent
}

// Tabs are the dashboard views in display order.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Transactions", Key: 't', KeyPos: 0},
	{Name: "Calendar", Key: 'c', KeyPos: 0},
	{Name: "Budgets", Key: 'b', KeyPos: 0},
	{Name: "Wallet", Key: 'w', KeyPos: 0},
	{Name: "Reports", Key: 'p', KeyPos: 2},
	{Name: "Settings", Key: 'x', KeyPos: -1},
}

// Tab indexes.
const (
	TabOverview = iota
	TabTransactions
	TabCalendar
	TabBudgets
	TabWallet
	TabReports
	TabSettings
)

// TabVisualWidth is the rendered width of a tab, excluding the separator.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name) + 2
	if !active && tab.KeyPos < 0 {
		w += 3 // "[x]"
	}
	return w
}

// RenderTabBar renders the single-row tab bar padded to width.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true).
		Underline(true)
	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)
	sepStyle := lipgloss.NewStyle().
		Foreground(t.Border).
		Background(t.Surface)

	var b strings.Builder
	for i, tab := range Tabs {
		if i > 0 {
			b.WriteString(sepStyle.Render("│"))
		}
		if i == activeIdx {
			b.WriteString(activeStyle.Render(" " + tab.Name + " "))
			continue
		}

		b.WriteString(inactiveStyle.Render(" "))
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			b.WriteString(inactiveStyle.Render(tab.Name[:tab.KeyPos]))
			b.WriteString(keyStyle.Render(tab.Name[tab.KeyPos : tab.KeyPos+1]))
			b.WriteString(inactiveStyle.Render(tab.Name[tab.KeyPos+1:]))
		} else {
			b.WriteString(inactiveStyle.Render(tab.Name))
			b.WriteString(dimKeyStyle.Render("["))
			b.WriteString(keyStyle.Render(string(tab.Key)))
			b.WriteString(dimKeyStyle.Render("]"))
		}
		b.WriteString(inactiveStyle.Render(" "))
	}

	row := b.String()
	if pad := width - lipgloss.Width(row); pad > 0 {
		row += lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", pad))
	}
	return row
}

// TabIdxByKey returns the tab bound to key, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
