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

// calendarState tracks the calendar tab. selectedDay 0 means the whole
// month is listed.
type calendarState struct {
	selectedDay int
	status      string
	typ         string
}

func newCalendarState() calendarState {
	return calendarState{status: model.FilterAll, typ: model.FilterAll}
}

// moveDay moves the selection by delta days within a month of n days.
// From no selection, moving forward starts at day 1 and backward at day n.
func (c *calendarState) moveDay(delta, n int) {
	if c.selectedDay == 0 {
		if delta > 0 {
			c.selectedDay = 1
		} else {
			c.selectedDay = n
		}
		return
	}
	c.selectedDay = max(1, min(c.selectedDay+delta, n))
}

func (a App) updateCalendarKey(key string) (App, tea.Cmd, bool) {
	n := daysInMonth(a.anchor)
	switch key {
	case "l", "down":
		a.cal.moveDay(1, n)
	case "h", "up":
		a.cal.moveDay(-1, n)
	case "j":
		a.cal.moveDay(7, n)
	case "k":
		a.cal.moveDay(-7, n)
	case "esc", "0":
		a.cal.selectedDay = 0
	case "f":
		a.cal.status = components.NextOption(model.StatusFilterOptions, a.cal.status)
		a.regroupCalendar()
	case "y":
		a.cal.typ = components.NextOption(model.TypeFilterOptions, a.cal.typ)
		a.regroupCalendar()
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) calendarFilter() pipeline.TxFilter {
	return pipeline.TxFilter{Status: a.cal.status, Type: a.cal.typ}
}

// regroupCalendar rebuilds the calendar's day groups from the transactions
// that pass the status and type pills.
func (a *App) regroupCalendar() {
	a.calByDay = pipeline.GroupByDay(pipeline.FilterTransactions(a.monthTxs, a.calendarFilter()), a.anchor)
}

// calendarDetail is the list under the grid: the selected day, or the
// whole month, narrowed by the status and type pills.
func (a App) calendarDetail() []model.Transaction {
	month := pipeline.FilterTransactions(a.monthTxs, a.calendarFilter())
	return pipeline.SelectDayOrMonth(a.calByDay, a.cal.selectedDay, month, a.anchor)
}

func (a App) renderCalendarTab(cw int) string {
	gridW := 7*calendarCellW + 4
	if a.isCompactLayout() || cw < gridW+40 {
		return a.renderCalendarGrid(cw) + "\n" + a.renderCalendarList(cw)
	}
	listW := cw - gridW
	return components.CardRow([]string{a.renderCalendarGrid(gridW), a.renderCalendarList(listW)})
}

const calendarCellW = 9

func (a App) renderCalendarGrid(w int) string {
	t := theme.Active

	blank := lipgloss.NewStyle().Background(t.Surface)
	head := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	dayStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true)
	todayStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true).Underline(true)
	inStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	outStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	cell := func(s string) string { return fmt.Sprintf("%-*s", calendarCellW, s) }

	today := model.DateOf(a.now())

	var b strings.Builder
	for wd := 0; wd < 7; wd++ {
		b.WriteString(head.Render(cell(cli.FormatDayOfWeek(wd))))
	}
	b.WriteString("\n")

	for _, week := range pipeline.MonthGrid(a.anchor) {
		// Line 1: day numbers with income/expense markers.
		for _, day := range week {
			if day == 0 {
				b.WriteString(blank.Render(cell("")))
				continue
			}
			g, has := a.calByDay[day]
			num := fmt.Sprintf("%2d", day)
			style := dayStyle
			switch {
			case day == a.cal.selectedDay:
				style = selStyle
			case today.SameMonth(a.anchor) && today.Day() == day:
				style = todayStyle
			}
			b.WriteString(style.Render(num))
			marks := ""
			if has && g.IncomeSum.IsPositive() {
				marks += inStyle.Render("▲")
			} else {
				marks += blank.Render(" ")
			}
			if has && g.ExpenseSum.IsPositive() {
				marks += outStyle.Render("▼")
			} else {
				marks += blank.Render(" ")
			}
			b.WriteString(marks)
			b.WriteString(blank.Render(strings.Repeat(" ", calendarCellW-4)))
		}
		b.WriteString("\n")

		// Line 2: the day's net amount.
		for _, day := range week {
			g, has := a.calByDay[day]
			if day == 0 || !has {
				b.WriteString(blank.Render(cell("")))
				continue
			}
			net := g.IncomeSum.Sub(g.ExpenseSum)
			style := inStyle
			if net.IsNegative() {
				style = outStyle
			}
			b.WriteString(style.Render(cell(truncStr(cli.FormatCompactMoney(net), calendarCellW-1))))
		}
		b.WriteString("\n")
	}

	b.WriteString(components.FilterPills("f", model.StatusFilterOptions, a.cal.status))
	b.WriteString("\n")
	b.WriteString(components.FilterPills("y", model.TypeFilterOptions, a.cal.typ))

	return components.ContentCard(cli.FormatMonth(a.anchor), b.String(), w)
}

func (a App) renderCalendarList(w int) string {
	t := theme.Active

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	badgeStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	title := "All of " + cli.FormatMonth(a.anchor)
	if a.cal.selectedDay > 0 {
		title = fmt.Sprintf("%02d/%02d/%d", a.cal.selectedDay, int(a.anchor.Month()), a.anchor.Year())
	}

	items := a.calendarDetail()
	innerW := components.CardInnerWidth(w)

	var b strings.Builder
	if a.cal.selectedDay > 0 {
		g := a.calByDay[a.cal.selectedDay]
		b.WriteString(muted.Render(fmt.Sprintf("in %s · out %s",
			cli.FormatMoney(g.IncomeSum), cli.FormatMoney(g.ExpenseSum))))
		b.WriteString("\n\n")
	}

	if len(items) == 0 {
		b.WriteString(muted.Render("No transactions."))
		return components.ContentCard(title, b.String(), w)
	}

	amountW, badgeW, dayW := 14, 11, 3
	descW := max(innerW-amountW-badgeW-dayW-3, 8)
	for i, tx := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(muted.Render(fmt.Sprintf("%02d ", tx.Date.Day())))
		b.WriteString(text.Render(fmt.Sprintf("%-*s ", descW, truncStr(tx.Description, descW))))
		b.WriteString(badgeStyle.Render(fmt.Sprintf("%-*s ", badgeW, pipeline.StatusBadge(tx))))
		b.WriteString(lipgloss.NewStyle().Foreground(t.ForType(tx.Type)).Background(t.Surface).
			Render(fmt.Sprintf("%*s", amountW, cli.FormatSignedMoney(tx.Signed()))))
	}

	totals := pipeline.TotalsByType(items)
	b.WriteString("\n\n")
	b.WriteString(muted.Render(fmt.Sprintf("%d items · net %s", len(items), cli.FormatSignedMoney(totals.Balance))))

	return components.ContentCard(title, b.String(), w)
}
