package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/memstore"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"
	"github.com/theirongolddev/finboard/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

var testNow = time.Date(2025, time.November, 18, 12, 0, 0, 0, time.UTC)

// newTestApp returns a loaded dashboard over the demo dataset, anchored on
// November 2025.
func newTestApp(t *testing.T) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	store := memstore.New(auth.Session{})
	store.Seed(context.Background())

	a := NewApp(Options{Config: config.DefaultConfig(), Anchor: testNow})
	a.now = func() time.Time { return testNow }
	a.data = pipeline.Load(context.Background(), store, nil)
	a.loaded = true
	a.width, a.height = 140, 45
	a.recompute()
	return a
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestRecomputeMonthTotals(t *testing.T) {
	a := newTestApp(t)

	want := map[string]string{
		"income":  "5800",
		"expense": "2115.9",
		"balance": "3684.1",
	}
	got := map[string]decimal.Decimal{
		"income":  a.totals.Income,
		"expense": a.totals.Expense,
		"balance": a.totals.Balance,
	}
	for k, w := range want {
		if !got[k].Equal(decimal.RequireFromString(w)) {
			t.Fatalf("%s = %s, want %s", k, got[k], w)
		}
	}
	if len(a.monthTxs) != 8 {
		t.Fatalf("monthTxs = %d, want 8", len(a.monthTxs))
	}
	if !a.prevTotals.Income.IsZero() {
		t.Fatalf("October income = %s, want 0", a.prevTotals.Income)
	}
	if a.accounts.Count != 3 || a.cards.Count != 2 || a.budgets.Exceeded != 1 {
		t.Fatalf("summaries = %d accounts, %d cards, %d exceeded", a.accounts.Count, a.cards.Count, a.budgets.Exceeded)
	}
	if g := a.byDay[15]; len(g.Items) != 2 {
		t.Fatalf("day 15 has %d items, want 2", len(g.Items))
	}
}

func TestMountDropsStaleRefresh(t *testing.T) {
	a := newTestApp(t)
	oldGen := a.gen

	a, cmd := a.mount(components.TabBudgets)
	if cmd == nil {
		t.Fatal("mount should issue a fetch")
	}
	if a.gen == oldGen {
		t.Fatal("mount should bump the generation")
	}
	if !a.refreshing {
		t.Fatal("mount should mark a refresh in flight")
	}

	empty := &pipeline.Dataset{Errors: map[string]error{}}
	m, _ := a.Update(RefreshDataMsg{Gen: oldGen, Data: empty})
	a = m.(App)
	if len(a.monthTxs) != 8 {
		t.Fatalf("stale refresh was applied: %d txs", len(a.monthTxs))
	}
	if !a.refreshing {
		t.Fatal("stale refresh should not clear the in-flight flag")
	}

	m, _ = a.Update(RefreshDataMsg{Gen: a.gen, Data: empty})
	a = m.(App)
	if len(a.monthTxs) != 0 || a.refreshing {
		t.Fatalf("current refresh not applied: %d txs, refreshing=%v", len(a.monthTxs), a.refreshing)
	}
}

func TestMountSameTabIsNoop(t *testing.T) {
	a := newTestApp(t)
	gen := a.gen
	a, cmd := a.mount(components.TabOverview)
	if cmd != nil || a.gen != gen {
		t.Fatalf("re-mounting the active tab should do nothing (gen %d -> %d)", gen, a.gen)
	}
}

func TestShiftMonthResetsSelection(t *testing.T) {
	a := newTestApp(t)
	a.cal.selectedDay = 15
	a.txs.cursor = 3

	a = press(t, a, "<")
	if a.anchor.Month() != time.October {
		t.Fatalf("anchor = %s, want October", a.anchor.Month())
	}
	if a.cal.selectedDay != 0 || a.txs.cursor != 0 {
		t.Fatalf("selection not reset: day=%d cursor=%d", a.cal.selectedDay, a.txs.cursor)
	}
	if !a.totals.Income.IsZero() || len(a.monthTxs) != 0 {
		t.Fatal("October should be empty")
	}

	a = press(t, a, ">")
	if a.anchor.Month() != time.November || len(a.monthTxs) != 8 {
		t.Fatalf("back to %s with %d txs", a.anchor.Month(), len(a.monthTxs))
	}
}

func TestTransactionFilters(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = components.TabTransactions

	tests := []struct {
		keys []string
		want int
	}{
		{nil, 8},
		{[]string{"f"}, 3},      // paid
		{[]string{"f"}, 5},      // pending
		{[]string{"y"}, 1},      // pending income
		{[]string{"y"}, 4},      // pending expense
		{[]string{"f", "y"}, 8}, // back to all/all
	}
	for i, tt := range tests {
		a = press(t, a, tt.keys...)
		if got := len(a.filteredTransactions()); got != tt.want {
			t.Fatalf("step %d: %d transactions, want %d (status=%s type=%s)", i, got, tt.want, a.txs.status, a.txs.typ)
		}
	}
}

func TestTransactionSearch(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = components.TabTransactions

	a = press(t, a, "/")
	if !a.txs.searching {
		t.Fatal("/ should open the search input")
	}
	a = press(t, a, "n", "e", "t", "enter")
	if a.txs.query != "net" {
		t.Fatalf("query = %q", a.txs.query)
	}
	// Netflix and Internet
	if got := len(a.filteredTransactions()); got != 2 {
		t.Fatalf("search matched %d, want 2", got)
	}

	a = press(t, a, "esc")
	if a.txs.query != "" || len(a.filteredTransactions()) != 8 {
		t.Fatal("esc should clear the search")
	}
}

func TestTransactionCursorBounds(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = components.TabTransactions

	a = press(t, a, "G")
	if a.txs.cursor != 7 {
		t.Fatalf("G -> %d, want 7", a.txs.cursor)
	}
	a = press(t, a, "j")
	if a.txs.cursor != 7 {
		t.Fatalf("j past the end -> %d", a.txs.cursor)
	}
	a = press(t, a, "g", "k")
	if a.txs.cursor != 0 {
		t.Fatalf("k before the start -> %d", a.txs.cursor)
	}
}

func TestCalendarMoveDay(t *testing.T) {
	tests := []struct {
		start, delta, want int
	}{
		{0, 1, 1},
		{0, -1, 30},
		{1, -1, 1},
		{28, 7, 30},
		{10, 7, 17},
	}
	for _, tt := range tests {
		c := calendarState{selectedDay: tt.start}
		c.moveDay(tt.delta, 30)
		if c.selectedDay != tt.want {
			t.Fatalf("moveDay(%d) from %d = %d, want %d", tt.delta, tt.start, c.selectedDay, tt.want)
		}
	}
}

func TestCalendarDetail(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = components.TabCalendar

	if got := len(a.calendarDetail()); got != 8 {
		t.Fatalf("no selection lists %d, want the whole month", got)
	}

	a = press(t, a, "l", "j", "j") // day 1 -> 8 -> 15
	if a.cal.selectedDay != 15 {
		t.Fatalf("selected day %d, want 15", a.cal.selectedDay)
	}
	if got := len(a.calendarDetail()); got != 2 {
		t.Fatalf("day 15 lists %d, want 2", got)
	}

	a = press(t, a, "y") // income only
	if got := a.calendarDetail(); len(got) != 1 || got[0].Description != "Freelance" {
		t.Fatalf("day 15 income = %v", got)
	}

	a = press(t, a, "esc")
	if a.cal.selectedDay != 0 {
		t.Fatal("esc should clear the day")
	}
}

func TestCalendarFiltersRegroupDays(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = components.TabCalendar

	if g := a.calByDay[15]; !g.IncomeSum.Equal(decimal.NewFromInt(800)) || !g.ExpenseSum.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("day 15 = in %s out %s, want in 800 out 120", g.IncomeSum, g.ExpenseSum)
	}

	a = press(t, a, "y") // income only
	if g := a.calByDay[15]; !g.IncomeSum.Equal(decimal.NewFromInt(800)) || !g.ExpenseSum.IsZero() || len(g.Items) != 1 {
		t.Fatalf("income filter: day 15 = in %s out %s (%d items)", g.IncomeSum, g.ExpenseSum, len(g.Items))
	}
	if _, ok := a.calByDay[10]; ok {
		t.Fatal("day 10 holds only an expense and should drop out of the grid")
	}
	if g := a.byDay[10]; len(g.Items) != 1 {
		t.Fatalf("overview grouping changed: day 10 has %d items", len(g.Items))
	}

	a = press(t, a, "y", "f") // expense, paid
	if g := a.calByDay[15]; len(g.Items) != 0 {
		t.Fatalf("day 15 has no paid expense, got %d items", len(g.Items))
	}
	if g := a.calByDay[10]; !g.ExpenseSum.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("day 10 paid expense = %s, want 450", g.ExpenseSum)
	}

	a.cal.selectedDay = 5
	if g := a.calByDay[5]; !g.IncomeSum.IsZero() || !g.ExpenseSum.IsZero() {
		t.Fatalf("day 5 paid expense = in %s out %s, want nothing", g.IncomeSum, g.ExpenseSum)
	}
	if got := len(a.calendarDetail()); got != 0 {
		t.Fatalf("day 5 lists %d, want 0", got)
	}
}

func TestBudgetFilterCycle(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = components.TabBudgets

	if got := len(a.visibleBudgets()); got != 4 {
		t.Fatalf("active shows %d, want 4", got)
	}

	a = press(t, a, "f")
	if a.budgetFilter != model.BudgetFilterExceeded {
		t.Fatalf("filter = %s", a.budgetFilter)
	}
	if got := a.visibleBudgets(); len(got) != 1 || got[0].Category != "Lazer" {
		t.Fatalf("exceeded = %v", got)
	}

	a = press(t, a, "f")
	// Default period label is the English month name; the demo uses "Novembro".
	if got := len(a.visibleBudgets()); got != 0 {
		t.Fatalf("current with default label = %d, want 0", got)
	}
	a.cfg.Budgets.CurrentPeriod = "Novembro"
	if got := len(a.visibleBudgets()); got != 3 {
		t.Fatalf("current with Novembro = %d, want 3", got)
	}

	a = press(t, a, "f")
	if a.budgetFilter != model.BudgetFilterActive {
		t.Fatal("filter should wrap back to active")
	}
}

func TestReportMonthsBounds(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = components.TabReports

	for i := 0; i < 10; i++ {
		a = press(t, a, "-")
	}
	if a.reportMonths != 1 {
		t.Fatalf("reportMonths = %d, want 1", a.reportMonths)
	}
	for i := 0; i < 30; i++ {
		a = press(t, a, "+")
	}
	if a.reportMonths != maxReportMonths {
		t.Fatalf("reportMonths = %d, want %d", a.reportMonths, maxReportMonths)
	}
}

func TestTabKeysMount(t *testing.T) {
	a := newTestApp(t)
	tests := []struct {
		key  string
		want int
	}{
		{"t", components.TabTransactions},
		{"c", components.TabCalendar},
		{"b", components.TabBudgets},
		{"w", components.TabWallet},
		{"p", components.TabReports},
		{"x", components.TabSettings},
		{"o", components.TabOverview},
	}
	for _, tt := range tests {
		a = press(t, a, tt.key)
		if a.activeTab != tt.want {
			t.Fatalf("key %q -> tab %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t)
	for tab := range components.Tabs {
		a.activeTab = tab
		out := a.View()
		if out == "" {
			t.Fatalf("tab %d rendered nothing", tab)
		}
		if got := lipgloss.Height(out); got != a.height {
			t.Fatalf("tab %d height = %d, want %d", tab, got, a.height)
		}
		if !strings.Contains(out, components.Tabs[tab].Name) {
			t.Fatalf("tab %d output lacks its name", tab)
		}
	}
}

func TestViewCompactLayout(t *testing.T) {
	a := newTestApp(t)
	a.width = 90
	for tab := range components.Tabs {
		a.activeTab = tab
		if out := a.View(); out == "" {
			t.Fatalf("tab %d rendered nothing at width 90", tab)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t)
	a.width = 60
	if out := a.View(); !strings.Contains(out, "too narrow") {
		t.Fatalf("narrow view = %q", out)
	}
}

func TestCreatedMsgFlashesAndRefetches(t *testing.T) {
	a := newTestApp(t)
	tx := model.Transaction{Description: "Padaria", Amount: decimal.RequireFromString("12.5")}

	m, cmd := a.Update(CreatedMsg{Tx: tx})
	a = m.(App)
	if cmd == nil || !a.refreshing {
		t.Fatal("a created record should trigger a refetch")
	}
	if !strings.Contains(a.flash, "Padaria") {
		t.Fatalf("flash = %q", a.flash)
	}
}
