// Package tui provides the interactive Bubble Tea dashboard for finboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/backend"
	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/log"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"
	"github.com/theirongolddev/finboard/internal/tui/components"
	"github.com/theirongolddev/finboard/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the backend is open and the first fetch is done.
type DataLoadedMsg struct {
	Gen     uint64
	Backend *backend.Result
	Data    *pipeline.Dataset
	Err     error // the backend could not be opened
}

// ProgressMsg reports how many collections have arrived.
type ProgressMsg struct {
	Current int
	Total   int
}

// RefreshDataMsg is sent when a background re-fetch completes.
type RefreshDataMsg struct {
	Gen  uint64
	Data *pipeline.Dataset
}

// CreatedMsg reports the outcome of the add-transaction form.
type CreatedMsg struct {
	Tx  model.Transaction
	Err error
}

// Options configures NewApp.
type Options struct {
	Config  config.Config
	Session auth.Session
	// Anchor is any time inside the month to open on.
	Anchor time.Time
	Logger *log.Logger
}

// App is the root Bubble Tea model.
type App struct {
	cfg     config.Config
	session auth.Session
	logger  *log.Logger
	backend *backend.Result

	// Data
	data     *pipeline.Dataset
	loaded   bool
	loadTime time.Duration
	openErr  error

	// gen stamps every fetch. Mounting a view bumps it, and results carrying
	// an older value are dropped.
	gen uint64

	anchor time.Time
	now    func() time.Time

	// Derived for the anchor month
	monthTxs   []model.Transaction
	totals     model.Totals
	prevTotals model.Totals
	byDay      map[int]model.DayGroup
	calByDay   map[int]model.DayGroup
	accounts   model.AccountSummary
	cards      model.CardSummary
	budgets    model.BudgetSummary

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string

	// Per-tab state
	txs          txListState
	cal          calendarState
	budgetFilter string
	reportMonths int
	settings     settingsState

	// Add-transaction form
	addForm *huh.Form
	addVals *TransactionValues

	// First-run setup
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	// Loading
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight  = 5
	scrollOverhead    = 10
	minHalfPageScroll = 1

	defaultReportMonths = 6
	minRefreshInterval  = 10 * time.Second
)

// NewApp creates the dashboard model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	refreshInterval := time.Duration(opts.Config.TUI.RefreshIntervalSec) * time.Second
	if refreshInterval < minRefreshInterval {
		refreshInterval = 30 * time.Second
	}

	anchor := opts.Anchor
	if anchor.IsZero() {
		anchor = time.Now()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	return App{
		cfg:             opts.Config,
		session:         opts.Session,
		logger:          logger.WithComponent(log.ComponentApp),
		anchor:          monthStart(anchor),
		now:             time.Now,
		needSetup:       !config.Exists(),
		autoRefresh:     opts.Config.TUI.AutoRefresh,
		refreshInterval: refreshInterval,
		budgetFilter:    model.BudgetFilterActive,
		reportMonths:    defaultReportMonths,
		txs:             newTxListState(),
		cal:             newCalendarState(),
		spinner:         sp,
		loadSub:         make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.cfg, a.session, a.logger, a.gen, a.loadSub),
		a.spinner.Tick,
		tickCmd(),
	)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (a App) dataset() *pipeline.Dataset {
	if a.data == nil {
		return &pipeline.Dataset{Errors: map[string]error{}}
	}
	return a.data
}

func (a App) gateway() gateway.Gateway {
	if a.backend == nil || a.backend.Gateway == nil {
		return gateway.Unconfigured{}
	}
	return a.backend.Gateway
}

// currentPeriod is the label the budgets "current" filter matches.
func (a App) currentPeriod() string {
	if a.cfg.Budgets.CurrentPeriod != "" {
		return a.cfg.Budgets.CurrentPeriod
	}
	return pipeline.PeriodLabel(a.anchor)
}

// recompute derives every view model from the dataset and the anchor.
func (a *App) recompute() {
	ds := a.dataset()

	a.monthTxs = pipeline.InMonth(ds.Transactions, a.anchor)
	a.totals = pipeline.TotalsByType(a.monthTxs)
	a.prevTotals = pipeline.TotalsByType(pipeline.InMonth(ds.Transactions, a.anchor.AddDate(0, -1, 0)))
	a.byDay = pipeline.GroupByDay(ds.Transactions, a.anchor)
	a.regroupCalendar()
	a.accounts = pipeline.AccountTotals(ds.Accounts)
	a.cards = pipeline.CardTotals(ds.Cards, a.now())
	a.budgets = pipeline.BudgetTotals(ds.Budgets)

	if n := len(a.filteredTransactions()); a.txs.cursor >= n {
		a.txs.cursor = max(n-1, 0)
	}
	if a.cal.selectedDay > daysInMonth(a.anchor) {
		a.cal.selectedDay = 0
	}
}

func daysInMonth(anchor time.Time) int {
	return monthStart(anchor).AddDate(0, 1, -1).Day()
}

// shiftMonth moves the anchor by delta months.
func (a *App) shiftMonth(delta int) {
	a.anchor = a.anchor.AddDate(0, delta, 0)
	a.cal.selectedDay = 0
	a.txs.cursor = 0
	a.recompute()
}

// mount switches to tab and re-fetches for it. Any fetch still in flight
// for the previous view is invalidated.
func (a App) mount(tab int) (App, tea.Cmd) {
	if tab == a.activeTab || tab < 0 || tab >= len(components.Tabs) {
		return a, nil
	}
	a.activeTab = tab
	a.gen++
	a.flash = ""
	if !a.loaded {
		return a, nil
	}
	a.refreshing = true
	return a, refreshDataCmd(a.gateway(), a.gen)
}

// refetch re-reads everything for the mounted view.
func (a App) refetch() (App, tea.Cmd) {
	if a.refreshing || !a.loaded {
		return a, nil
	}
	a.refreshing = true
	return a, refreshDataCmd(a.gateway(), a.gen)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.addForm != nil {
			a.addForm = a.addForm.WithWidth(min(msg.Width, 72))
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.addForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return a.scroll(-1), nil
		case tea.MouseButtonWheelDown:
			return a.scroll(1), nil
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					return a.mount(tab)
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		if msg.Gen != a.gen {
			_ = msg.Backend.Close()
			return a, nil
		}
		_ = a.backend.Close()
		a.backend = msg.Backend
		a.openErr = msg.Err
		a.data = msg.Data
		a.loaded = true
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Data != nil {
			a.loadTime = msg.Data.LoadTime
		}
		a.recompute()

		if a.needSetup && a.setupForm == nil {
			a.setupVals = setupValuesFrom(a.cfg)
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case RefreshDataMsg:
		if msg.Gen != a.gen {
			// A newer fetch for the mounted view is still in flight.
			return a, nil
		}
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Data != nil {
			a.data = msg.Data
			a.loadTime = msg.Data.LoadTime
			a.recompute()
		}
		return a, nil

	case CreatedMsg:
		if msg.Err != nil {
			a.flash = "Could not save: " + gateway.Info(msg.Err).Message
			return a, nil
		}
		a.flash = fmt.Sprintf("Saved %q (%s)", msg.Tx.Description, cli.FormatMoney(msg.Tx.Amount))
		a.refreshing = true
		return a, refreshDataCmd(a.gateway(), a.gen)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing && a.setupForm == nil {
			if time.Since(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, refreshDataCmd(a.gateway(), a.gen))
			}
		}
		return a, tea.Batch(cmds...)
	}

	// Forward everything else (cursor blinks, etc.) to an open form.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.addForm != nil {
		return a.updateAddForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// Open forms and text inputs take every key.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.addForm != nil {
		return a.updateAddForm(msg)
	}
	if a.activeTab == components.TabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if a.activeTab == components.TabTransactions && a.txs.searching {
		return a.updateTxSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Tab-local bindings first.
	var (
		handled bool
		cmd     tea.Cmd
	)
	switch a.activeTab {
	case components.TabTransactions:
		a, cmd, handled = a.updateTransactionsKey(key)
	case components.TabCalendar:
		a, cmd, handled = a.updateCalendarKey(key)
	case components.TabBudgets:
		a, cmd, handled = a.updateBudgetsKey(key)
	case components.TabReports:
		a, cmd, handled = a.updateReportsKey(key)
	case components.TabSettings:
		a, cmd, handled = a.updateSettingsKey(key)
	}
	if handled {
		return a, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		return a.refetch()
	case "R":
		a.autoRefresh = !a.autoRefresh
		a.cfg.TUI.AutoRefresh = a.autoRefresh
		if err := saveTUISettings(a.autoRefresh, a.refreshInterval); err != nil {
			a.logger.Warn("saving auto-refresh setting", log.FieldError, err)
		}
		return a, nil
	case "a":
		return a.openAddForm()
	case "<", ",":
		a.shiftMonth(-1)
		return a, nil
	case ">", ".":
		a.shiftMonth(1)
		return a, nil
	case "left":
		return a.mount((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
	case "right":
		return a.mount((a.activeTab + 1) % len(components.Tabs))
	}

	if r := []rune(key); len(r) == 1 {
		if tab := components.TabIdxByKey(r[0]); tab >= 0 {
			return a.mount(tab)
		}
	}
	return a, nil
}

// scroll moves the cursor of the mounted list by delta.
func (a App) scroll(delta int) App {
	switch a.activeTab {
	case components.TabTransactions:
		n := len(a.filteredTransactions())
		a.txs.cursor = max(0, min(a.txs.cursor+delta, n-1))
	case components.TabCalendar:
		a.cal.moveDay(delta, daysInMonth(a.anchor))
	}
	return a
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupForm = nil
		a.needSetup = false
		if err := a.saveSetupConfig(); err != nil {
			a.flash = "Could not save config: " + err.Error()
		}
		// Settings may point at a different backend: reopen and reload.
		a.loaded = false
		a.progress, a.progressMax = 0, 0
		a.gen++
		return a, tea.Batch(loadDataCmd(a.cfg, a.session, a.logger, a.gen, a.loadSub), a.spinner.Tick)
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finboard needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ finboard"))
	b.WriteString(subtitleStyle.Render(" · " + cli.FormatMonth(a.anchor)))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := max(min(40, a.width-30), 20)
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(fmt.Sprintf(" Loading collections (%d/%d)\n\n", a.progress, a.progressMax)))
		b.WriteString(components.ProgressBar(float64(a.progress)/float64(a.progressMax), barW))
	} else {
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Connecting to " + a.cfg.Backend.Type + "..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o t c b w p x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"< >", "Previous / Next month"},
			{"j k", "Move in lists and calendar"},
			{"^d ^u", "Half-page scroll"},
		}},
		{"Filters", []struct{ key, desc string }{
			{"f", "Cycle status / budget filter"},
			{"y", "Cycle type filter"},
			{"/", "Search transactions"},
			{"esc", "Clear day selection or search"},
			{"+ -", "More / fewer report months"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"a", "Add transaction"},
			{"r", "Refresh data"},
			{"R", "Toggle auto-refresh"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-14s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + context row
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	ctx := pillStyle.Render(" ") + accentStyle.Render(cli.FormatMonth(a.anchor))
	if a.session.Email != "" {
		ctx += pillStyle.Render(" │ ") + accentStyle.Render(a.session.Email)
	}
	if a.flash != "" {
		ctx += pillStyle.Render(" │ ") + lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Render(a.flash)
	}
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(ctx)

	// 2. Status bar
	backendName := a.cfg.Backend.Type
	if a.backend != nil && a.backend.Name != "" {
		backendName = a.backend.Name
	}
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		Backend:     backendName,
		DataAge:     fmt.Sprintf("%.1fs", a.loadTime.Seconds()),
		Error:       a.errorMessage(),
		Refreshing:  a.refreshing,
		AutoRefresh: a.autoRefresh,
	})

	// 3. Content zone
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	if a.addForm != nil {
		content = a.renderAddForm(cw)
	} else {
		switch a.activeTab {
		case components.TabOverview:
			content = a.renderOverviewTab(cw)
		case components.TabTransactions:
			content = a.renderTransactionsTab(cw, contentH)
		case components.TabCalendar:
			content = a.renderCalendarTab(cw)
		case components.TabBudgets:
			content = a.renderBudgetsTab(cw)
		case components.TabWallet:
			content = a.renderWalletTab(cw)
		case components.TabReports:
			content = a.renderReportsTab(cw)
		case components.TabSettings:
			content = a.renderSettingsTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// errorMessage is the first collection error, or the backend open failure.
func (a App) errorMessage() string {
	if a.openErr != nil {
		return a.openErr.Error()
	}
	if err := a.dataset().Err(); err != nil {
		return gateway.Info(err).Message
	}
	return ""
}

// ─── Commands ───────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadDataCmd opens the configured backend and fetches every collection in
// a background goroutine, streaming ProgressMsg updates and a final
// DataLoadedMsg through sub.
func loadDataCmd(cfg config.Config, sess auth.Session, logger *log.Logger, gen uint64, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			ctx := context.Background()

			res, err := backend.Open(ctx, cfg, sess, logger)
			if err != nil {
				sub <- DataLoadedMsg{
					Gen:     gen,
					Backend: &backend.Result{Gateway: gateway.Unconfigured{}, Name: cfg.Backend.Type},
					Data:    &pipeline.Dataset{Errors: map[string]error{}},
					Err:     err,
				}
				return
			}

			// Non-blocking send: a skipped update is caught up by the next one.
			progressFn := func(done, total int) {
				select {
				case sub <- ProgressMsg{Current: done, Total: total}:
				default:
				}
			}

			sub <- DataLoadedMsg{
				Gen:     gen,
				Backend: res,
				Data:    pipeline.Load(ctx, res.Gateway, progressFn),
			}
		}()

		return <-sub
	}
}

// waitForLoadMsg blocks until the loader goroutine sends again.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// refreshDataCmd re-fetches every collection without progress UI.
func refreshDataCmd(gw gateway.Gateway, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return RefreshDataMsg{
			Gen:  gen,
			Data: pipeline.Load(context.Background(), gw, nil),
		}
	}
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab under column x, or -1. Hitboxes follow the
// widths RenderTabBar draws.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w on the background
// color, so gaps between cards are not left unstyled.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
