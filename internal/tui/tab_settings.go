package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/tui/components"
	"github.com/theirongolddev/finboard/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldPeriod
	settingsFieldAutoRefresh
	settingsFieldRefreshInterval
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool
	saveErr error
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

// loadConfigOrDefault reads the config file for editing. Settings edits are
// written back on top of what is on disk, not the in-memory copy.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// saveTUISettings persists the dashboard refresh settings.
func saveTUISettings(autoRefresh bool, interval time.Duration) error {
	cfg := loadConfigOrDefault()
	cfg.TUI.AutoRefresh = autoRefresh
	cfg.TUI.RefreshIntervalSec = int(interval.Seconds())
	return config.Save(cfg)
}

func (a App) updateSettingsKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		a.settings.saved = false
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		a.settings.saved = false
		return a, nil, true
	case "enter":
		return a.settingsStartEdit()
	}
	return a, nil, false
}

func (a App) settingsStartEdit() (App, tea.Cmd, bool) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(theme.Active.Name)
	case settingsFieldCurrency:
		ti.Placeholder = "R$"
		ti.SetValue(cli.CurrencySymbol)
	case settingsFieldPeriod:
		ti.Placeholder = "empty = month name"
		ti.SetValue(a.cfg.Budgets.CurrentPeriod)
	case settingsFieldAutoRefresh:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.autoRefresh))
	case settingsFieldRefreshInterval:
		ti.Placeholder = "30 (seconds, minimum 10)"
		ti.SetValue(strconv.Itoa(int(a.refreshInterval.Seconds())))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd(), true
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Valid(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
		a.cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldCurrency:
		if val == "" {
			a.settings.saveErr = errors.New("currency symbol cannot be empty")
			return
		}
		cfg.General.Currency = val
		a.cfg.General.Currency = val
		cli.CurrencySymbol = val
	case settingsFieldPeriod:
		cfg.Budgets.CurrentPeriod = val
		a.cfg.Budgets.CurrentPeriod = val
	case settingsFieldAutoRefresh:
		on, err := strconv.ParseBool(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("auto refresh wants true or false, got %q", val)
			return
		}
		cfg.TUI.AutoRefresh = on
		a.cfg.TUI.AutoRefresh = on
		a.autoRefresh = on
	case settingsFieldRefreshInterval:
		sec, err := strconv.Atoi(val)
		if err != nil || time.Duration(sec)*time.Second < minRefreshInterval {
			a.settings.saveErr = fmt.Errorf("refresh interval must be a number of seconds >= %d", int(minRefreshInterval.Seconds()))
			return
		}
		cfg.TUI.RefreshIntervalSec = sec
		a.cfg.TUI.RefreshIntervalSec = sec
		a.refreshInterval = time.Duration(sec) * time.Second
	}

	a.settings.saveErr = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	period := a.cfg.Budgets.CurrentPeriod
	if period == "" {
		period = a.currentPeriod() + " (month name)"
	}

	fields := []field{
		{"Theme", theme.Active.Name},
		{"Currency", cli.CurrencySymbol},
		{"Current period", period},
		{"Auto refresh", strconv.FormatBool(a.autoRefresh)},
		{"Refresh interval", fmt.Sprintf("%ds", int(a.refreshInterval.Seconds()))},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(value); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// Connection info, read-only. Backend changes go through `finboard setup`.
	backendName := a.cfg.Backend.Type
	if a.backend != nil && a.backend.Name != "" {
		backendName = a.backend.Name
	}
	user := a.session.Email
	if user == "" {
		user = a.session.UserID
	}
	if user == "" {
		user = "(none)"
	}
	records := 0
	if ds := a.dataset(); ds != nil {
		records = len(ds.Transactions) + len(ds.Budgets) + len(ds.Accounts) + len(ds.Cards) + len(ds.Categories)
	}

	info := []field{
		{"Backend", backendName},
		{"User", user},
		{"Records loaded", cli.FormatNumber(int64(records))},
		{"Load time", fmt.Sprintf("%.2fs", a.loadTime.Seconds())},
		{"Config file", config.Path()},
		{"Data directory", config.DataDir()},
	}
	var infoBody strings.Builder
	for i, f := range info {
		if i > 0 {
			infoBody.WriteString("\n")
		}
		infoBody.WriteString(labelStyle.Render(fmt.Sprintf("%-17s", f.label+":")))
		infoBody.WriteString(valueStyle.Render(truncStr(f.value, max(innerW-17, 10))))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Connection", infoBody.String(), cw))
	return b.String()
}
