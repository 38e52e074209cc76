package tui

import (
	"testing"
	"time"

	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/tui/components"
)

func editSetting(t *testing.T, a App, field int, value string) App {
	t.Helper()
	a.activeTab = components.TabSettings
	a.settings.cursor = field
	a = press(t, a, "enter")
	if !a.settings.editing {
		t.Fatal("enter should start editing")
	}
	a.settings.input.SetValue(value)
	return press(t, a, "enter")
}

func TestSettingsRefreshInterval(t *testing.T) {
	a := newTestApp(t)

	a = editSetting(t, a, settingsFieldRefreshInterval, "5")
	if a.settings.saveErr == nil {
		t.Fatal("an interval under the minimum should be rejected")
	}
	if a.refreshInterval != 30*time.Second {
		t.Fatalf("interval changed to %s", a.refreshInterval)
	}

	a = editSetting(t, a, settingsFieldRefreshInterval, "45")
	if a.settings.saveErr != nil {
		t.Fatalf("save: %v", a.settings.saveErr)
	}
	if a.refreshInterval != 45*time.Second || !a.settings.saved {
		t.Fatalf("interval = %s saved=%v", a.refreshInterval, a.settings.saved)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TUI.RefreshIntervalSec != 45 {
		t.Fatalf("persisted interval = %d", cfg.TUI.RefreshIntervalSec)
	}
}

func TestSettingsPeriodFeedsBudgetFilter(t *testing.T) {
	a := newTestApp(t)
	a = editSetting(t, a, settingsFieldPeriod, "Novembro")
	if a.currentPeriod() != "Novembro" {
		t.Fatalf("current period = %q", a.currentPeriod())
	}

	a = editSetting(t, a, settingsFieldPeriod, "")
	if a.currentPeriod() != "November" {
		t.Fatalf("cleared period should fall back to the month name, got %q", a.currentPeriod())
	}
}

func TestSettingsRejectsUnknownTheme(t *testing.T) {
	a := newTestApp(t)
	a = editSetting(t, a, settingsFieldTheme, "neon")
	if a.settings.saveErr == nil {
		t.Fatal("unknown theme should fail")
	}
}

func TestSettingsCursorBounds(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = components.TabSettings
	for i := 0; i < settingsFieldCount+3; i++ {
		a = press(t, a, "j")
	}
	if a.settings.cursor != settingsFieldCount-1 {
		t.Fatalf("cursor = %d", a.settings.cursor)
	}
}
