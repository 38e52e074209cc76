package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/tui/theme"
)

func TestTabVisualWidthMatchesRender(t *testing.T) {
	theme.SetActive("flexoki-dark")
	for active := range Tabs {
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		want += len(Tabs) - 1 // separators

		bar := RenderTabBar(active, 0)
		if got := lipgloss.Width(bar); got != want {
			t.Errorf("active=%d: rendered width %d, computed %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	tests := []struct {
		key  rune
		want int
	}{
		{'o', TabOverview},
		{'t', TabTransactions},
		{'c', TabCalendar},
		{'b', TabBudgets},
		{'w', TabWallet},
		{'p', TabReports},
		{'x', TabSettings},
		{'z', -1},
	}
	for _, tt := range tests {
		if got := TabIdxByKey(tt.key); got != tt.want {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestNextOptionWraps(t *testing.T) {
	opts := model.BudgetFilterOptions
	if got := NextOption(opts, model.BudgetFilterActive); got != model.BudgetFilterExceeded {
		t.Fatalf("after active = %q", got)
	}
	if got := NextOption(opts, model.BudgetFilterCurrent); got != model.BudgetFilterActive {
		t.Fatalf("after current = %q, want wrap to active", got)
	}
	if got := NextOption(opts, "bogus"); got != model.BudgetFilterActive {
		t.Fatalf("unknown current = %q, want first option", got)
	}
}

func TestPillLabel(t *testing.T) {
	if got := PillLabel(model.LabelOption("Todos")); got != "Todos" {
		t.Errorf("label option = %q", got)
	}
	if got := PillLabel(model.ValueOption("Exceeded", "exceeded", "alert")); got != "! Exceeded" {
		t.Errorf("valued option = %q", got)
	}
	if got := PillLabel(model.ValueOption("All", "all", "")); got != "All" {
		t.Errorf("iconless option = %q", got)
	}
}

func TestFilterPillsContainsEveryLabel(t *testing.T) {
	out := FilterPills("f", model.StatusFilterOptions, string(model.Pending))
	for _, o := range model.StatusFilterOptions {
		if !strings.Contains(out, o.Label) {
			t.Errorf("pills missing %q", o.Label)
		}
	}
	if !strings.Contains(out, "[f]") {
		t.Error("pills missing hotkey hint")
	}
}

func TestBarChartDimensions(t *testing.T) {
	theme.SetActive("flexoki-dark")
	out := BarChart([]Series{
		{Values: []float64{5800, 0, 1200}, Color: theme.Active.Green},
		{Values: []float64{2115.9, 300, 900}, Color: theme.Active.Red},
	}, []string{"Sep", "Oct", "Nov"}, 60, 8)

	lines := strings.Split(out, "\n")
	if len(lines) < 4 {
		t.Fatalf("chart too short: %d lines", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > 60 {
			t.Errorf("line %d width %d exceeds 60", i, w)
		}
	}
	if !strings.Contains(lines[len(lines)-1], "Nov") {
		t.Errorf("last line should carry labels, got %q", lines[len(lines)-1])
	}
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	out := BarChart([]Series{{Values: []float64{1, 2, 3}, Color: theme.Active.Blue}}, nil, 10, 2)
	if strings.Contains(out, "\n") {
		t.Fatalf("narrow chart should be a one-line sparkline, got %q", out)
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1500, "1.5k"},
		{2000, "2k"},
		{2_000_000, "2M"},
		{80, "80"},
		{0.5, "0.50"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.in); got != tt.want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHBarListScalesToPeak(t *testing.T) {
	out := HBarList([]HBar{
		{Label: "Moradia", Value: 1200, Caption: "56.7%"},
		{Label: "Alimentação", Value: 600, Caption: "28.4%"},
	}, theme.Active.Red, 50)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	first := strings.Count(lines[0], "█")
	second := strings.Count(lines[1], "█")
	if first <= second {
		t.Errorf("largest value should have the longest bar: %d vs %d", first, second)
	}
	if lipgloss.Width(lines[0]) != lipgloss.Width(lines[1]) {
		t.Errorf("rows should be equally wide")
	}
}

func TestRenderStatusBarFitsWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	bar := RenderStatusBar(100, StatusInfo{Backend: "sqlite", DataAge: "0.2s", AutoRefresh: true})
	if w := lipgloss.Width(bar); w != 100 {
		t.Errorf("status bar width = %d, want 100", w)
	}
	withErr := RenderStatusBar(100, StatusInfo{Backend: "rest", Error: "configuration missing"})
	if !strings.Contains(withErr, "configuration missing") {
		t.Error("status bar should show the error when it fits")
	}
}
