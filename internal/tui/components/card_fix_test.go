package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/finboard/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Accounts", "R$ 500,00", 22)
	tallCard := ContentCard("Cards", "Nubank\nInter\nLimit\nInvoice\nDue", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI codes under the short card: %q", i, lines[i])
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	want := lipgloss.Width(tallCard) + lipgloss.Width(shortCard)
	for i, line := range lines {
		if got := lipgloss.Width(line); got != want {
			t.Errorf("line %d width = %d, want %d", i, got, want)
		}
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	tests := []struct {
		total, n int
	}{
		{100, 3},
		{80, 4},
		{7, 2},
		{120, 5},
	}
	for _, tt := range tests {
		widths := LayoutRow(tt.total, tt.n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tt.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tt.total, tt.n, sum)
		}
		if widths[0] < widths[len(widths)-1] {
			t.Errorf("LayoutRow(%d, %d) = %v, leading items should absorb the remainder", tt.total, tt.n, widths)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	row := MetricCardRow([]Metric{
		{Label: "Balance", Value: "R$ 3.684,10"},
		{Label: "Income", Value: "R$ 5.800,00", Delta: "2 entries"},
		{Label: "Expense", Value: "R$ 2.115,90"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}
