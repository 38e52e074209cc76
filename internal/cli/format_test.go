package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finboard/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"55.9", "R$ 55,90"},
		{"1234.56", "R$ 1.234,56"},
		{"3684.1", "R$ 3.684,10"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"-80", "-R$ 80,00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	if got := FormatSignedMoney(decimal.NewFromInt(5000)); got != "+R$ 5.000,00" {
		t.Fatalf("got %q", got)
	}
	if got := FormatSignedMoney(decimal.RequireFromString("-55.9")); got != "-R$ 55,90" {
		t.Fatalf("got %q", got)
	}
	if got := FormatDelta(decimal.NewFromInt(100), decimal.NewFromInt(150)); got != "-R$ 50,00" {
		t.Fatalf("FormatDelta = %q", got)
	}
}

func TestFormatCompactMoney(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{80, "80"},
		{1500, "1.5K"},
		{2_300_000, "2.3M"},
	}
	for _, tt := range tests {
		if got := FormatCompactMoney(decimal.NewFromInt(tt.in)); got != tt.want {
			t.Errorf("FormatCompactMoney(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{1234567, "1.234.567"},
		{-4321, "-4.321"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDateAndMonth(t *testing.T) {
	if got := FormatDate(model.NewDate(2025, time.November, 5)); got != "05/11/2025" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatDate(model.Date{}); got != "-" {
		t.Fatalf("FormatDate(zero) = %q", got)
	}

	m, err := ParseMonth("2025-11")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMonth(m); got != "November 2025" {
		t.Fatalf("FormatMonth = %q", got)
	}
	if _, err := ParseMonth("11/2025"); err == nil {
		t.Fatal("expected error for bad month")
	}
}

func TestRenderTableAlignsAccents(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Amount"},
		Rows: [][]string{
			{"Salário", "R$ 5.000,00"},
			{"---"},
			{"Saúde", "R$ 90,00"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	width := len([]rune(stripANSI(lines[0])))
	for i, l := range lines {
		if w := len([]rune(stripANSI(l))); w != width {
			t.Errorf("line %d width %d, want %d: %q", i, w, width, stripANSI(l))
		}
	}
}

func TestRenderBudgetBarCaps(t *testing.T) {
	bar := stripANSI(RenderBudgetBar(150, model.TierDanger, 10))
	if bar != strings.Repeat("█", 10) {
		t.Fatalf("bar = %q", bar)
	}
	bar = stripANSI(RenderBudgetBar(50, model.TierOK, 10))
	if bar != strings.Repeat("█", 5)+strings.Repeat("░", 5) {
		t.Fatalf("bar = %q", bar)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 7, -3}); got != "▁█▁" {
		t.Fatalf("sparkline = %q", got)
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
