// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finboard/internal/model"
)

// CurrencySymbol prefixes every formatted amount. Set from config at startup.
var CurrencySymbol = "R$"

// FormatMoney formats an amount with the currency symbol, dot thousands and
// comma decimals. e.g., 1234.5 -> "R$ 1.234,50", -80 -> "-R$ 80,00"
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n, _ := strconv.ParseInt(intPart, 10, 64)
	return sign + CurrencySymbol + " " + FormatNumber(n) + "," + frac
}

// FormatSignedMoney always shows the sign: "+R$ 5.000,00" / "-R$ 55,90".
func FormatSignedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return FormatMoney(d)
	}
	return "+" + FormatMoney(d)
}

// FormatCompactMoney shortens large amounts for chart labels.
// e.g., 1500 -> "1.5K", 2300000 -> "2.3M", 80 -> "80"
func FormatCompactMoney(d decimal.Decimal) string {
	f := d.InexactFloat64()
	abs := f
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", f/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", f/1_000)
	default:
		return d.Round(0).String()
	}
}

// FormatNumber adds dot separators to an integer.
// e.g., 1234567 -> "1.234.567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte('.')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 value.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats the change from previous to current with a sign.
func FormatDelta(current, previous decimal.Decimal) string {
	return FormatSignedMoney(current.Sub(previous))
}

// FormatDate renders a date as DD/MM/YYYY, or "-" when unset.
func FormatDate(d model.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("02/01/2006")
}

// FormatMonth renders "November 2025".
func FormatMonth(t time.Time) string {
	return t.Format("January 2006")
}

// ParseMonth parses a YYYY-MM flag value into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM)", s)
	}
	return t, nil
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
