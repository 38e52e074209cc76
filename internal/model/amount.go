package model

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var plainAmount = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// ParseAmount converts user-entered money text into a decimal rounded to
// cents. Both "1.234,56" and "1,234.56" are understood; when only one kind of
// separator appears once it is taken as the decimal point. Anything that does
// not parse yields zero so a typo never poisons a sum. Exponent notation is
// rejected.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	if !plainAmount.MatchString(s) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}

// ParseMagnitude is ParseAmount without the sign, for fields that only hold
// magnitudes (transaction amounts, limits, invoices).
func ParseMagnitude(s string) decimal.Decimal {
	return ParseAmount(s).Abs()
}
