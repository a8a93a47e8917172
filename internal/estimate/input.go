package estimate

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseAmount parses a non-negative number typed by a user. It accepts a
// euro sign, dot or comma decimal separators and thousands grouping in
// either convention ("1250.5", "1250,5", "1.250,50", "1,250.50").
// Exponent notation is rejected, and so is a lone dot followed by exactly
// three digits ("1.000"), which reads as a thousands group in Italian and as
// a decimal mark in English.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, "€", "")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, "\u00a0", "")
	if clean == "" {
		return decimal.Zero, eris.Wrap(ErrInvalidNumericInput, "empty value")
	}
	if strings.ContainsAny(clean, "eE") {
		return decimal.Zero, eris.Wrapf(ErrInvalidNumericInput, "%q uses exponent notation", s)
	}
	if ambiguousGrouping(clean) {
		return decimal.Zero, eris.Wrapf(ErrInvalidNumericInput,
			"%q is ambiguous: write 1000 for one thousand or use a comma for decimals", s)
	}

	clean = normalizeSeparators(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, eris.Wrapf(ErrInvalidNumericInput, "%q is not a number", s)
	}
	if d.IsNegative() {
		return decimal.Zero, eris.Wrapf(ErrInvalidNumericInput, "%q is negative", s)
	}
	return d, nil
}

// ParseMargin parses the error margin. A trailing percent sign means the
// value is a percentage ("10%" == 0.1); otherwise it is a fraction.
func ParseMargin(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if pct, ok := strings.CutSuffix(trimmed, "%"); ok {
		d, err := ParseAmount(pct)
		if err != nil {
			return decimal.Zero, err
		}
		return d.Div(hundred), nil
	}
	return ParseAmount(trimmed)
}

// ambiguousGrouping reports whether s is a single dot with one to three
// leading digits (not starting with 0) and exactly three trailing digits.
func ambiguousGrouping(s string) bool {
	if strings.Contains(s, ",") || strings.Count(s, ".") != 1 {
		return false
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) == 0 || len(intPart) > 3 || intPart[0] == '0' || len(frac) != 3 {
		return false
	}
	return allDigits(intPart) && allDigits(frac)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatInput renders d the way ParseAmount reads it back unchanged: no
// grouping and a comma decimal mark.
func FormatInput(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

// normalizeSeparators rewrites s so that '.' is the only decimal separator
// and grouping characters are removed.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}
