// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Italian)

// FormatEuro formats an amount with Italian separators.
// e.g., 7875 -> "€ 7.875,00"
func FormatEuro(d decimal.Decimal) string {
	return printer.Sprintf("€ %.2f", d.Round(2).InexactFloat64())
}

// FormatAmount formats a number with Italian separators and up to two
// decimals. e.g., 1250.5 -> "1.250,5"
func FormatAmount(d decimal.Decimal) string {
	return printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}

// FormatArea formats a surface in square meters.
// e.g., 125 -> "125 m²"
func FormatArea(d decimal.Decimal) string {
	return FormatAmount(d) + " m²"
}

// FormatPercent formats a fraction as a percentage string.
// e.g., 0.1 -> "10%", 0.125 -> "12,5%"
func FormatPercent(d decimal.Decimal) string {
	pct := d.Mul(decimal.NewFromInt(100)).Round(1)
	return printer.Sprint(number.Decimal(pct.InexactFloat64(), number.MaxFractionDigits(1))) + "%"
}

// FormatFlag renders an inclusion flag.
func FormatFlag(include bool) string {
	if include {
		return "Sì"
	}
	return "No"
}

// FormatIncidence formats a per-square-meter incidence.
// e.g., 63 -> "€ 63,00/m²"
func FormatIncidence(d decimal.Decimal) string {
	return FormatEuro(d) + "/m²"
}
