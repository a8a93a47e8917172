package components

import (
	"fmt"

	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForShare returns the bar color for a product's share of the total.
func ColorForShare(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 0.4:
		return string(t.Red)
	case pct >= 0.2:
		return string(t.Orange)
	case pct >= 0.1:
		return string(t.Accent)
	default:
		return string(t.Green)
	}
}

// ShareBar renders a labeled bar for a fraction of the raw total, followed
// by the percentage and the formatted amount.
func ShareBar(label, amount string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if barWidth < 4 {
		barWidth = 4
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForShare(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForShare(pct))).Background(t.Surface).Bold(true)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		spaceStyle.Render("  ") +
		amountStyle.Render(amount)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
