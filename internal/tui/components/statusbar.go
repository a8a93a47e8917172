package components

import (
	"strings"

	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusKind selects the color of the status message.
type StatusKind int

// Status kinds.
const (
	StatusInfo StatusKind = iota
	StatusOK
	StatusError
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the latest status message on the right.
func RenderStatusBar(width int, hints, msg string, kind StatusKind) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	msgColor := t.TextPrimary
	switch kind {
	case StatusOK:
		msgColor = t.GreenBright
	case StatusError:
		msgColor = t.Red
	}
	msgStyle := lipgloss.NewStyle().Foreground(msgColor).Background(t.Surface).Bold(kind != StatusInfo)

	left := hintStyle.Render(" " + hints)
	right := ""
	if msg != "" {
		right = msgStyle.Render(msg + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Drop the hints before the message.
		left = ""
		padding = width - lipgloss.Width(right)
		if padding < 0 {
			padding = 0
		}
	}

	return left + barStyle.Render(strings.Repeat(" ", padding)) + right
}
