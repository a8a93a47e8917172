package components

import (
	"strings"

	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune // shortcut shown as [n] on inactive tabs
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Tabella", Key: '1'},
	{Name: "Parametri", Key: '2'},
	{Name: "Riepilogo", Key: '3'},
	{Name: "Impostazioni", Key: '4'},
}

// TabVisualWidth is the rendered width of tab, including its padding and
// the shortcut hint shown when inactive.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name) + 2
	if !active {
		w += 3
	}
	return w
}

// RenderTabBar renders the tab bar with the given active index.
// Tabs are separated by a single column.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	sepStyle := lipgloss.NewStyle().Background(t.Surface)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		parts = append(parts, inactiveStyle.Render(" "+tab.Name)+
			dimKeyStyle.Render("[")+keyStyle.Render(string(tab.Key))+dimKeyStyle.Render("]")+
			inactiveStyle.Render(" "))
	}

	bar := strings.Join(parts, sepStyle.Render(" "))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(bar)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
