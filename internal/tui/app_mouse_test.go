package tui

import (
	"testing"

	"github.com/ferrari-contract/preventivo/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	n := len(components.Tabs)
	for active := 0; active < n; active++ {
		a := App{activeTab: active}
		pos := 0

		for i := 0; i < n; i++ {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < n-1 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("active=%d x=%d past the last tab -> %d, want -1", active, pos+5, got)
		}
	}
}

func tabWidthForTest(tabIdx, activeIdx int) int {
	nameWidths := []int{
		len("Tabella"),
		len("Parametri"),
		len("Riepilogo"),
		len("Impostazioni"),
	}

	w := nameWidths[tabIdx] + 2 // horizontal padding in tab renderer
	if tabIdx != activeIdx {
		w += 3 // inactive tabs add "[n]"
	}
	return w
}

func TestMouseClickSelectsTabAndRow(t *testing.T) {
	a := newTestApp(t)

	m, _ := a.Update(tea.MouseMsg{X: 1, Y: gridFirstRowY + 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	a = m.(App)
	if a.grid.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", a.grid.cursor)
	}

	m, _ = a.Update(tea.MouseMsg{Y: 0, X: tabWidthForTest(0, 0) + 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	a = m.(App)
	if a.activeTab != tabParams {
		t.Fatalf("activeTab = %d, want %d", a.activeTab, tabParams)
	}
}

func TestMouseWheelMovesCursor(t *testing.T) {
	a := newTestApp(t)

	m, _ := a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	a = m.(App)
	m, _ = a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	a = m.(App)
	m, _ = a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	a = m.(App)

	if a.grid.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.grid.cursor)
	}
}
