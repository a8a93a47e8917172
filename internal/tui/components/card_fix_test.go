package components

import (
	"strings"
	"testing"

	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("ferrari")

	shortCard := ContentCard("Breve", "Contenuto", 22)
	tallCard := ContentCard("Alta", "Riga 1\nRiga 2\nRiga 3\nRiga 4\nRiga 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))

	if shortLines >= tallLines {
		t.Fatal("Test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	if len(lines) != tallLines {
		t.Errorf("Joined height should match tallest card: got %d, want %d", len(lines), tallLines)
	}

	for i, line := range lines {
		if i >= shortLines && !strings.Contains(line, "\x1b[") {
			t.Errorf("Line %d has NO ANSI codes - padding is unstyled", i)
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("ferrari")

	shortCard := ContentCard("Breve", "A", 30)
	tallCard := ContentCard("Alta", "A\nB\nC\nD\nE\nF", 20)

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	want := lipgloss.Width(tallCard) + lipgloss.Width(shortCard)
	for i, line := range lines {
		if got := lipgloss.Width(line); got != want {
			t.Errorf("Line %d: width %d, want %d", i, got, want)
		}
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, n := range []int{1, 3, 4, 7} {
		widths := LayoutRow(101, n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != 101 {
			t.Errorf("n=%d: widths sum to %d, want 101", n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should return nil")
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	theme.SetActive("ferrari")
	for active := range Tabs {
		bar := RenderTabBar(active, 0)
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		want += len(Tabs) - 1
		if got := lipgloss.Width(bar); got != want {
			t.Errorf("active=%d: bar width %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('3'); got != 2 {
		t.Errorf("TabIdxByKey('3') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestShareBarClampsPercentage(t *testing.T) {
	theme.SetActive("ferrari")
	bar := ShareBar("PAVIMENTO", "€ 6.250,00", 1.7, 12, 10)
	if !strings.Contains(bar, "100%") {
		t.Errorf("ShareBar should clamp to 100%%: %q", bar)
	}
	if !strings.Contains(bar, "€ 6.250,00") {
		t.Errorf("ShareBar should show the amount: %q", bar)
	}
}

func TestRenderStatusBarWidth(t *testing.T) {
	theme.SetActive("ferrari")
	bar := RenderStatusBar(80, "[?]aiuto  [q]esci", "Esportato", StatusOK)
	if got := lipgloss.Width(bar); got != 80 {
		t.Errorf("status bar width %d, want 80", got)
	}
}
