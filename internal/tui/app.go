// Package tui provides the interactive Bubble Tea grid for preventivo.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ferrari-contract/preventivo/internal/config"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/export"
	"github.com/ferrari-contract/preventivo/internal/tui/components"
	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Tab indexes, matching components.Tabs.
const (
	tabGrid = iota
	tabParams
	tabSummary
	tabSettings
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

// exportDoneMsg is sent when a background export finishes.
type exportDoneMsg struct {
	format    export.Format
	path      string
	reference string
	err       error
}

// App is the root Bubble Tea model. It owns the estimate session; every
// view recomputes from it, so the grid and the summary never disagree.
type App struct {
	state    *estimate.State
	cfg      config.Config
	cfgPath  string
	variants []estimate.Variant

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	grid     gridState
	params   paramsState
	settings settingsState

	status     string
	statusKind components.StatusKind

	log *zap.Logger
}

// NewApp creates the TUI model around an existing session. cfgPath is
// where the settings tab saves preferences.
func NewApp(state *estimate.State, cfg config.Config, cfgPath string) App {
	variants := append([]estimate.Variant{}, estimate.Variants...)
	variants = append(variants, cfg.CustomVariants()...)

	return App{
		state:    state,
		cfg:      cfg,
		cfgPath:  cfgPath,
		variants: variants,
		log:      zap.L().Named("tui"),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.params.form != nil {
			a.params.form = a.params.form.WithWidth(a.formWidth())
		}
		return a, nil

	case exportDoneMsg:
		a.finishExport(msg)
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.params.form != nil || a.grid.editing {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabGrid {
				a.grid.move(-1, a.state.Len())
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabGrid {
				a.grid.move(1, a.state.Len())
			}
			return a, nil

		case tea.MouseButtonLeft:
			if msg.Action != tea.MouseActionPress {
				return a, nil
			}
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
				return a, nil
			}
			if a.activeTab == tabGrid {
				if row := a.gridRowAtY(msg.Y); row >= 0 {
					a.grid.cursor = row
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Cost editing and the parameters form intercept all keys.
		if a.grid.editing {
			return a.updateGridInput(msg)
		}
		if a.params.form != nil {
			return a.updateParamsForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "tab", "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab", "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		}

		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		switch a.activeTab {
		case tabGrid:
			return a.updateGrid(key)
		case tabParams:
			if key == "enter" || key == "m" {
				return a.paramsStartEdit()
			}
		case tabSummary:
			if f, ok := exportKeys[key]; ok {
				cmd := a.exportCmd(f)
				return a, cmd
			}
		case tabSettings:
			return a.updateSettings(key)
		}
		return a, nil
	}

	// Internal messages of the form and the cursor blink.
	if a.params.form != nil {
		return a.updateParamsForm(msg)
	}
	if a.grid.editing {
		var cmd tea.Cmd
		a.grid.input, cmd = a.grid.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// exportKeys maps the export shortcuts to their formats.
var exportKeys = map[string]export.Format{
	"e": export.FormatXLSX,
	"x": export.FormatPDF,
	"y": export.FormatYAML,
}

// exportCmd snapshots the session and writes it in the background. With no
// active selection nothing is written and the notice is shown instead.
func (a *App) exportCmd(f export.Format) tea.Cmd {
	data, err := export.NewData(a.state.Snapshot())
	if errors.Is(err, estimate.ErrNoActiveSelection) {
		a.setStatus("Nessuna selezione: niente da esportare", components.StatusError)
		return nil
	}
	if err != nil {
		a.setStatus(err.Error(), components.StatusError)
		return nil
	}

	dir := a.cfg.General.ExportDir
	if dir == "" {
		dir = "."
	}
	a.setStatus(fmt.Sprintf("Esportazione %s...", strings.ToUpper(string(f))), components.StatusInfo)

	return func() tea.Msg {
		path, err := export.WriteFile(data, f, "", dir)
		return exportDoneMsg{format: f, path: path, reference: data.Reference, err: err}
	}
}

func (a *App) finishExport(msg exportDoneMsg) {
	if msg.err != nil {
		a.log.Error("export failed", zap.String("format", string(msg.format)), zap.Error(msg.err))
		a.setStatus("Esportazione fallita: "+msg.err.Error(), components.StatusError)
		return
	}
	a.setStatus(fmt.Sprintf("%s salvato in %s", msg.reference, msg.path), components.StatusOK)
}

func (a *App) setStatus(msg string, kind components.StatusKind) {
	a.status = msg
	a.statusKind = kind
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) formWidth() int {
	w := a.contentWidth() - 4
	if w > 72 {
		w = 72
	}
	return w
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminale troppo stretto (%d colonne)\n\n  preventivo richiede almeno %d colonne.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigazione", [][2]string{
			{"1 2 3 4", "Vai alla scheda"},
			{"← → tab", "Scheda precedente / successiva"},
			{"j k", "Riga successiva / precedente"},
		}},
		{"Tabella", [][2]string{
			{"spazio t", "Includi / escludi PT"},
			{"p", "Includi / escludi P1"},
			{"invio c", "Modifica costo/mq"},
			{"r", "Ripristina listino"},
		}},
		{"Esportazione", [][2]string{
			{"e", "Excel"},
			{"x", "PDF"},
			{"y", "YAML"},
		}},
		{"Generale", [][2]string{
			{"esc", "Annulla modifica"},
			{"?", "Mostra / nascondi aiuto"},
			{"q", "Esci"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Scorciatoie"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Premi un tasto per chiudere"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.status, a.statusKind)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabGrid:
		content = a.renderGridTab(cw)
	case tabParams:
		content = a.renderParamsTab(cw)
	case tabSummary:
		content = a.renderSummaryTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch {
	case a.grid.editing:
		return "[invio]conferma  [esc]annulla"
	case a.params.form != nil:
		return "[invio]avanti  [esc]annulla"
	case a.activeTab == tabGrid:
		return "[spazio]PT  [p]P1  [invio]costo  [e/x/y]esporta  [?]aiuto  [q]esci"
	case a.activeTab == tabParams:
		return "[invio]modifica  [?]aiuto  [q]esci"
	case a.activeTab == tabSummary:
		return "[e/x/y]esporta  [?]aiuto  [q]esci"
	default:
		return "[invio]cambia  [s]salva  [?]aiuto  [q]esci"
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
