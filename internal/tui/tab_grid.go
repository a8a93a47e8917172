package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ferrari-contract/preventivo/internal/cli"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/model"
	"github.com/ferrari-contract/preventivo/internal/tui/components"
	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// gridFirstRowY is the screen row of the first product: tab bar, card
// border, card title and column header come before it.
const gridFirstRowY = 4

// gridState tracks the product table cursor and cost editing.
type gridState struct {
	cursor  int
	editing bool
	input   textinput.Model
	err     error
}

func (g *gridState) move(delta, n int) {
	g.cursor += delta
	if g.cursor >= n {
		g.cursor = n - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}

func (a App) gridRowAtY(y int) int {
	row := y - gridFirstRowY
	if row < 0 || row >= a.state.Len() {
		return -1
	}
	return row
}

func (a App) currentRow() model.LineItem {
	return a.state.Rows()[a.grid.cursor]
}

func (a App) updateGrid(key string) (tea.Model, tea.Cmd) {
	n := a.state.Len()

	switch key {
	case "j", "down":
		a.grid.move(1, n)
	case "k", "up":
		a.grid.move(-1, n)
	case "g", "home":
		a.grid.cursor = 0
	case "G", "end":
		a.grid.cursor = n - 1
	case " ", "t":
		a.toggle(model.ColumnGroundFloor)
	case "p":
		a.toggle(model.ColumnFirstFloor)
	case "enter", "c":
		return a.gridStartEdit()
	case "r":
		a.state.Reset()
		a.setStatus("Tabella ripristinata dal listino", components.StatusInfo)
	default:
		if f, ok := exportKeys[key]; ok {
			cmd := a.exportCmd(f)
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) toggle(col model.Column) {
	name := a.currentRow().Name

	var err error
	if col == model.ColumnGroundFloor {
		err = a.state.ToggleGroundFloor(name)
	} else {
		err = a.state.ToggleFirstFloor(name)
	}

	switch {
	case errors.Is(err, estimate.ErrLockedColumn):
		a.setStatus(fmt.Sprintf("%s: %s bloccato nella variante %s", name, col.Label(), a.state.Variant().Name),
			components.StatusError)
	case err != nil:
		a.setStatus(err.Error(), components.StatusError)
	default:
		a.setStatus("", components.StatusInfo)
	}
}

func (a App) gridStartEdit() (tea.Model, tea.Cmd) {
	row := a.currentRow()
	if a.state.Variant().IsLocked(row.Name, model.ColumnUnitCost) {
		a.setStatus(fmt.Sprintf("%s: costo bloccato nella variante %s", row.Name, a.state.Variant().Name),
			components.StatusError)
		return a, nil
	}

	ti := textinput.New()
	ti.Placeholder = "es. 55,50"
	ti.CharLimit = 20
	ti.Width = 16
	ti.SetValue(estimate.FormatInput(row.UnitCost))
	ti.Focus()

	a.grid.input = ti
	a.grid.editing = true
	a.grid.err = nil
	return a, textinput.Blink
}

func (a App) updateGridInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return a.gridCommitEdit()
	case "esc":
		a.grid.editing = false
		a.grid.err = nil
		return a, nil
	}

	var cmd tea.Cmd
	a.grid.input, cmd = a.grid.input.Update(msg)
	return a, cmd
}

func (a App) gridCommitEdit() (tea.Model, tea.Cmd) {
	row := a.currentRow()

	cost, err := estimate.ParseAmount(a.grid.input.Value())
	if err != nil {
		// Keep the editor open so the value can be corrected.
		a.grid.err = err
		return a, nil
	}
	if err := a.state.SetUnitCost(row.Name, cost); err != nil {
		a.grid.err = err
		return a, nil
	}

	a.grid.editing = false
	a.grid.err = nil
	a.setStatus(fmt.Sprintf("%s: %s/m²", row.Name, cli.FormatEuro(cost)), components.StatusOK)
	return a, nil
}

// gridColumn describes one column of the product table.
type gridColumn struct {
	title string
	width int
	right bool
}

var gridColumns = []gridColumn{
	{"", 2, false},
	{"Prodotto", 14, false},
	{"Costo/mq", 12, true},
	{"PT", 5, false},
	{"P1", 5, false},
	{"Stima PT", 14, true},
	{"Stima P1", 14, true},
	{"Stima Totale", 15, true},
}

func (a App) renderGridTab(cw int) string {
	t := theme.Active
	v := a.state.Variant()
	rows := a.state.Rows()

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder

	headers := make([]string, len(gridColumns))
	for i, c := range gridColumns {
		headers[i] = c.title
	}
	b.WriteString(renderGridLine(headers, headerStyle, t.Surface))
	b.WriteString("\n")

	for i, row := range rows {
		selected := i == a.grid.cursor
		bg := t.Surface
		fg := t.TextPrimary
		if selected {
			bg = t.SurfaceBright
		}
		base := lipgloss.NewStyle().Foreground(fg).Background(bg)

		marker := "  "
		if selected {
			marker = "▸ "
		}

		cost := cli.FormatEuro(row.UnitCost)
		if selected && a.grid.editing {
			cost = "…"
		}

		cells := []string{
			lipgloss.NewStyle().Foreground(t.AccentBright).Background(bg).Render(marker),
			base.Bold(selected).Render(padCell(truncStr(row.Name, gridColumns[1].width), gridColumns[1])),
			a.costStyle(row.Name, bg).Render(padCell(cost, gridColumns[2])),
			a.flagCell(row, model.ColumnGroundFloor, bg),
			a.flagCell(row, model.ColumnFirstFloor, bg),
			base.Render(padCell(cli.FormatEuro(row.GroundFloorEstimate), gridColumns[5])),
			base.Render(padCell(cli.FormatEuro(row.FirstFloorEstimate), gridColumns[6])),
			base.Bold(row.LineTotal.IsPositive()).Render(padCell(cli.FormatEuro(row.LineTotal), gridColumns[7])),
		}
		b.WriteString(strings.Join(cells, lipgloss.NewStyle().Background(bg).Render(" ")))
		b.WriteString("\n")
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.LineTotal)
	}
	totals := make([]string, len(gridColumns))
	totals[1] = "Totale"
	totals[len(totals)-1] = cli.FormatEuro(total)
	b.WriteString(renderGridLine(totals, headerStyle, t.Surface))

	if a.grid.editing {
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("Costo/mq %s: ", a.currentRow().Name)))
		b.WriteString(a.grid.input.View())
		if a.grid.err != nil {
			b.WriteString("\n")
			b.WriteString(errStyle.Render(inputErrorText(a.grid.err)))
		}
	}

	title := "Prodotti"
	note := ""
	switch {
	case v.MergedFloorFlag:
		note = "PT e P1 condividono un unico flag"
	case len(v.LockedColumns) > 0:
		note = "bloccati: " + strings.Join(v.LockedColumns, ", ")
	}
	title += " · variante " + v.Name
	if note != "" {
		title += " · " + note
	}

	body := b.String()
	if _, err := a.state.Result(); errors.Is(err, estimate.ErrNoActiveSelection) {
		body += "\n\n" + dimStyle.Render(cli.NoSelectionMessage)
	}

	return components.ContentCard(title, body, cw)
}

func (a App) costStyle(name string, bg lipgloss.Color) lipgloss.Style {
	t := theme.Active
	fg := t.TextPrimary
	if a.state.Variant().IsLocked(name, model.ColumnUnitCost) {
		fg = t.TextDim
	}
	return lipgloss.NewStyle().Foreground(fg).Background(bg)
}

// flagCell renders an inclusion flag. Locked cells show a dash; with a
// merged variant P1 mirrors PT and is dimmed.
func (a App) flagCell(row model.LineItem, col model.Column, bg lipgloss.Color) string {
	t := theme.Active
	v := a.state.Variant()
	w := gridColumns[3]

	if v.IsLocked(row.Name, col) {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(bg).Render(padCell(" -", w))
	}

	include := row.IncludeGroundFloor
	if col == model.ColumnFirstFloor {
		include = row.IncludeFirstFloor
	}

	mark := "[ ]"
	fg := t.TextMuted
	if include {
		mark = "[x]"
		fg = t.GreenBright
	}
	if col == model.ColumnFirstFloor && v.MergedFloorFlag {
		fg = t.TextDim
	}
	return lipgloss.NewStyle().Foreground(fg).Background(bg).Bold(include).Render(padCell(mark, w))
}

func renderGridLine(cells []string, style lipgloss.Style, bg lipgloss.Color) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = style.Render(padCell(c, gridColumns[i]))
	}
	return strings.Join(parts, lipgloss.NewStyle().Background(bg).Render(" "))
}

func padCell(s string, c gridColumn) string {
	pad := c.width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	if c.right {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}

func inputErrorText(err error) string {
	if errors.Is(err, estimate.ErrInvalidNumericInput) {
		return "Valore non valido: inserisci un numero maggiore o uguale a zero"
	}
	return err.Error()
}
