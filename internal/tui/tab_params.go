package tui

import (
	"errors"
	"strings"

	"github.com/ferrari-contract/preventivo/internal/cli"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/model"
	"github.com/ferrari-contract/preventivo/internal/tui/components"
	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// paramsState holds the parameters form while it is open.
type paramsState struct {
	form *huh.Form
	vals *paramValues
}

var hundred = decimal.NewFromInt(100)

// paramValues are the raw strings bound to the form inputs.
type paramValues struct {
	client        string
	groundFloor   string
	firstFloor    string
	margin        string
	variableCosts string
}

func newParamValues(p model.Parameters) *paramValues {
	return &paramValues{
		client:        p.ClientName,
		groundFloor:   estimate.FormatInput(p.GroundFloorArea),
		firstFloor:    estimate.FormatInput(p.FirstFloorArea),
		margin:        estimate.FormatInput(p.ErrorMargin.Mul(hundred)) + "%",
		variableCosts: estimate.FormatInput(p.VariableCosts),
	}
}

// parameters parses the form values. Each field was already validated.
func (v *paramValues) parameters() (model.Parameters, error) {
	var p model.Parameters
	var err error

	p.ClientName = strings.TrimSpace(v.client)
	if p.GroundFloorArea, err = estimate.ParseAmount(v.groundFloor); err != nil {
		return p, err
	}
	if p.FirstFloorArea, err = estimate.ParseAmount(v.firstFloor); err != nil {
		return p, err
	}
	if p.ErrorMargin, err = estimate.ParseMargin(v.margin); err != nil {
		return p, err
	}
	if p.VariableCosts, err = estimate.ParseAmount(v.variableCosts); err != nil {
		return p, err
	}
	return p, nil
}

var errInvalidNumber = errors.New("inserisci un numero maggiore o uguale a zero")

func validateAmount(s string) error {
	_, err := estimate.ParseAmount(s)
	if err != nil {
		return errInvalidNumber
	}
	return nil
}

func validateMargin(s string) error {
	_, err := estimate.ParseMargin(s)
	if err != nil {
		return errInvalidNumber
	}
	return nil
}

func newParamsForm(vals *paramValues, width int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cliente").
				Placeholder("Nome del cliente").
				Value(&vals.client),
			huh.NewInput().
				Title("Superficie PT (m²)").
				Value(&vals.groundFloor).
				Validate(validateAmount),
			huh.NewInput().
				Title("Superficie P1 (m²)").
				Value(&vals.firstFloor).
				Validate(validateAmount),
			huh.NewInput().
				Title("Margine di errore").
				Description("Percentuale (10%) o frazione (0,1)").
				Value(&vals.margin).
				Validate(validateMargin),
			huh.NewInput().
				Title("Costi variabili (€)").
				Value(&vals.variableCosts).
				Validate(validateAmount),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true).WithWidth(width)
}

func (a App) paramsStartEdit() (tea.Model, tea.Cmd) {
	vals := newParamValues(a.state.Parameters())
	a.params.vals = vals
	a.params.form = newParamsForm(vals, a.formWidth())
	return a, a.params.form.Init()
}

func (a App) updateParamsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		a.params = paramsState{}
		a.setStatus("Modifica parametri annullata", components.StatusInfo)
		return a, nil
	}

	form, cmd := a.params.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.params.form = f
	}

	switch a.params.form.State {
	case huh.StateCompleted:
		a.applyParams()
		a.params = paramsState{}
		return a, nil
	case huh.StateAborted:
		a.params = paramsState{}
		return a, nil
	}

	return a, cmd
}

func (a *App) applyParams() {
	p, err := a.params.vals.parameters()
	if err == nil {
		err = a.state.SetParameters(p)
	}
	if err != nil {
		a.setStatus(inputErrorText(err), components.StatusError)
		return
	}
	a.setStatus("Parametri aggiornati", components.StatusOK)
}

func (a App) renderParamsTab(cw int) string {
	if a.params.form != nil {
		return components.ContentCard("Modifica parametri", a.params.form.View(), cw)
	}

	t := theme.Active
	p := a.state.Parameters()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	client := p.ClientName
	if client == "" {
		client = "-"
	}

	fields := []struct{ label, value string }{
		{"Cliente", client},
		{"Superficie PT", cli.FormatArea(p.GroundFloorArea)},
		{"Superficie P1", cli.FormatArea(p.FirstFloorArea)},
		{"Superficie totale", cli.FormatArea(p.TotalArea())},
		{"Margine di errore", cli.FormatPercent(p.ErrorMargin)},
		{"Costi variabili", cli.FormatEuro(p.VariableCosts)},
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(labelStyle.Render(padRight(f.label, 20)))
		b.WriteString(valueStyle.Render(f.value))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Premi invio per modificare"))

	return components.ContentCard("Parametri", b.String(), cw)
}

func padRight(s string, w int) string {
	if pad := w - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
