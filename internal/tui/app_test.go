package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ferrari-contract/preventivo/internal/cli"
	"github.com/ferrari-contract/preventivo/internal/config"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	return newTestAppWithVariant(t, "")
}

func newTestAppWithVariant(t *testing.T, variant string) App {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.General.ExportDir = t.TempDir()

	cat, err := cfg.BuildCatalog("")
	require.NoError(t, err)
	v, err := cfg.ResolveVariant(variant)
	require.NoError(t, err)
	s, err := estimate.NewState(cat.Items(), cfg.Parameters(), v)
	require.NoError(t, err)

	a := NewApp(s, cfg, filepath.Join(t.TempDir(), "config.toml"))
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(a App, keys ...string) App {
	for _, k := range keys {
		m, _ := a.Update(keyMsg(k))
		a = m.(App)
	}
	return a
}

func TestToggleFlagsUpdatesEstimate(t *testing.T) {
	a := newTestApp(t)

	a = press(a, " ")
	row := a.state.Rows()[0]
	assert.Equal(t, "PAVIMENTO", row.Name)
	assert.True(t, row.IncludeGroundFloor)

	res, err := a.state.Result()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6250).Equal(res.RawTotal), "raw total %s", res.RawTotal)
	assert.True(t, decimal.NewFromInt(7875).Equal(res.TotalWithMargin), "total %s", res.TotalWithMargin)

	a = press(a, "p")
	assert.True(t, a.state.Rows()[0].IncludeFirstFloor)

	a = press(a, "t")
	assert.False(t, a.state.Rows()[0].IncludeGroundFloor)
}

func TestCursorNavigationClamps(t *testing.T) {
	a := newTestApp(t)

	a = press(a, "k")
	assert.Equal(t, 0, a.grid.cursor)

	a = press(a, "j", "j", "j")
	assert.Equal(t, 3, a.grid.cursor)

	a = press(a, "G")
	assert.Equal(t, a.state.Len()-1, a.grid.cursor)

	a = press(a, "j")
	assert.Equal(t, a.state.Len()-1, a.grid.cursor)

	a = press(a, "g")
	assert.Equal(t, 0, a.grid.cursor)
}

func TestEditUnitCost(t *testing.T) {
	a := newTestApp(t)

	a = press(a, "j", "enter")
	require.True(t, a.grid.editing)

	a = press(a, "backspace", "backspace", "8", "0", ",", "5", "enter")
	assert.False(t, a.grid.editing)
	assert.NoError(t, a.grid.err)

	row := a.state.Rows()[1]
	assert.Equal(t, "SOPRAELEVATO", row.Name)
	assert.True(t, decimal.RequireFromString("80.5").Equal(row.UnitCost), "unit cost %s", row.UnitCost)
}

func TestEditUnitCostRejectsInvalidInput(t *testing.T) {
	a := newTestApp(t)

	a = press(a, "enter", "backspace", "backspace", "a", "b", "c", "enter")
	assert.True(t, a.grid.editing, "editor stays open on invalid input")
	assert.ErrorIs(t, a.grid.err, estimate.ErrInvalidNumericInput)
	assert.True(t, decimal.NewFromInt(50).Equal(a.state.Rows()[0].UnitCost))

	a = press(a, "esc")
	assert.False(t, a.grid.editing)
	assert.NoError(t, a.grid.err)
}

func TestResetRestoresCatalog(t *testing.T) {
	a := newTestApp(t)

	a = press(a, " ", "enter", "backspace", "backspace", "9", "9", "enter")
	require.True(t, decimal.NewFromInt(99).Equal(a.state.Rows()[0].UnitCost))

	a = press(a, "r")
	row := a.state.Rows()[0]
	assert.True(t, decimal.NewFromInt(50).Equal(row.UnitCost))
	assert.False(t, row.IncludeGroundFloor)
}

func TestLockedCellShowsStatus(t *testing.T) {
	a := newTestAppWithVariant(t, "webapp")

	a = press(a, "G", "p")
	row := a.state.Rows()[a.grid.cursor]
	assert.Equal(t, "SOPPALCO", row.Name)
	assert.False(t, row.IncludeFirstFloor)
	assert.Contains(t, a.status, "bloccato")

	// PT on the same row stays editable.
	a = press(a, " ")
	assert.True(t, a.state.Rows()[a.grid.cursor].IncludeGroundFloor)
}

func TestTabNavigation(t *testing.T) {
	a := newTestApp(t)

	a = press(a, "3")
	assert.Equal(t, tabSummary, a.activeTab)

	a = press(a, "tab")
	assert.Equal(t, tabSettings, a.activeTab)

	a = press(a, "tab")
	assert.Equal(t, tabGrid, a.activeTab)
}

func TestExportWithoutSelectionWritesNothing(t *testing.T) {
	a := newTestApp(t)

	m, cmd := a.Update(keyMsg("e"))
	a = m.(App)
	assert.Nil(t, cmd)
	assert.Contains(t, a.status, "Nessuna selezione")

	entries, err := os.ReadDir(a.cfg.General.ExportDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportWritesFile(t *testing.T) {
	a := newTestApp(t)
	a = press(a, " ")

	m, cmd := a.Update(keyMsg("e"))
	a = m.(App)
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	m, _ = a.Update(msg)
	a = m.(App)

	want := filepath.Join(a.cfg.General.ExportDir, "preventivo.xlsx")
	assert.Equal(t, want, done.path)
	assert.FileExists(t, want)
	assert.Contains(t, a.status, done.reference)
}

func TestParamsFormOpensAndCancels(t *testing.T) {
	a := newTestApp(t)

	a = press(a, "2", "enter")
	require.NotNil(t, a.params.form)

	// Keys go to the form, not to the tab bar.
	a = press(a, "3")
	assert.Equal(t, tabParams, a.activeTab)

	a = press(a, "esc")
	assert.Nil(t, a.params.form)
	assert.Contains(t, a.status, "annullata")
}

func TestApplyParams(t *testing.T) {
	a := newTestApp(t)
	a.params.vals = &paramValues{
		client:        "Rossi S.r.l.",
		groundFloor:   "125",
		firstFloor:    "80",
		margin:        "12,5%",
		variableCosts: "1000",
	}

	a.applyParams()

	p := a.state.Parameters()
	assert.Equal(t, "Rossi S.r.l.", p.ClientName)
	assert.True(t, decimal.NewFromInt(80).Equal(p.FirstFloorArea))
	assert.True(t, decimal.RequireFromString("0.125").Equal(p.ErrorMargin))
	assert.True(t, decimal.NewFromInt(1000).Equal(p.VariableCosts))
	assert.Contains(t, a.status, "aggiornati")
}

func TestApplyParamsRejectsInvalidValues(t *testing.T) {
	a := newTestApp(t)
	before := a.state.Parameters()
	a.params.vals = &paramValues{groundFloor: "-5", firstFloor: "1", margin: "0", variableCosts: "0"}

	a.applyParams()

	assert.Equal(t, before, a.state.Parameters())
	assert.Contains(t, a.status, "Valore non valido")
}

func TestParamValuesRoundTrip(t *testing.T) {
	a := newTestApp(t)
	vals := newParamValues(a.state.Parameters())
	assert.Equal(t, "10%", vals.margin)

	p, err := vals.parameters()
	require.NoError(t, err)
	assert.True(t, p.ErrorMargin.Equal(a.state.Parameters().ErrorMargin))
	assert.True(t, p.GroundFloorArea.Equal(a.state.Parameters().GroundFloorArea))

	odd := a.state.Parameters()
	odd.GroundFloorArea = decimal.RequireFromString("62.125")
	odd.ErrorMargin = decimal.RequireFromString("0.12345")
	odd.VariableCosts = decimal.RequireFromString("1250.5")
	require.NoError(t, a.state.SetParameters(odd))

	vals = newParamValues(a.state.Parameters())
	assert.Equal(t, "62,125", vals.groundFloor)
	assert.Equal(t, "12,345%", vals.margin)
	p, err = vals.parameters()
	require.NoError(t, err)
	assert.True(t, p.GroundFloorArea.Equal(odd.GroundFloorArea))
	assert.True(t, p.ErrorMargin.Equal(odd.ErrorMargin))
	assert.True(t, p.VariableCosts.Equal(odd.VariableCosts))
}

func TestEditUnitCostPrefillRoundTrips(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.state.SetUnitCost("PAVIMENTO", decimal.RequireFromString("12.125")))

	a = press(a, "enter")
	require.True(t, a.grid.editing)
	assert.Equal(t, "12,125", a.grid.input.Value())

	a = press(a, "enter")
	assert.False(t, a.grid.editing)
	row, _ := a.state.Row("PAVIMENTO")
	assert.True(t, decimal.RequireFromString("12.125").Equal(row.UnitCost))
}

func TestSettingsCycleAndSave(t *testing.T) {
	t.Cleanup(func() { theme.SetActive("ferrari") })
	a := newTestApp(t)

	a = press(a, "4", "enter")
	assert.Equal(t, "flexoki-dark", theme.Active.Name)

	a = press(a, "j", "enter")
	assert.Equal(t, "webapp", a.state.Variant().Name)

	a = press(a, "j", "enter")
	assert.Equal(t, "listino", a.cfg.Catalog.PriceList)
	assert.True(t, decimal.NewFromInt(60).Equal(a.state.Rows()[0].UnitCost))
	assert.Equal(t, "webapp", a.state.Variant().Name, "variant survives a price list switch")

	a = press(a, "s")
	require.NoError(t, a.settings.saveErr)
	assert.True(t, a.settings.saved)

	cfg, err := config.Load(a.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "webapp", cfg.General.Variant)
	assert.Equal(t, "listino", cfg.Catalog.PriceList)
	assert.Equal(t, "flexoki-dark", cfg.Appearance.Theme)
}

func TestSettingsSaveKeepsEnvironmentOut(t *testing.T) {
	t.Cleanup(func() { theme.SetActive("ferrari") })
	a := newTestApp(t)
	require.NoError(t, os.WriteFile(a.cfgPath, []byte("[defaults]\nclient_name = \"Rossi\"\n"), 0o600))

	// Values a session would carry from PREVENTIVO_* and --log-level.
	a.cfg.Log.Level = "debug"
	a.cfg.Defaults.ErrorMargin = 0.3
	a.cfg.Defaults.ClientName = "Dall'ambiente"

	a = press(a, "4", "enter", "s")
	require.NoError(t, a.settings.saveErr)

	cfg, err := config.LoadFile(a.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "flexoki-dark", cfg.Appearance.Theme)
	assert.Equal(t, "Rossi", cfg.Defaults.ClientName)
	assert.Equal(t, config.DefaultConfig().Log.Level, cfg.Log.Level)
	assert.InDelta(t, config.DefaultConfig().Defaults.ErrorMargin, cfg.Defaults.ErrorMargin, 1e-9)
}

func TestViews(t *testing.T) {
	a := newTestApp(t)

	for _, tab := range []int{tabGrid, tabParams, tabSummary, tabSettings} {
		a.activeTab = tab
		assert.NotEmpty(t, a.View())
	}

	a.activeTab = tabGrid
	assert.Contains(t, a.View(), "PAVIMENTO")

	a = press(a, "?")
	assert.True(t, a.showHelp)
	assert.Contains(t, a.View(), "Scorciatoie")
	a = press(a, "x")
	assert.False(t, a.showHelp)

	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Contains(t, m.(App).View(), "troppo stretto")
}

func TestSummaryWithoutSelectionShowsNotice(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = tabSummary
	out := a.renderSummaryTab(120)
	assert.Contains(t, out, "Nessuna stima attiva")
	assert.NotContains(t, out, "Incidenza PT")

	a = press(a, "1", " ")
	out = a.renderSummaryTab(120)
	assert.Contains(t, out, "Incidenza PT")
	assert.Contains(t, out, cli.FormatEuro(decimal.NewFromInt(7875)))
}
