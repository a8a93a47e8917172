package tui

import (
	"strings"

	"github.com/ferrari-contract/preventivo/internal/catalog"
	"github.com/ferrari-contract/preventivo/internal/config"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// SetupValues are the answers of the setup wizard, bound to the form.
type SetupValues struct {
	ClientName      string
	GroundFloorArea string
	FirstFloorArea  string
	ErrorMargin     string
	VariableCosts   string
	Variant         string
	PriceList       string
	Theme           string
}

// NewSetupValues pre-fills the wizard from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	d := cfg.Defaults
	return &SetupValues{
		ClientName:      d.ClientName,
		GroundFloorArea: estimate.FormatInput(decimal.NewFromFloat(d.GroundFloorArea)),
		FirstFloorArea:  estimate.FormatInput(decimal.NewFromFloat(d.FirstFloorArea)),
		ErrorMargin:     estimate.FormatInput(decimal.NewFromFloat(d.ErrorMargin).Mul(hundred)) + "%",
		VariableCosts:   estimate.FormatInput(decimal.NewFromFloat(d.VariableCosts)),
		Variant:         cfg.General.Variant,
		PriceList:       cfg.Catalog.PriceList,
		Theme:           cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the setup wizard. variants are the selectable table
// variants, built-in and custom.
func NewSetupForm(v *SetupValues, variants []estimate.Variant) *huh.Form {
	variantOpts := make([]huh.Option[string], 0, len(variants))
	for _, vr := range variants {
		variantOpts = append(variantOpts, huh.NewOption(describeVariant(vr), vr.Name))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Benvenuto in preventivo").
				Description("Imposta i valori con cui parte ogni nuova stima."),
			huh.NewInput().
				Title("Cliente predefinito").
				Placeholder("lascia vuoto per nessuno").
				Value(&v.ClientName),
			huh.NewInput().
				Title("Superficie PT (m²)").
				Value(&v.GroundFloorArea).
				Validate(validateAmount),
			huh.NewInput().
				Title("Superficie P1 (m²)").
				Value(&v.FirstFloorArea).
				Validate(validateAmount),
			huh.NewInput().
				Title("Margine di errore").
				Description("Percentuale (10%) o frazione (0,1)").
				Value(&v.ErrorMargin).
				Validate(validateMargin),
			huh.NewInput().
				Title("Costi variabili (€)").
				Value(&v.VariableCosts).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Variante della tabella").
				Options(variantOpts...).
				Value(&v.Variant),
			huh.NewSelect[string]().
				Title("Listino").
				Options(huh.NewOptions(catalog.PriceListNames()...)...).
				Value(&v.PriceList),
			huh.NewSelect[string]().
				Title("Tema").
				Options(themeOpts...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}

// Apply writes the answers into cfg.
func (v *SetupValues) Apply(cfg config.Config) (config.Config, error) {
	ground, err := estimate.ParseAmount(v.GroundFloorArea)
	if err != nil {
		return cfg, err
	}
	first, err := estimate.ParseAmount(v.FirstFloorArea)
	if err != nil {
		return cfg, err
	}
	margin, err := estimate.ParseMargin(v.ErrorMargin)
	if err != nil {
		return cfg, err
	}
	variable, err := estimate.ParseAmount(v.VariableCosts)
	if err != nil {
		return cfg, err
	}
	if _, err := cfg.ResolveVariant(v.Variant); err != nil {
		return cfg, err
	}
	if _, err := cfg.BuildCatalog(v.PriceList); err != nil {
		return cfg, err
	}

	cfg.Defaults.ClientName = strings.TrimSpace(v.ClientName)
	cfg.Defaults.GroundFloorArea = ground.InexactFloat64()
	cfg.Defaults.FirstFloorArea = first.InexactFloat64()
	cfg.Defaults.ErrorMargin = margin.InexactFloat64()
	cfg.Defaults.VariableCosts = variable.InexactFloat64()
	if v.Variant != "" {
		cfg.General.Variant = v.Variant
	}
	if v.PriceList != "" {
		cfg.Catalog.PriceList = v.PriceList
	}
	cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	return cfg, nil
}
