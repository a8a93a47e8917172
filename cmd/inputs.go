package cmd

import (
	"strings"

	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/model"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// estimateFlags are the per-run inputs shared by estimate and export.
// Empty values fall back to the [defaults] config section.
type estimateFlags struct {
	client        string
	groundFloor   string
	firstFloor    string
	margin        string
	variableCosts string
	include       []string
	costs         []string
}

var estimateInputs estimateFlags

func (f *estimateFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.client, "client", "", "Client name")
	fs.StringVar(&f.groundFloor, "pt", "", "Ground floor (PT) area in m²")
	fs.StringVar(&f.firstFloor, "p1", "", "First floor (P1) area in m²")
	fs.StringVar(&f.margin, "margin", "", "Error margin as a fraction (0.1) or percentage (10%)")
	fs.StringVar(&f.variableCosts, "variable-costs", "", "Flat variable costs in €")
	fs.StringArrayVarP(&f.include, "include", "i", nil, "Include a product: NAME=pt|p1|both (repeatable)")
	fs.StringArrayVar(&f.costs, "cost", nil, "Override a unit cost: NAME=€/m² (repeatable)")
}

// parameters applies the flag overrides to base.
func (f *estimateFlags) parameters(base model.Parameters) (model.Parameters, error) {
	p := base
	var err error

	if f.client != "" {
		p.ClientName = strings.TrimSpace(f.client)
	}
	if f.groundFloor != "" {
		if p.GroundFloorArea, err = estimate.ParseAmount(f.groundFloor); err != nil {
			return base, eris.Wrap(err, "--pt")
		}
	}
	if f.firstFloor != "" {
		if p.FirstFloorArea, err = estimate.ParseAmount(f.firstFloor); err != nil {
			return base, eris.Wrap(err, "--p1")
		}
	}
	if f.margin != "" {
		if p.ErrorMargin, err = estimate.ParseMargin(f.margin); err != nil {
			return base, eris.Wrap(err, "--margin")
		}
	}
	if f.variableCosts != "" {
		if p.VariableCosts, err = estimate.ParseAmount(f.variableCosts); err != nil {
			return base, eris.Wrap(err, "--variable-costs")
		}
	}
	return p, nil
}

// buildState assembles a session from the config, the persistent variant
// and price list flags, and the estimate flags.
func (f *estimateFlags) buildState() (*estimate.State, error) {
	variant, err := appCfg.ResolveVariant(flagVariant)
	if err != nil {
		return nil, err
	}
	cat, err := appCfg.BuildCatalog(flagPrices)
	if err != nil {
		return nil, err
	}
	params, err := f.parameters(appCfg.Parameters())
	if err != nil {
		return nil, err
	}

	s, err := estimate.NewState(cat.Items(), params, variant)
	if err != nil {
		return nil, err
	}

	for _, raw := range f.costs {
		name, value, ok := cutAssignment(raw)
		if !ok {
			return nil, eris.Errorf("--cost %q: expected NAME=value", raw)
		}
		cost, err := estimate.ParseAmount(value)
		if err != nil {
			return nil, eris.Wrapf(err, "--cost %s", name)
		}
		if err := s.SetUnitCost(name, cost); err != nil {
			return nil, eris.Wrap(err, "--cost")
		}
	}

	for _, raw := range f.include {
		if err := applyInclude(s, raw); err != nil {
			return nil, eris.Wrap(err, "--include")
		}
	}
	return s, nil
}

// applyInclude handles one --include value. A bare name selects PT.
func applyInclude(s *estimate.State, raw string) error {
	name, floors, ok := cutAssignment(raw)
	if !ok {
		name, floors = strings.TrimSpace(raw), "pt"
	}

	switch strings.ToLower(floors) {
	case "pt":
		return s.SetGroundFloor(name, true)
	case "p1":
		return s.SetFirstFloor(name, true)
	case "both", "pt+p1", "entrambi":
		if err := s.SetGroundFloor(name, true); err != nil {
			return err
		}
		if s.Variant().MergedFloorFlag {
			return nil
		}
		return s.SetFirstFloor(name, true)
	}
	return eris.Errorf("%q: floor must be pt, p1 or both", raw)
}

// cutAssignment splits "NAME=value" at the last '='.
func cutAssignment(s string) (name, value string, ok bool) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
}
