package cmd

import (
	"errors"
	"fmt"

	"github.com/ferrari-contract/preventivo/internal/cli"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/export"
	"github.com/ferrari-contract/preventivo/internal/model"

	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Compute and print an estimate",
	Example: `  preventivo estimate --client "Rossi" --pt 125 --p1 80 --include PAVIMENTO=both --include VETRO=pt
  preventivo estimate --prices listino --cost "VMC=240,50" --include VMC=p1`,
	RunE: runEstimate,
}

func init() {
	estimateInputs.register(estimateCmd)
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(_ *cobra.Command, _ []string) error {
	s, err := estimateInputs.buildState()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(renderEstimate(s))
	return nil
}

// renderEstimate renders the product table and either the summary or the
// no-selection notice.
func renderEstimate(s *estimate.State) string {
	p := s.Parameters()
	title := "PREVENTIVO"
	if p.ClientName != "" {
		title += "  " + p.ClientName
	}

	out := cli.RenderTitle(title) + "\n\n"
	out += cli.RenderTable(lineTable(s.Rows(), s.Variant()))
	out += "\n"

	res, err := s.Result()
	if errors.Is(err, estimate.ErrNoActiveSelection) {
		return out + cli.RenderWarning(cli.NoSelectionMessage)
	}

	fields := export.NewSummary(p, res).Fields()
	pairs := make([][2]string, len(fields))
	for i, f := range fields {
		pairs[i] = [2]string{f.Label, f.Value}
	}
	return out + cli.RenderKeyValues(pairs)
}

func lineTable(rows []model.LineItem, v estimate.Variant) cli.Table {
	t := cli.Table{Title: fmt.Sprintf("Variante: %s", v.Name), Headers: export.Headers}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Name,
			cli.FormatEuro(r.UnitCost),
			flagCell(v, r.Name, model.ColumnGroundFloor, r.IncludeGroundFloor),
			flagCell(v, r.Name, model.ColumnFirstFloor, r.IncludeFirstFloor),
			cli.FormatEuro(r.GroundFloorEstimate),
			cli.FormatEuro(r.FirstFloorEstimate),
			cli.FormatEuro(r.LineTotal),
		})
	}
	return t
}

func flagCell(v estimate.Variant, product string, col model.Column, include bool) string {
	if v.IsLocked(product, col) {
		return "-"
	}
	return cli.FormatFlag(include)
}
