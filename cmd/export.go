package cmd

import (
	"errors"
	"fmt"

	"github.com/ferrari-contract/preventivo/internal/cli"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/export"

	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagOutput string
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Write the estimate to xlsx, pdf or yaml",
	Example: `  preventivo export --client "Rossi" --include PAVIMENTO=pt --format pdf --output rossi.pdf`,
	RunE:    runExport,
}

func init() {
	estimateInputs.register(exportCmd)
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", "xlsx", "Output format: xlsx, pdf, yaml")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default preventivo.<format>)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	s, err := estimateInputs.buildState()
	if err != nil {
		return err
	}

	data, err := export.NewData(s.Snapshot())
	if errors.Is(err, estimate.ErrNoActiveSelection) {
		fmt.Println()
		fmt.Print(cli.RenderWarning(cli.NoSelectionMessage))
		fmt.Println("  Nessun file scritto.")
		return nil
	}
	if err != nil {
		return err
	}

	dir := appCfg.General.ExportDir
	if dir == "" {
		dir = "."
	}
	path, err := export.WriteFile(data, format, flagOutput, dir)
	if err != nil {
		return err
	}

	fmt.Printf("\n  Esportato %s (%s)\n", path, data.Reference)
	fmt.Printf("  Totale con margine: %s\n\n", cli.FormatEuro(data.Summary.TotalWithMargin))
	return nil
}
