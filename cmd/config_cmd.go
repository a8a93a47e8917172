package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ferrari-contract/preventivo/internal/config"
	"github.com/ferrari-contract/preventivo/internal/estimate"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", flagConfig)
	if config.Exists(flagConfig) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Variant:       %s\n", cfg.General.Variant)
	if cfg.General.ExportDir != "" {
		fmt.Printf("    Export dir:    %s\n", cfg.General.ExportDir)
	}
	fmt.Println()

	p := cfg.Parameters()
	fmt.Println("  [Defaults]")
	if p.ClientName != "" {
		fmt.Printf("    Client:        %s\n", p.ClientName)
	}
	fmt.Printf("    Superficie PT: %s\n", p.GroundFloorArea)
	fmt.Printf("    Superficie P1: %s\n", p.FirstFloorArea)
	fmt.Printf("    Margine:       %s\n", p.ErrorMargin)
	fmt.Printf("    Costi var.:    %s\n", p.VariableCosts)
	fmt.Println()

	fmt.Println("  [Catalog]")
	fmt.Printf("    Price list:    %s\n", cfg.Catalog.PriceList)
	if len(cfg.Catalog.Overrides) > 0 {
		names := make([]string, 0, len(cfg.Catalog.Overrides))
		for n := range cfg.Catalog.Overrides {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Printf("    %-28s %.2f\n", strings.ToUpper(n), cfg.Catalog.Overrides[n])
		}
	}
	fmt.Println()

	fmt.Println("  [Variants]")
	variants := append(append([]estimate.Variant{}, estimate.Variants...), cfg.CustomVariants()...)
	for _, v := range variants {
		desc := describeVariant(v)
		fmt.Printf("    %-12s %s\n", v.Name, desc)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:  %s\n", cfg.Log.Level)
	fmt.Printf("    Format: %s\n", cfg.Log.Format)
	if cfg.Log.File != "" {
		fmt.Printf("    File:   %s\n", cfg.Log.File)
	}
	fmt.Println()

	fmt.Println("  Run `preventivo setup` to reconfigure.")
	return nil
}

func describeVariant(v estimate.Variant) string {
	var parts []string
	if v.MergedFloorFlag {
		parts = append(parts, "PT/P1 unico")
	}
	if len(v.LockedColumns) > 0 {
		parts = append(parts, "bloccati: "+strings.Join(v.LockedColumns, ", "))
	}
	if len(parts) == 0 {
		return "tutte le celle modificabili"
	}
	return strings.Join(parts, "; ")
}
