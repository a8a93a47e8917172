package cmd

import (
	"fmt"
	"sort"

	"github.com/ferrari-contract/preventivo/internal/catalog"
	"github.com/ferrari-contract/preventivo/internal/cli"
	"github.com/ferrari-contract/preventivo/internal/config"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagSheet string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the product catalog and unit costs",
	RunE:  runCatalog,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import unit costs from an xlsx price list into the config file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogImport,
}

func init() {
	catalogImportCmd.Flags().StringVar(&flagSheet, "sheet", catalog.DefaultImportSheet, "Worksheet holding the price list")
	catalogCmd.AddCommand(catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(_ *cobra.Command, _ []string) error {
	cat, err := appCfg.BuildCatalog(flagPrices)
	if err != nil {
		return err
	}

	t := cli.Table{
		Title:   fmt.Sprintf("Listino: %s", cat.PriceList),
		Headers: []string{"Prodotto", "Costo/mq", ""},
	}
	base, _ := catalog.ByPriceList(cat.PriceList)
	for _, item := range cat.Items() {
		note := ""
		if orig, _ := base.UnitCost(item.Name); !orig.Equal(item.UnitCost) {
			note = "override"
		}
		t.Rows = append(t.Rows, []string{item.Name, cli.FormatEuro(item.UnitCost), note})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(t))
	fmt.Printf("\n  Listini disponibili: %v\n\n", catalog.PriceListNames())
	return nil
}

func runCatalogImport(_ *cobra.Command, args []string) error {
	prices, err := catalog.ImportXLSX(args[0], catalog.ImportOptions{SheetName: flagSheet})
	if err != nil {
		return err
	}
	if len(prices) == 0 {
		return eris.Errorf("catalog: no prices found in %s", args[0])
	}

	saved, err := config.Update(flagConfig, func(cfg *config.Config) error {
		cfg.Catalog.Overrides = mergeOverrides(cfg.Catalog.Overrides, prices)
		return nil
	})
	if err != nil {
		return err
	}
	appCfg.Catalog.Overrides = saved.Catalog.Overrides
	zap.L().Info("price list imported", zap.String("file", args[0]), zap.Int("products", len(prices)))

	names := make([]string, 0, len(prices))
	for name := range prices {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("\n  Importati %d costi da %s\n", len(prices), args[0])
	for _, n := range names {
		fmt.Printf("    %-28s %s\n", n, cli.FormatEuro(prices[n]))
	}
	fmt.Printf("  Salvato in %s\n\n", flagConfig)
	return nil
}

// mergeOverrides returns existing with every imported price set. Existing
// keys are re-normalized; viper lower-cases them.
func mergeOverrides(existing map[string]float64, prices map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(existing)+len(prices))
	for k, v := range existing {
		if n, _ := catalog.NormalizeName(k); !hasPrice(prices, n) {
			out[n] = v
		}
	}
	for name, cost := range prices {
		out[name] = cost.InexactFloat64()
	}
	return out
}

func hasPrice(prices map[string]decimal.Decimal, name string) bool {
	_, ok := prices[name]
	return ok
}
