package cmd

import (
	"errors"
	"fmt"

	"github.com/ferrari-contract/preventivo/internal/config"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Long:  "Choose the default parameters, table variant, price list and theme, and save them to the config file.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	variants := append([]estimate.Variant{}, estimate.Variants...)
	variants = append(variants, appCfg.CustomVariants()...)

	vals := tui.NewSetupValues(appCfg)
	if err := tui.NewSetupForm(vals, variants).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup annullato, nessuna modifica salvata.")
			return nil
		}
		return err
	}

	_, err := config.Update(flagConfig, func(c *config.Config) error {
		applied, err := vals.Apply(*c)
		if err != nil {
			return err
		}
		*c = applied
		return nil
	})
	if err != nil {
		return err
	}
	zap.L().Info("setup saved", zap.String("path", flagConfig))

	fmt.Println()
	fmt.Printf("  Salvato in %s\n", flagConfig)
	fmt.Println("  Esegui `preventivo setup` in qualsiasi momento per riconfigurare.")
	fmt.Println()
	return nil
}
