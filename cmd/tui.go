package cmd

import (
	"github.com/ferrari-contract/preventivo/internal/config"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/tui"
	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Edit the estimate in an interactive grid",
	RunE:  runTUI,
}

func init() {
	estimateInputs.register(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	s, err := estimateInputs.buildState()
	if err != nil {
		return err
	}

	cfg, err := sessionConfig(appCfg, s, flagPrices)
	if err != nil {
		return err
	}

	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(s, cfg, flagConfig)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return eris.Wrap(err, "tui")
	}
	return nil
}

// sessionConfig is cfg as the settings tab should show it: the variant of s
// and the canonical name of the price list in use.
func sessionConfig(cfg config.Config, s *estimate.State, priceList string) (config.Config, error) {
	cat, err := cfg.BuildCatalog(priceList)
	if err != nil {
		return cfg, err
	}
	cfg.General.Variant = s.Variant().Name
	cfg.Catalog.PriceList = cat.PriceList
	return cfg, nil
}
