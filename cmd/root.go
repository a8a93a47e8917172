// Package cmd implements the preventivo CLI commands.
package cmd

import (
	"os"

	"github.com/ferrari-contract/preventivo/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig   string
	flagVariant  string
	flagPrices   string
	flagLogLevel string
	flagQuiet    bool
)

// appCfg is the effective configuration, loaded before every command.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:               "preventivo",
	Short:             "Construction estimate calculator",
	Long:              "Compute a FerrariContract estimate: per-floor product costs, margin, variable costs and incidence per m².",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runEstimate,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/preventivo/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagVariant, "variant", "V", "", "Table variant: contract, webapp, merged or a custom one")
	rootCmd.PersistentFlags().StringVarP(&flagPrices, "prices", "P", "", "Price list: standard, listino")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress log output")

	estimateInputs.register(rootCmd)
}

// loadConfig reads .env, the config file and environment overrides, then
// initialises the global logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	if flagConfig == "" {
		flagConfig = config.Path()
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	// The TUI owns the terminal; without a log file logging is off.
	quiet := flagQuiet || cmd.Name() == tuiCmd.Name()
	if err := config.InitLogger(cfg.Log, quiet); err != nil {
		return err
	}

	appCfg = cfg
	zap.L().Debug("config loaded",
		zap.String("path", flagConfig),
		zap.Bool("exists", config.Exists(flagConfig)),
		zap.String("variant", cfg.General.Variant),
		zap.String("price_list", cfg.Catalog.PriceList),
	)
	return nil
}
