// Package config loads and saves the preventivo configuration file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ferrari-contract/preventivo/internal/catalog"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PREVENTIVO_LOG_LEVEL.
const EnvPrefix = "PREVENTIVO"

// Config holds all preventivo configuration.
type Config struct {
	General    GeneralConfig    `toml:"general" mapstructure:"general"`
	Defaults   DefaultsConfig   `toml:"defaults" mapstructure:"defaults"`
	Catalog    CatalogConfig    `toml:"catalog" mapstructure:"catalog"`
	Variants   []VariantConfig  `toml:"variants,omitempty" mapstructure:"variants"`
	Appearance AppearanceConfig `toml:"appearance" mapstructure:"appearance"`
	Log        LogConfig        `toml:"log" mapstructure:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Variant   string `toml:"variant" mapstructure:"variant"`
	ExportDir string `toml:"export_dir,omitempty" mapstructure:"export_dir"`
}

// DefaultsConfig holds the parameters a new estimate starts from.
type DefaultsConfig struct {
	ClientName      string  `toml:"client_name" mapstructure:"client_name"`
	GroundFloorArea float64 `toml:"ground_floor_area" mapstructure:"ground_floor_area"`
	FirstFloorArea  float64 `toml:"first_floor_area" mapstructure:"first_floor_area"`
	ErrorMargin     float64 `toml:"error_margin" mapstructure:"error_margin"`
	VariableCosts   float64 `toml:"variable_costs" mapstructure:"variable_costs"`
}

// CatalogConfig selects the price list and per-product cost overrides.
type CatalogConfig struct {
	PriceList string             `toml:"price_list" mapstructure:"price_list"`
	Overrides map[string]float64 `toml:"overrides,omitempty" mapstructure:"overrides"`
}

// VariantConfig declares a custom table variant.
type VariantConfig struct {
	Name            string   `toml:"name" mapstructure:"name"`
	MergedFloorFlag bool     `toml:"merged_floor_flag" mapstructure:"merged_floor_flag"`
	LockedColumns   []string `toml:"locked_columns,omitempty" mapstructure:"locked_columns"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" mapstructure:"theme"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `toml:"level" mapstructure:"level"`
	Format string `toml:"format" mapstructure:"format"` // "console" or "json"
	File   string `toml:"file,omitempty" mapstructure:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	p := model.DefaultParameters()
	return Config{
		General: GeneralConfig{
			Variant: estimate.Variants[0].Name,
		},
		Defaults: DefaultsConfig{
			GroundFloorArea: p.GroundFloorArea.InexactFloat64(),
			FirstFloorArea:  p.FirstFloorArea.InexactFloat64(),
			ErrorMargin:     p.ErrorMargin.InexactFloat64(),
			VariableCosts:   p.VariableCosts.InexactFloat64(),
		},
		Catalog: CatalogConfig{
			PriceList: catalog.DefaultPriceList,
		},
		Appearance: AppearanceConfig{
			Theme: "ferrari",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "preventivo")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "preventivo")
}

// Path returns the config file path: PREVENTIVO_CONFIG if set, otherwise
// config.toml in Dir.
func Path() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads the config file at path over the defaults, then applies
// PREVENTIVO_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	return load(path, true)
}

// LoadFile reads the config file at path over the defaults, ignoring the
// environment. It is the base to modify before calling Save.
func LoadFile(path string) (Config, error) {
	return load(path, false)
}

// Update loads the file-only config at path, applies fn and saves the
// result. Nothing is written if fn fails.
func Update(path string, fn func(*Config) error) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := fn(&cfg); err != nil {
		return cfg, err
	}
	return cfg, Save(path, cfg)
}

func load(path string, env bool) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)
	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	if Exists(path) {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return cfg, eris.Wrap(err, "config: parse config file")
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), eris.Wrap(err, "config: unmarshal")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("general.variant", cfg.General.Variant)
	v.SetDefault("general.export_dir", cfg.General.ExportDir)
	v.SetDefault("defaults.client_name", cfg.Defaults.ClientName)
	v.SetDefault("defaults.ground_floor_area", cfg.Defaults.GroundFloorArea)
	v.SetDefault("defaults.first_floor_area", cfg.Defaults.FirstFloorArea)
	v.SetDefault("defaults.error_margin", cfg.Defaults.ErrorMargin)
	v.SetDefault("defaults.variable_costs", cfg.Defaults.VariableCosts)
	v.SetDefault("catalog.price_list", cfg.Catalog.PriceList)
	v.SetDefault("appearance.theme", cfg.Appearance.Theme)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
}

// Save writes the config to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "config: create config dir")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return eris.Wrap(err, "config: create config file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return eris.Wrap(err, "config: encode")
	}
	return nil
}

// Parameters converts the configured defaults into estimate parameters.
func (c Config) Parameters() model.Parameters {
	return model.Parameters{
		ClientName:      c.Defaults.ClientName,
		GroundFloorArea: decimal.NewFromFloat(c.Defaults.GroundFloorArea),
		FirstFloorArea:  decimal.NewFromFloat(c.Defaults.FirstFloorArea),
		ErrorMargin:     decimal.NewFromFloat(c.Defaults.ErrorMargin),
		VariableCosts:   decimal.NewFromFloat(c.Defaults.VariableCosts),
	}
}

// CustomVariants converts the [[variants]] tables.
func (c Config) CustomVariants() []estimate.Variant {
	out := make([]estimate.Variant, 0, len(c.Variants))
	for _, vc := range c.Variants {
		out = append(out, estimate.Variant{
			Name:            vc.Name,
			MergedFloorFlag: vc.MergedFloorFlag,
			LockedColumns:   vc.LockedColumns,
		})
	}
	return out
}

// ResolveVariant resolves name (or the configured variant when name is empty)
// against the custom and built-in variants.
func (c Config) ResolveVariant(name string) (estimate.Variant, error) {
	if name == "" {
		name = c.General.Variant
	}
	v, ok := estimate.VariantByName(name, c.CustomVariants()...)
	if !ok {
		return v, eris.Errorf("config: unknown variant %q", name)
	}
	if err := v.Validate(); err != nil {
		return v, eris.Wrap(err, "config")
	}
	return v, nil
}

// BuildCatalog builds the product catalog from the price list (or the
// configured one when priceList is empty) and the overrides.
func (c Config) BuildCatalog(priceList string) (catalog.Catalog, error) {
	if priceList == "" {
		priceList = c.Catalog.PriceList
	}
	cat, ok := catalog.ByPriceList(priceList)
	if !ok {
		return cat, eris.Errorf("config: unknown price list %q (known: %s)",
			priceList, strings.Join(catalog.PriceListNames(), ", "))
	}
	cat, err := cat.WithOverrides(c.Catalog.Overrides)
	if err != nil {
		return cat, eris.Wrap(err, "config: catalog overrides")
	}
	return cat, nil
}
