package tui

import (
	"errors"
	"strings"

	"github.com/ferrari-contract/preventivo/internal/catalog"
	"github.com/ferrari-contract/preventivo/internal/config"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/tui/components"
	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	settingsFieldTheme = iota
	settingsFieldVariant
	settingsFieldPriceList
	settingsFieldCount // sentinel
)

var errNoConfigPath = errors.New("nessun file di configurazione")

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	saved   bool  // flash "saved" message
	saveErr error // non-nil if last save failed
}

func (a App) updateSettings(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter", " ":
		a.settings.saved = false
		a.settings.saveErr = nil
		a.cycleSetting()
	case "s":
		a.saveSettings()
	}
	return a, nil
}

// cycleSetting advances the selected field to its next value and applies it
// to the running session.
func (a *App) cycleSetting() {
	switch a.settings.cursor {
	case settingsFieldTheme:
		next := theme.Next(theme.Active.Name)
		theme.SetActive(next.Name)
		a.cfg.Appearance.Theme = next.Name

	case settingsFieldVariant:
		next := a.nextVariant()
		if err := a.state.SetVariant(next); err != nil {
			a.setStatus(err.Error(), components.StatusError)
			return
		}
		a.cfg.General.Variant = next.Name
		a.setStatus("Variante "+next.Name, components.StatusInfo)

	case settingsFieldPriceList:
		names := catalog.PriceListNames()
		next := names[0]
		for i, n := range names {
			if n == a.cfg.Catalog.PriceList {
				next = names[(i+1)%len(names)]
				break
			}
		}
		if err := a.switchPriceList(next); err != nil {
			a.setStatus(err.Error(), components.StatusError)
			return
		}
		a.setStatus("Listino "+next+": tabella ripristinata", components.StatusInfo)
	}
}

func (a App) nextVariant() estimate.Variant {
	current := a.state.Variant().Name
	for i, v := range a.variants {
		if v.Name == current {
			return a.variants[(i+1)%len(a.variants)]
		}
	}
	return a.variants[0]
}

// switchPriceList rebuilds the session from another price list, keeping the
// parameters and the variant. Cost edits and flags are reset.
func (a *App) switchPriceList(name string) error {
	cat, err := a.cfg.BuildCatalog(name)
	if err != nil {
		return err
	}
	state, err := estimate.NewState(cat.Items(), a.state.Parameters(), a.state.Variant())
	if err != nil {
		return err
	}
	a.state = state
	a.cfg.Catalog.PriceList = name
	return nil
}

// saveSettings writes the three settings fields into the config file. Other
// values of the session, such as environment overrides, stay out of it.
func (a *App) saveSettings() {
	if a.cfgPath == "" {
		a.settings.saveErr = errNoConfigPath
		return
	}
	_, a.settings.saveErr = config.Update(a.cfgPath, func(c *config.Config) error {
		c.Appearance.Theme = a.cfg.Appearance.Theme
		c.General.Variant = a.cfg.General.Variant
		c.Catalog.PriceList = a.cfg.Catalog.PriceList
		return nil
	})
	a.settings.saved = a.settings.saveErr == nil
	if a.settings.saveErr != nil {
		a.log.Error("saving settings", zap.String("path", a.cfgPath), zap.Error(a.settings.saveErr))
		return
	}
	a.log.Info("settings saved", zap.String("path", a.cfgPath))
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	exportDir := a.cfg.General.ExportDir
	if exportDir == "" {
		exportDir = "."
	}
	cfgPath := a.cfgPath
	if cfgPath == "" {
		cfgPath = "(nessuno)"
	}

	fields := []struct {
		label string
		value string
	}{
		{"Tema", theme.Active.Name},
		{"Variante", describeVariant(a.state.Variant())},
		{"Listino", a.cfg.Catalog.PriceList},
	}

	var b strings.Builder
	for i, f := range fields {
		label := padRight(f.label, 14)
		if i == a.settings.cursor {
			b.WriteString(markerStyle.Render("▸ "))
			b.WriteString(selectedLabelStyle.Render(label))
			b.WriteString(selectedStyle.Render(f.value))
		} else {
			b.WriteString(labelStyle.Render("  " + label))
			b.WriteString(valueStyle.Render(f.value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("  " + padRight("Esportazioni", 14)))
	b.WriteString(dimStyle.Render(exportDir))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("  " + padRight("Config", 14)))
	b.WriteString(dimStyle.Render(cfgPath))
	b.WriteString("\n\n")

	switch {
	case a.settings.saveErr != nil:
		b.WriteString(errStyle.Render("Salvataggio fallito: " + a.settings.saveErr.Error()))
	case a.settings.saved:
		b.WriteString(greenStyle.Render("Impostazioni salvate"))
	default:
		b.WriteString(dimStyle.Render("[invio] cambia valore  [s] salva nel file di configurazione"))
	}

	return components.ContentCard("Impostazioni", b.String(), cw)
}

func describeVariant(v estimate.Variant) string {
	switch {
	case v.MergedFloorFlag:
		return v.Name + " (PT/P1 unico)"
	case len(v.LockedColumns) > 0:
		return v.Name + " (bloccati: " + strings.Join(v.LockedColumns, ", ") + ")"
	}
	return v.Name
}
