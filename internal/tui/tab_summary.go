package tui

import (
	"errors"
	"sort"
	"strings"

	"github.com/ferrari-contract/preventivo/internal/cli"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/export"
	"github.com/ferrari-contract/preventivo/internal/model"
	"github.com/ferrari-contract/preventivo/internal/tui/components"
	"github.com/ferrari-contract/preventivo/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSummaryTab(cw int) string {
	p := a.state.Parameters()
	res, err := a.state.Result()

	var b strings.Builder

	if errors.Is(err, estimate.ErrNoActiveSelection) {
		b.WriteString(components.MetricCardRow([]components.Metric{
			{Label: "Cliente", Value: clientOrDash(p.ClientName)},
			{Label: "Superficie totale", Value: cli.FormatArea(p.TotalArea())},
			{Label: "Margine", Value: cli.FormatPercent(p.ErrorMargin)},
		}, cw))
		b.WriteString("\n")
		b.WriteString(components.WarningCard("Riepilogo", cli.NoSelectionMessage, cw))
		return b.String()
	}

	s := export.NewSummary(p, res)

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Totale stimato", Value: cli.FormatEuro(s.RawTotal), Note: "somma delle righe"},
		{Label: "Totale con margine", Value: cli.FormatEuro(s.TotalWithMargin), Highlight: true,
			Note: "+" + cli.FormatPercent(s.ErrorMargin) + " e " + cli.FormatEuro(s.VariableCosts)},
		{Label: "Incidenza PT", Value: cli.FormatIncidence(s.GroundFloorIncidence), Note: cli.FormatArea(s.GroundFloorArea)},
		{Label: "Incidenza P1", Value: cli.FormatIncidence(s.FirstFloorIncidence), Note: cli.FormatArea(s.FirstFloorArea)},
	}, cw))
	b.WriteString("\n")

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Cliente", Value: clientOrDash(s.ClientName)},
		{Label: "Superficie totale", Value: cli.FormatArea(s.TotalArea)},
		{Label: "Variante", Value: a.state.Variant().Name},
	}, cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Ripartizione per prodotto", a.renderShares(res, cw), cw))
	return b.String()
}

// renderShares draws one bar per included product, largest first.
func (a App) renderShares(res model.Result, cw int) string {
	t := theme.Active

	var rows []model.LineItem
	for _, r := range a.state.Rows() {
		if r.LineTotal.IsPositive() {
			rows = append(rows, r)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].LineTotal.GreaterThan(rows[j].LineTotal)
	})

	innerW := components.CardInnerWidth(cw)
	labelW := 14
	barW := innerW - labelW - 24
	if barW > 50 {
		barW = 50
	}

	var b strings.Builder
	for i, r := range rows {
		share := r.LineTotal.Div(res.RawTotal).InexactFloat64()
		b.WriteString(components.ShareBar(r.Name, cli.FormatEuro(r.LineTotal), share, labelW, barW))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
		Render("[e] Excel  [x] PDF  [y] YAML"))
	return b.String()
}

func clientOrDash(name string) string {
	if strings.TrimSpace(name) == "" {
		return "-"
	}
	return name
}
