package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatEuro(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "€ 0,00"},
		{"63", "€ 63,00"},
		{"7875", "€ 7.875,00"},
		{"153.4375", "€ 153,44"},
		{"1234567.891", "€ 1.234.567,89"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatEuro(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestFormatArea(t *testing.T) {
	assert.Equal(t, "125 m²", FormatArea(decimal.NewFromInt(125)))
	assert.Equal(t, "80,5 m²", FormatArea(decimal.RequireFromString("80.5")))
	assert.Equal(t, "1.250 m²", FormatArea(decimal.NewFromInt(1250)))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "10%", FormatPercent(decimal.RequireFromString("0.1")))
	assert.Equal(t, "12,5%", FormatPercent(decimal.RequireFromString("0.125")))
	assert.Equal(t, "0%", FormatPercent(decimal.Zero))
}

func TestFormatFlag(t *testing.T) {
	assert.Equal(t, "Sì", FormatFlag(true))
	assert.Equal(t, "No", FormatFlag(false))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Preventivo",
		Headers: []string{"Prodotto", "Costo/mq"},
		Rows: [][]string{
			{"PAVIMENTO", "€ 50,00"},
			{"---"},
			{"Totale", "€ 6.250,00"},
		},
	})
	assert.Contains(t, out, "Preventivo")
	assert.Contains(t, out, "PAVIMENTO")
	assert.Contains(t, out, "€ 6.250,00")
	assert.Equal(t, "", RenderTable(Table{}))
}

func TestRenderKeyValues(t *testing.T) {
	out := RenderKeyValues([][2]string{
		{"Cliente", "Rossi"},
		{"Totale con margine", "€ 7.875,00"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "€ 7.875,00")
}
