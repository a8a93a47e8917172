package catalog

import (
	"path/filepath"
	"testing"

	"github.com/ferrari-contract/preventivo/internal/estimate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "listino.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestImportXLSX(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"dati": {
			{"Listino 2024"},
			{"Prodotto", "Costo/mq", "Note"},
			{"Pavimento", "60", ""},
			{"", "", ""},
			{"cartongesso delta 125/175", "1.250,50", "iva esclusa"},
			{"VMC", "€ 250", ""},
		},
	})

	prices, err := ImportXLSX(path, ImportOptions{})
	require.NoError(t, err)
	require.Len(t, prices, 3)
	assert.Equal(t, "60", prices["PAVIMENTO"].String())
	assert.Equal(t, "1250.5", prices["CARTONGESSO DELTA 125/175"].String())
	assert.Equal(t, "250", prices["VMC"].String())

	cat, err := Default().WithPrices(prices)
	require.NoError(t, err)
	cost, _ := cat.UnitCost("VMC")
	assert.Equal(t, "250", cost.String())
}

func TestImportXLSX_NumericCells(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("dati")
	require.NoError(t, err)
	header := sheet.AddRow()
	header.AddCell().SetString("Prodotto")
	header.AddCell().SetString("Costo/mq")
	for name, cost := range map[string]float64{"PAVIMENTO": 12.125, "VETRO": 1250} {
		row := sheet.AddRow()
		row.AddCell().SetString(name)
		row.AddCell().SetFloat(cost)
	}
	path := filepath.Join(t.TempDir(), "numerico.xlsx")
	require.NoError(t, f.Save(path))

	prices, err := ImportXLSX(path, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, "12.125", prices["PAVIMENTO"].String())
	assert.Equal(t, "1250", prices["VETRO"].String())
}

func TestImportXLSX_CustomOptions(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"prezzi": {
			{"Voce", "Euro"},
			{"vetro", "230"},
		},
	})

	prices, err := ImportXLSX(path, ImportOptions{SheetName: "prezzi", NameColumn: "voce", CostColumn: "euro"})
	require.NoError(t, err)
	assert.Equal(t, "230", prices["VETRO"].String())
}

func TestImportXLSX_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		is   error
		msg  string
	}{
		{
			name: "no header",
			rows: [][]string{{"a", "b"}},
			msg:  "header",
		},
		{
			name: "unknown product",
			rows: [][]string{{"Prodotto", "Costo/mq"}, {"TAPPETO", "10"}},
			is:   estimate.ErrUnknownProduct,
		},
		{
			name: "duplicate",
			rows: [][]string{{"Prodotto", "Costo/mq"}, {"VETRO", "10"}, {"vetro", "12"}},
			msg:  "duplicate",
		},
		{
			name: "bad cost",
			rows: [][]string{{"Prodotto", "Costo/mq"}, {"VETRO", "tanti"}},
			is:   estimate.ErrInvalidNumericInput,
		},
		{
			name: "exponent cost",
			rows: [][]string{{"Prodotto", "Costo/mq"}, {"VETRO", "1e-900000000"}},
			is:   estimate.ErrInvalidNumericInput,
		},
		{
			name: "negative cost",
			rows: [][]string{{"Prodotto", "Costo/mq"}, {"VETRO", "-10"}},
			is:   estimate.ErrInvalidNumericInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTestXLSX(t, map[string][][]string{"dati": tt.rows})
			_, err := ImportXLSX(path, ImportOptions{})
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestImportXLSX_MissingSheet(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Sheet1": {{"a"}}})
	_, err := ImportXLSX(path, ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestImportXLSX_MissingFile(t *testing.T) {
	_, err := ImportXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), ImportOptions{})
	assert.Error(t, err)
}
