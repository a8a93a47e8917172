package catalog

import (
	"strings"

	"github.com/ferrari-contract/preventivo/internal/estimate"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v2"
)

// DefaultImportSheet is the workbook sheet holding the price list.
const DefaultImportSheet = "dati"

// ImportOptions configures ImportXLSX.
type ImportOptions struct {
	SheetName  string // default DefaultImportSheet
	NameColumn string // header of the product column, default "Prodotto"
	CostColumn string // header of the cost column, default "Costo/mq"
}

func (o ImportOptions) withDefaults() ImportOptions {
	if o.SheetName == "" {
		o.SheetName = DefaultImportSheet
	}
	if o.NameColumn == "" {
		o.NameColumn = "Prodotto"
	}
	if o.CostColumn == "" {
		o.CostColumn = "Costo/mq"
	}
	return o
}

// ImportXLSX reads unit costs from a workbook. The sheet must contain a
// header row with the product and cost columns; rows below it with an empty
// product cell are skipped. Unknown products, duplicates and invalid costs
// are errors.
func ImportXLSX(path string, opts ImportOptions) (map[string]decimal.Decimal, error) {
	opts = opts.withDefaults()

	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: open workbook")
	}
	sheet, ok := f.Sheet[opts.SheetName]
	if !ok {
		return nil, eris.Errorf("catalog: sheet %q not found", opts.SheetName)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		rows = append(rows, rowToStrings(r))
	}
	return parsePriceRows(rows, opts)
}

func parsePriceRows(rows [][]string, opts ImportOptions) (map[string]decimal.Decimal, error) {
	header, nameCol, costCol := -1, -1, -1
	for i, cells := range rows {
		nameCol = indexOf(cells, opts.NameColumn)
		costCol = indexOf(cells, opts.CostColumn)
		if nameCol >= 0 && costCol >= 0 {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, eris.Errorf("catalog: header with %q and %q not found", opts.NameColumn, opts.CostColumn)
	}

	prices := make(map[string]decimal.Decimal)
	for i := header + 1; i < len(rows); i++ {
		cells := rows[i]
		raw := cellAt(cells, nameCol)
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line := i + 1

		name, ok := NormalizeName(raw)
		if !ok {
			return nil, eris.Wrapf(estimate.ErrUnknownProduct, "catalog: row %d: %q", line, raw)
		}
		if _, dup := prices[name]; dup {
			return nil, eris.Errorf("catalog: row %d: duplicate product %s", line, name)
		}

		cost, err := estimate.ParseAmount(cellAt(cells, costCol))
		if err != nil {
			return nil, eris.Wrapf(err, "catalog: row %d: %s", line, name)
		}
		prices[name] = cost
	}
	return prices, nil
}

func indexOf(cells []string, header string) int {
	for i, c := range cells {
		if strings.EqualFold(strings.TrimSpace(c), header) {
			return i
		}
	}
	return -1
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

// maxStoredExponent bounds the exponent of numeric cells taken as stored.
const maxStoredExponent = 20

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cellText(cell)
	}
	return cells
}

// cellText returns numeric cells in the unambiguous form ParseAmount reads
// back exactly ("12,125"). Other cells are returned as displayed.
func cellText(cell *xlsx.Cell) string {
	if cell.Type() == xlsx.CellTypeNumeric {
		d, err := decimal.NewFromString(cell.Value)
		if err == nil && d.Exponent() >= -maxStoredExponent && d.Exponent() <= maxStoredExponent {
			return estimate.FormatInput(d)
		}
	}
	return cell.String()
}
