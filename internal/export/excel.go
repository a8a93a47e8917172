package export

import (
	"bytes"
	"fmt"

	"github.com/ferrari-contract/preventivo/internal/cli"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the estimate.
const SheetName = "Preventivo"

const (
	euroFormat    = `"€" #,##0.00`
	areaFormat    = `#,##0.00 "m²"`
	percentFormat = `0.0%`
)

// GenerateExcel creates a workbook from the given Data and returns the file
// contents.
func GenerateExcel(data Data) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, eris.Wrap(err, "export: set sheet name")
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]

	widths := []float64{30, 14, 6, 6, 16, 16, 16}
	for i, col := range columns {
		if err := f.SetColWidth(SheetName, col, col, widths[i]); err != nil {
			return nil, eris.Wrapf(err, "export: set col width %s", col)
		}
	}

	st, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	// Title, reference and date.
	if err := f.MergeCell(SheetName, "A1", lastCol+"1"); err != nil {
		return nil, eris.Wrap(err, "export: merge title")
	}
	f.SetCellValue(SheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(SheetName, "A1", lastCol+"1", st.title)

	f.SetCellValue(SheetName, "A2", "Rif: "+data.Reference)
	f.SetCellValue(SheetName, "A3", "Data: "+data.CreatedDate)
	f.SetCellStyle(SheetName, "A2", "A3", st.subtitle)

	// Column headers.
	for i, h := range Headers {
		f.SetCellValue(SheetName, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(SheetName, "A5", lastCol+"5", st.header)

	row := 6
	for _, r := range data.Rows {
		n := fmt.Sprint(row)
		f.SetCellValue(SheetName, "A"+n, sanitizeExcelCell(r.Product))
		f.SetCellValue(SheetName, "B"+n, r.UnitCost.InexactFloat64())
		f.SetCellValue(SheetName, "C"+n, cli.FormatFlag(r.GroundFloor))
		f.SetCellValue(SheetName, "D"+n, cli.FormatFlag(r.FirstFloor))
		f.SetCellValue(SheetName, "E"+n, r.GroundFloorEstimate.InexactFloat64())
		f.SetCellValue(SheetName, "F"+n, r.FirstFloorEstimate.InexactFloat64())
		f.SetCellValue(SheetName, "G"+n, r.LineTotal.InexactFloat64())

		f.SetCellStyle(SheetName, "A"+n, "A"+n, st.text)
		f.SetCellStyle(SheetName, "B"+n, "B"+n, st.money)
		f.SetCellStyle(SheetName, "C"+n, "D"+n, st.flag)
		f.SetCellStyle(SheetName, "E"+n, "G"+n, st.money)
		row++
	}

	// Summary block, one blank row below the table.
	row++
	s := data.Summary
	summary := []struct {
		label string
		value any
		style int
	}{
		{"Cliente", sanitizeExcelCell(s.ClientName), st.summaryValue},
		{"Superficie PT", toFloat(s.GroundFloorArea), st.area},
		{"Superficie P1", toFloat(s.FirstFloorArea), st.area},
		{"Superficie Totale", toFloat(s.TotalArea), st.area},
		{"Margine", toFloat(s.ErrorMargin), st.percent},
		{"Costi variabili", toFloat(s.VariableCosts), st.summaryMoney},
		{"Totale stimato", toFloat(s.RawTotal), st.summaryMoney},
		{"Totale con margine", toFloat(s.TotalWithMargin), st.summaryMoney},
		{"Incidenza PT", toFloat(s.GroundFloorIncidence), st.summaryMoney},
		{"Incidenza P1", toFloat(s.FirstFloorIncidence), st.summaryMoney},
	}
	for _, item := range summary {
		n := fmt.Sprint(row)
		f.SetCellValue(SheetName, "A"+n, item.label)
		f.SetCellStyle(SheetName, "A"+n, "A"+n, st.summaryLabel)
		f.SetCellValue(SheetName, "B"+n, item.value)
		f.SetCellStyle(SheetName, "B"+n, "B"+n, item.style)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, eris.Wrap(err, "export: write excel")
	}
	return buf.Bytes(), nil
}

type excelStyles struct {
	title, subtitle, header     int
	text, money, flag           int
	summaryLabel, summaryValue  int
	summaryMoney, area, percent int
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	euro, area, pct := euroFormat, areaFormat, percentFormat
	bold11 := &excelize.Font{Bold: true, Size: 11}

	var st excelStyles
	defs := []struct {
		dst   *int
		name  string
		style *excelize.Style
	}{
		{&st.title, "title", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&st.subtitle, "subtitle", &excelize.Style{Font: &excelize.Font{Size: 11}}},
		{&st.header, "header", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#000000", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#FFD400"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{&st.text, "text", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}, Border: thinBorders()}},
		{&st.money, "money", &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders(), CustomNumFmt: &euro}},
		{&st.flag, "flag", &excelize.Style{
			Font:      &excelize.Font{Size: 10},
			Border:    thinBorders(),
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&st.summaryLabel, "summary label", &excelize.Style{Font: bold11, Alignment: &excelize.Alignment{Horizontal: "right"}}},
		{&st.summaryValue, "summary value", &excelize.Style{Font: bold11}},
		{&st.summaryMoney, "summary money", &excelize.Style{Font: bold11, CustomNumFmt: &euro}},
		{&st.area, "area", &excelize.Style{Font: bold11, CustomNumFmt: &area}},
		{&st.percent, "percent", &excelize.Style{Font: bold11, CustomNumFmt: &pct}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, eris.Wrapf(err, "export: create %s style", d.name)
		}
		*d.dst = id
	}
	return st, nil
}

func toFloat(d decimal.Decimal) float64 { return d.InexactFloat64() }

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
