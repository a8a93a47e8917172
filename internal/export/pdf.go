package export

import (
	"fmt"

	"github.com/ferrari-contract/preventivo/internal/cli"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/rotisserie/eris"
)

var (
	pdfGray   = &props.Color{Red: 80, Green: 80, Blue: 80}
	pdfYellow = &props.Color{Red: 255, Green: 212, Blue: 0}
	pdfLight  = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// pdfWidths are the grid widths of Headers, summing to 12.
var pdfWidths = []int{3, 1, 1, 1, 2, 2, 2}

// GeneratePDF creates the estimate document: title, labeled summary
// paragraphs and the product table.
func GeneratePDF(data Data) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Pagina {current} di {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addParagraphs(m, data.Summary.Fields())
	addTableHeader(m)
	for i, r := range data.Rows {
		addTableRow(m, r, i%2 == 1)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, eris.Wrap(err, "export: generate pdf")
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, data Data) {
	m.AddRows(
		row.New(14).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Rif: %s", data.Reference), props.Text{
					Size:  9,
					Align: align.Left,
					Color: pdfGray,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Data: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: pdfGray,
				}),
			),
		),
		row.New(4),
	)
}

// addParagraphs writes one "Label: value" paragraph per summary field.
func addParagraphs(m core.Maroto, fields []Field) {
	label := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}
	value := props.Text{Size: 10, Align: align.Left}

	for _, f := range fields {
		v := value
		if f.Label == "Totale con margine" {
			v.Style = fontstyle.Bold
		}
		m.AddRows(
			row.New(7).Add(
				col.New(4).Add(text.New(f.Label+":", label)),
				col.New(8).Add(text.New(f.Value, v)),
			),
		)
	}
	m.AddRows(row.New(6))
}

func addTableHeader(m core.Maroto) {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
	}
	cell := &props.Cell{BackgroundColor: pdfYellow}

	cols := make([]core.Col, len(Headers))
	for i, h := range Headers {
		t := headerText
		if i == 0 {
			t.Align = align.Left
		}
		cols[i] = col.New(pdfWidths[i]).Add(text.New(h, t)).WithStyle(cell)
	}
	m.AddRows(row.New(8).Add(cols...))
}

func addTableRow(m core.Maroto, r Row, shaded bool) {
	base := props.Text{Size: 8, Align: align.Center}
	left := base
	left.Align = align.Left
	left.Style = fontstyle.Bold
	right := base
	right.Align = align.Right

	cols := []core.Col{
		col.New(pdfWidths[0]).Add(text.New(r.Product, left)),
		col.New(pdfWidths[1]).Add(text.New(cli.FormatEuro(r.UnitCost), right)),
		col.New(pdfWidths[2]).Add(text.New(cli.FormatFlag(r.GroundFloor), base)),
		col.New(pdfWidths[3]).Add(text.New(cli.FormatFlag(r.FirstFloor), base)),
		col.New(pdfWidths[4]).Add(text.New(cli.FormatEuro(r.GroundFloorEstimate), right)),
		col.New(pdfWidths[5]).Add(text.New(cli.FormatEuro(r.FirstFloorEstimate), right)),
		col.New(pdfWidths[6]).Add(text.New(cli.FormatEuro(r.LineTotal), right)),
	}
	if shaded {
		cell := &props.Cell{BackgroundColor: pdfLight}
		for i := range cols {
			cols[i] = cols[i].WithStyle(cell)
		}
	}
	m.AddRows(row.New(7).Add(cols...))
}
