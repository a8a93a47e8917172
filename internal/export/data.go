// Package export renders an estimate snapshot as a "Preventivo" workbook,
// a PDF document or YAML.
package export

import (
	"strings"
	"time"

	"github.com/ferrari-contract/preventivo/internal/cli"
	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Title is the document title of every export.
const Title = "Preventivo - FerrariContract"

// Headers are the table columns in export order.
var Headers = []string{"Prodotto", "Costo/mq", "PT", "P1", "Stima PT", "Stima P1", "Stima Totale"}

// Row is one product line of an export.
type Row struct {
	Product             string
	UnitCost            decimal.Decimal
	GroundFloor         bool
	FirstFloor          bool
	GroundFloorEstimate decimal.Decimal
	FirstFloorEstimate  decimal.Decimal
	LineTotal           decimal.Decimal
}

// Summary holds the labeled estimate fields.
type Summary struct {
	ClientName           string
	GroundFloorArea      decimal.Decimal
	FirstFloorArea       decimal.Decimal
	TotalArea            decimal.Decimal
	ErrorMargin          decimal.Decimal
	VariableCosts        decimal.Decimal
	RawTotal             decimal.Decimal
	TotalWithMargin      decimal.Decimal
	GroundFloorIncidence decimal.Decimal
	FirstFloorIncidence  decimal.Decimal
}

// Data holds all data needed for export.
type Data struct {
	Title       string
	Reference   string
	CreatedDate string
	Variant     string
	Rows        []Row
	Summary     Summary
}

// Field is a formatted summary label and value.
type Field struct {
	Label string
	Value string
}

// NewData builds export data from a snapshot. A snapshot without an
// active selection cannot be exported.
func NewData(snap model.Snapshot) (Data, error) {
	if snap.Result == nil {
		return Data{}, estimate.ErrNoActiveSelection
	}

	rows := make([]Row, len(snap.Rows))
	for i, r := range snap.Rows {
		rows[i] = Row{
			Product:             r.Name,
			UnitCost:            r.UnitCost,
			GroundFloor:         r.IncludeGroundFloor,
			FirstFloor:          r.IncludeFirstFloor,
			GroundFloorEstimate: r.GroundFloorEstimate,
			FirstFloorEstimate:  r.FirstFloorEstimate,
			LineTotal:           r.LineTotal,
		}
	}

	return Data{
		Title:       Title,
		Reference:   newReference(),
		CreatedDate: time.Now().Format("02/01/2006"),
		Variant:     snap.Variant,
		Rows:        rows,
		Summary:     NewSummary(snap.Parameters, *snap.Result),
	}, nil
}

// NewSummary collects the summary fields of an estimate.
func NewSummary(p model.Parameters, res model.Result) Summary {
	return Summary{
		ClientName:           p.ClientName,
		GroundFloorArea:      p.GroundFloorArea,
		FirstFloorArea:       p.FirstFloorArea,
		TotalArea:            p.TotalArea(),
		ErrorMargin:          p.ErrorMargin,
		VariableCosts:        p.VariableCosts,
		RawTotal:             res.RawTotal,
		TotalWithMargin:      res.TotalWithMargin,
		GroundFloorIncidence: res.GroundFloorUnitIncidence,
		FirstFloorIncidence:  res.FirstFloorUnitIncidence,
	}
}

// Fields returns the summary as formatted label/value pairs in display order.
func (s Summary) Fields() []Field {
	client := s.ClientName
	if strings.TrimSpace(client) == "" {
		client = "-"
	}
	return []Field{
		{"Cliente", client},
		{"Superficie PT", cli.FormatArea(s.GroundFloorArea)},
		{"Superficie P1", cli.FormatArea(s.FirstFloorArea)},
		{"Superficie Totale", cli.FormatArea(s.TotalArea)},
		{"Margine", cli.FormatPercent(s.ErrorMargin)},
		{"Costi variabili", cli.FormatEuro(s.VariableCosts)},
		{"Totale stimato", cli.FormatEuro(s.RawTotal)},
		{"Totale con margine", cli.FormatEuro(s.TotalWithMargin)},
		{"Incidenza PT", cli.FormatIncidence(s.GroundFloorIncidence)},
		{"Incidenza P1", cli.FormatIncidence(s.FirstFloorIncidence)},
	}
}

// newReference returns a short unique document reference, e.g. "PRV-1A2B3C4D".
func newReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PRV-" + strings.ToUpper(id[:8])
}
