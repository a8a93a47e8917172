package export

import (
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// YAMLDocument is the YAML shape of an export. Amounts are plain decimal
// strings with two places.
type YAMLDocument struct {
	Title     string      `yaml:"title"`
	Reference string      `yaml:"reference"`
	Date      string      `yaml:"date"`
	Variant   string      `yaml:"variant,omitempty"`
	Rows      []YAMLRow   `yaml:"rows"`
	Summary   YAMLSummary `yaml:"summary"`
}

// YAMLRow is one product line.
type YAMLRow struct {
	Product             string `yaml:"prodotto"`
	UnitCost            string `yaml:"costo_mq"`
	GroundFloor         bool   `yaml:"pt"`
	FirstFloor          bool   `yaml:"p1"`
	GroundFloorEstimate string `yaml:"stima_pt"`
	FirstFloorEstimate  string `yaml:"stima_p1"`
	LineTotal           string `yaml:"stima_totale"`
}

// YAMLSummary holds the summary fields.
type YAMLSummary struct {
	ClientName           string `yaml:"cliente"`
	GroundFloorArea      string `yaml:"superficie_pt"`
	FirstFloorArea       string `yaml:"superficie_p1"`
	TotalArea            string `yaml:"superficie_totale"`
	ErrorMargin          string `yaml:"margine"`
	VariableCosts        string `yaml:"costi_variabili"`
	RawTotal             string `yaml:"totale_stimato"`
	TotalWithMargin      string `yaml:"totale_con_margine"`
	GroundFloorIncidence string `yaml:"incidenza_pt"`
	FirstFloorIncidence  string `yaml:"incidenza_p1"`
}

// GenerateYAML renders data as a YAML document.
func GenerateYAML(data Data) ([]byte, error) {
	doc := YAMLDocument{
		Title:     data.Title,
		Reference: data.Reference,
		Date:      data.CreatedDate,
		Variant:   data.Variant,
		Rows:      make([]YAMLRow, len(data.Rows)),
	}
	for i, r := range data.Rows {
		doc.Rows[i] = YAMLRow{
			Product:             r.Product,
			UnitCost:            r.UnitCost.StringFixed(2),
			GroundFloor:         r.GroundFloor,
			FirstFloor:          r.FirstFloor,
			GroundFloorEstimate: r.GroundFloorEstimate.StringFixed(2),
			FirstFloorEstimate:  r.FirstFloorEstimate.StringFixed(2),
			LineTotal:           r.LineTotal.StringFixed(2),
		}
	}

	s := data.Summary
	doc.Summary = YAMLSummary{
		ClientName:           s.ClientName,
		GroundFloorArea:      s.GroundFloorArea.StringFixed(2),
		FirstFloorArea:       s.FirstFloorArea.StringFixed(2),
		TotalArea:            s.TotalArea.StringFixed(2),
		ErrorMargin:          s.ErrorMargin.String(),
		VariableCosts:        s.VariableCosts.StringFixed(2),
		RawTotal:             s.RawTotal.StringFixed(2),
		TotalWithMargin:      s.TotalWithMargin.StringFixed(2),
		GroundFloorIncidence: s.GroundFloorIncidence.StringFixed(2),
		FirstFloorIncidence:  s.FirstFloorIncidence.StringFixed(2),
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, eris.Wrap(err, "export: marshal yaml")
	}
	return out, nil
}
