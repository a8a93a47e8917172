package model

import "github.com/shopspring/decimal"

// Parameters holds the scalar inputs of one estimate.
type Parameters struct {
	ClientName      string
	GroundFloorArea decimal.Decimal // PT, m²
	FirstFloorArea  decimal.Decimal // P1, m²
	ErrorMargin     decimal.Decimal // fraction, 0.1 = 10%
	VariableCosts   decimal.Decimal // flat add-on after margin
}

// DefaultParameters returns the values a new session starts from.
func DefaultParameters() Parameters {
	return Parameters{
		GroundFloorArea: decimal.NewFromInt(125),
		FirstFloorArea:  decimal.NewFromInt(125),
		ErrorMargin:     decimal.NewFromFloat(0.1),
		VariableCosts:   decimal.NewFromInt(1000),
	}
}

// TotalArea is the combined PT + P1 surface.
func (p Parameters) TotalArea() decimal.Decimal {
	return p.GroundFloorArea.Add(p.FirstFloorArea)
}
