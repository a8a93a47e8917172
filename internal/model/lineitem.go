// Package model defines domain types for preventivo estimates.
package model

import "github.com/shopspring/decimal"

// LineItem is one row of the product table. Name, UnitCost and the two
// inclusion flags are inputs; the estimate fields are derived by the engine.
type LineItem struct {
	Name               string
	UnitCost           decimal.Decimal
	IncludeGroundFloor bool
	IncludeFirstFloor  bool

	GroundFloorEstimate decimal.Decimal
	FirstFloorEstimate  decimal.Decimal
	LineTotal           decimal.Decimal
}

// Column identifies an editable column of the product table.
type Column string

// Table columns. ColumnName is never editable.
const (
	ColumnName        Column = "prodotto"
	ColumnUnitCost    Column = "costo"
	ColumnGroundFloor Column = "pt"
	ColumnFirstFloor  Column = "p1"
)

// Label returns the column header used by the grid and the exports.
func (c Column) Label() string {
	switch c {
	case ColumnName:
		return "Prodotto"
	case ColumnUnitCost:
		return "Costo/mq"
	case ColumnGroundFloor:
		return "PT"
	case ColumnFirstFloor:
		return "P1"
	}
	return string(c)
}

// ParseColumn maps a column key or header label to a Column.
func ParseColumn(s string) (Column, bool) {
	for _, c := range []Column{ColumnName, ColumnUnitCost, ColumnGroundFloor, ColumnFirstFloor} {
		if s == string(c) || s == c.Label() {
			return c, true
		}
	}
	return "", false
}
