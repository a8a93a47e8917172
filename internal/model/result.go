package model

import "github.com/shopspring/decimal"

// Result is the summary of a recomputed table.
type Result struct {
	RawTotal                 decimal.Decimal
	TotalWithMargin          decimal.Decimal
	GroundFloorUnitIncidence decimal.Decimal
	FirstFloorUnitIncidence  decimal.Decimal
}

// Snapshot is everything the export layer needs from one session:
// parameters, the recomputed rows and the summary. Result is nil when the
// table has no active selection.
type Snapshot struct {
	Parameters Parameters
	Variant    string
	Rows       []LineItem
	Result     *Result
}
