// Package estimate implements the estimate engine: per-row floor estimates,
// the table summary, the variant rules and the owned session state.
package estimate

import (
	"github.com/ferrari-contract/preventivo/internal/model"

	"github.com/shopspring/decimal"
)

// currencyPlaces is the precision of every rounded money figure.
const currencyPlaces = 2

var one = decimal.NewFromInt(1)

// RecomputeRow returns item with its derived estimate fields set from the
// current unit cost, flags and floor areas.
func RecomputeRow(item model.LineItem, params model.Parameters) model.LineItem {
	item.GroundFloorEstimate = decimal.Zero
	item.FirstFloorEstimate = decimal.Zero

	if item.IncludeGroundFloor {
		item.GroundFloorEstimate = item.UnitCost.Mul(params.GroundFloorArea)
	}
	if item.IncludeFirstFloor {
		item.FirstFloorEstimate = item.UnitCost.Mul(params.FirstFloorArea)
	}
	item.LineTotal = item.GroundFloorEstimate.Add(item.FirstFloorEstimate)
	return item
}

// RecomputeTable applies RecomputeRow to every row. The input slice is not
// modified; order and names are preserved.
func RecomputeTable(rows []model.LineItem, params model.Parameters) []model.LineItem {
	out := make([]model.LineItem, len(rows))
	for i, r := range rows {
		out[i] = RecomputeRow(r, params)
	}
	return out
}

// Summarize computes the estimate totals for rows. Line totals are derived
// again from the inputs, so stale estimate fields on rows are ignored.
//
// TotalWithMargin = round(raw * (1 + margin) + variable costs, 2) and each
// incidence is round(TotalWithMargin / area, 2), or 0 for a zero area.
// Rounding is half away from zero. When the raw total is zero the function
// returns ErrNoActiveSelection and a zero Result.
func Summarize(rows []model.LineItem, params model.Parameters) (model.Result, error) {
	raw := decimal.Zero
	for _, r := range rows {
		raw = raw.Add(RecomputeRow(r, params).LineTotal)
	}
	if raw.IsZero() {
		return model.Result{}, ErrNoActiveSelection
	}

	total := raw.Mul(one.Add(params.ErrorMargin)).
		Add(params.VariableCosts).
		Round(currencyPlaces)

	return model.Result{
		RawTotal:                 raw,
		TotalWithMargin:          total,
		GroundFloorUnitIncidence: incidence(total, params.GroundFloorArea),
		FirstFloorUnitIncidence:  incidence(total, params.FirstFloorArea),
	}, nil
}

func incidence(total, area decimal.Decimal) decimal.Decimal {
	if !area.IsPositive() {
		return decimal.Zero
	}
	return total.DivRound(area, currencyPlaces)
}
