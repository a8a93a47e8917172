package estimate

import (
	"testing"

	"github.com/ferrari-contract/preventivo/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, v Variant) *State {
	t.Helper()
	s, err := NewState(twelveRows(), model.DefaultParameters(), v)
	require.NoError(t, err)
	return s
}

func TestNewState(t *testing.T) {
	s := newTestState(t, Contract)
	assert.Equal(t, 12, s.Len())
	assert.Equal(t, "contract", s.Variant().Name)

	_, err := s.Result()
	assert.ErrorIs(t, err, ErrNoActiveSelection)
}

func TestNewState_Rejects(t *testing.T) {
	params := model.DefaultParameters()

	dup := twelveRows()
	dup[1].Name = "pavimento"
	_, err := NewState(dup, params, Contract)
	assert.Error(t, err)

	empty := twelveRows()
	empty[4].Name = "  "
	_, err = NewState(empty, params, Contract)
	assert.Error(t, err)

	neg := twelveRows()
	neg[0].UnitCost = dec("-1")
	_, err = NewState(neg, params, Contract)
	assert.ErrorIs(t, err, ErrInvalidNumericInput)

	bad := params
	bad.ErrorMargin = dec("-0.1")
	_, err = NewState(twelveRows(), bad, Contract)
	assert.ErrorIs(t, err, ErrInvalidNumericInput)

	_, err = NewState(twelveRows(), params, Variant{Name: "x", LockedColumns: []string{"nope"}})
	assert.Error(t, err)
}

func TestState_DefaultScenario(t *testing.T) {
	s := newTestState(t, Contract)
	require.NoError(t, s.SetGroundFloor("PAVIMENTO", true))

	res, err := s.Result()
	require.NoError(t, err)
	assertDecimal(t, "7875.00", res.TotalWithMargin)
	assertDecimal(t, "63.00", res.GroundFloorUnitIncidence)
	assertDecimal(t, "63.00", res.FirstFloorUnitIncidence)

	row, ok := s.Row("pavimento")
	require.True(t, ok)
	assertDecimal(t, "6250", row.GroundFloorEstimate)
}

func TestState_SetUnitCost(t *testing.T) {
	s := newTestState(t, Contract)
	require.NoError(t, s.SetUnitCost("vetro", dec("80")))
	row, _ := s.Row("VETRO")
	assertDecimal(t, "80", row.UnitCost)

	assert.ErrorIs(t, s.SetUnitCost("TAPPETO", dec("1")), ErrUnknownProduct)
	assert.ErrorIs(t, s.SetUnitCost("VETRO", dec("-1")), ErrInvalidNumericInput)

	row, _ = s.Row("VETRO")
	assertDecimal(t, "80", row.UnitCost)
}

func TestState_LockedCells(t *testing.T) {
	s := newTestState(t, WebApp)
	assert.ErrorIs(t, s.SetFirstFloor("SOPPALCO", true), ErrLockedColumn)
	assert.ErrorIs(t, s.ToggleFirstFloor("SOPPALCO"), ErrLockedColumn)
	require.NoError(t, s.SetGroundFloor("SOPPALCO", true))

	row, _ := s.Row("SOPPALCO")
	assert.True(t, row.IncludeGroundFloor)
	assert.False(t, row.IncludeFirstFloor)

	fixed := Variant{Name: "fixed", LockedColumns: []string{"costo"}}
	s = newTestState(t, fixed)
	assert.ErrorIs(t, s.SetUnitCost("VETRO", dec("1")), ErrLockedColumn)
}

func TestState_Toggle(t *testing.T) {
	s := newTestState(t, Contract)
	require.NoError(t, s.ToggleGroundFloor("ARIA"))
	require.NoError(t, s.ToggleFirstFloor("ARIA"))
	row, _ := s.Row("ARIA")
	assert.True(t, row.IncludeGroundFloor)
	assert.True(t, row.IncludeFirstFloor)
	assertDecimal(t, "12500", row.LineTotal)

	require.NoError(t, s.ToggleGroundFloor("ARIA"))
	row, _ = s.Row("ARIA")
	assert.False(t, row.IncludeGroundFloor)

	assert.ErrorIs(t, s.ToggleGroundFloor("NOPE"), ErrUnknownProduct)
}

func TestState_MergedFlag(t *testing.T) {
	s := newTestState(t, Merged)
	require.NoError(t, s.SetFirstFloor("BAGNI", true))

	row, _ := s.Row("BAGNI")
	assert.True(t, row.IncludeGroundFloor)
	assert.True(t, row.IncludeFirstFloor)

	require.NoError(t, s.ToggleFirstFloor("BAGNI"))
	row, _ = s.Row("BAGNI")
	assert.False(t, row.IncludeGroundFloor)
	assert.False(t, row.IncludeFirstFloor)
}

func TestState_SetVariantNormalizesRows(t *testing.T) {
	s := newTestState(t, Contract)
	require.NoError(t, s.SetFirstFloor("SOPPALCO", true))
	require.NoError(t, s.SetVariant(WebApp))

	row, _ := s.Row("SOPPALCO")
	assert.False(t, row.IncludeFirstFloor)
}

func TestState_SetParameters(t *testing.T) {
	s := newTestState(t, Contract)
	require.NoError(t, s.SetGroundFloor("PAVIMENTO", true))

	p := s.Parameters()
	p.GroundFloorArea = dec("200")
	require.NoError(t, s.SetParameters(p))

	row, _ := s.Row("PAVIMENTO")
	assertDecimal(t, "10000", row.GroundFloorEstimate)

	p.VariableCosts = dec("-1")
	assert.ErrorIs(t, s.SetParameters(p), ErrInvalidNumericInput)
	assertDecimal(t, "1000", s.Parameters().VariableCosts)
}

func TestState_Reset(t *testing.T) {
	s := newTestState(t, Contract)
	require.NoError(t, s.SetUnitCost("PAVIMENTO", dec("99")))
	require.NoError(t, s.SetGroundFloor("PAVIMENTO", true))

	s.Reset()
	row, _ := s.Row("PAVIMENTO")
	assertDecimal(t, "50", row.UnitCost)
	assert.False(t, row.IncludeGroundFloor)
}

func TestState_RowsReturnsCopy(t *testing.T) {
	s := newTestState(t, Contract)
	rows := s.Rows()
	rows[0].UnitCost = decimal.NewFromInt(1)
	rows[0].IncludeGroundFloor = true

	row, _ := s.Row(rows[0].Name)
	assertDecimal(t, "50", row.UnitCost)
	assert.False(t, row.IncludeGroundFloor)
}

func TestState_Snapshot(t *testing.T) {
	s := newTestState(t, WebApp)
	snap := s.Snapshot()
	assert.Nil(t, snap.Result)
	assert.Equal(t, "webapp", snap.Variant)
	assert.Len(t, snap.Rows, 12)

	require.NoError(t, s.SetGroundFloor("PAVIMENTO", true))
	snap = s.Snapshot()
	require.NotNil(t, snap.Result)
	assertDecimal(t, "7875.00", snap.Result.TotalWithMargin)
	assertDecimal(t, "6250", snap.Rows[0].LineTotal)
}
