package estimate

import (
	"strings"

	"github.com/ferrari-contract/preventivo/internal/model"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// State is the single owned session object: the product table inputs, the
// estimate parameters and the active variant. Derived fields are never
// stored; Rows and Result recompute them on every call.
//
// State is not safe for concurrent use. It belongs to one presenter.
type State struct {
	params   model.Parameters
	variant  Variant
	defaults []model.LineItem
	rows     []model.LineItem
	index    map[string]int
	log      *zap.Logger
}

// NewState builds a session from the catalog rows in defaults. Only the
// Name, UnitCost and flag fields of defaults are used.
func NewState(defaults []model.LineItem, params model.Parameters, variant Variant) (*State, error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}
	if err := variant.Validate(); err != nil {
		return nil, err
	}

	s := &State{
		params:   params,
		variant:  variant,
		defaults: make([]model.LineItem, len(defaults)),
		index:    make(map[string]int, len(defaults)),
		log:      zap.L().Named("estimate"),
	}
	for i, d := range defaults {
		key := productKey(d.Name)
		if key == "" {
			return nil, eris.Errorf("estimate: row %d has no product name", i)
		}
		if _, dup := s.index[key]; dup {
			return nil, eris.Errorf("estimate: duplicate product %q", d.Name)
		}
		if d.UnitCost.IsNegative() {
			return nil, eris.Wrapf(ErrInvalidNumericInput, "estimate: negative unit cost for %s", d.Name)
		}
		s.index[key] = i
		s.defaults[i] = model.LineItem{
			Name:               d.Name,
			UnitCost:           d.UnitCost,
			IncludeGroundFloor: d.IncludeGroundFloor,
			IncludeFirstFloor:  d.IncludeFirstFloor,
		}
	}
	s.Reset()
	return s, nil
}

// ValidateParameters rejects negative areas, margin or variable costs.
func ValidateParameters(p model.Parameters) error {
	checks := []struct {
		field string
		value decimal.Decimal
	}{
		{"superficie PT", p.GroundFloorArea},
		{"superficie P1", p.FirstFloorArea},
		{"margine", p.ErrorMargin},
		{"costi variabili", p.VariableCosts},
	}
	for _, c := range checks {
		if c.value.IsNegative() {
			return eris.Wrapf(ErrInvalidNumericInput, "%s is negative", c.field)
		}
	}
	return nil
}

// Reset restores the catalog costs and flags.
func (s *State) Reset() {
	s.rows = make([]model.LineItem, len(s.defaults))
	for i, d := range s.defaults {
		s.rows[i] = s.variant.Normalize(d)
	}
}

// Parameters returns the current estimate parameters.
func (s *State) Parameters() model.Parameters { return s.params }

// Variant returns the active variant.
func (s *State) Variant() Variant { return s.variant }

// Len returns the number of rows in the table.
func (s *State) Len() int { return len(s.rows) }

// SetParameters replaces the estimate parameters.
func (s *State) SetParameters(p model.Parameters) error {
	if err := ValidateParameters(p); err != nil {
		return err
	}
	s.params = p
	s.log.Debug("parameters updated",
		zap.String("client", p.ClientName),
		zap.String("pt", p.GroundFloorArea.String()),
		zap.String("p1", p.FirstFloorArea.String()),
		zap.String("margin", p.ErrorMargin.String()),
		zap.String("variable_costs", p.VariableCosts.String()),
	)
	return nil
}

// SetVariant switches the variant and re-applies its rules to every row.
func (s *State) SetVariant(v Variant) error {
	if err := v.Validate(); err != nil {
		return err
	}
	s.variant = v
	for i := range s.rows {
		s.rows[i] = v.Normalize(s.rows[i])
	}
	s.log.Debug("variant changed", zap.String("variant", v.Name))
	return nil
}

// SetUnitCost sets the cost per square meter of one product.
func (s *State) SetUnitCost(name string, cost decimal.Decimal) error {
	i, err := s.editable(name, model.ColumnUnitCost)
	if err != nil {
		return err
	}
	if cost.IsNegative() {
		return eris.Wrapf(ErrInvalidNumericInput, "negative unit cost for %s", s.rows[i].Name)
	}
	s.rows[i].UnitCost = cost
	s.log.Debug("unit cost updated", zap.String("product", s.rows[i].Name), zap.String("cost", cost.String()))
	return nil
}

// SetGroundFloor sets the PT inclusion flag. With a merged variant it sets
// the shared PT/P1 flag.
func (s *State) SetGroundFloor(name string, include bool) error {
	i, err := s.editable(name, model.ColumnGroundFloor)
	if err != nil {
		return err
	}
	s.rows[i].IncludeGroundFloor = include
	s.rows[i] = s.variant.Normalize(s.rows[i])
	s.log.Debug("pt flag updated", zap.String("product", s.rows[i].Name), zap.Bool("include", include))
	return nil
}

// SetFirstFloor sets the P1 inclusion flag. With a merged variant it sets
// the shared PT/P1 flag.
func (s *State) SetFirstFloor(name string, include bool) error {
	if s.variant.MergedFloorFlag {
		return s.SetGroundFloor(name, include)
	}
	i, err := s.editable(name, model.ColumnFirstFloor)
	if err != nil {
		return err
	}
	s.rows[i].IncludeFirstFloor = include
	s.rows[i] = s.variant.Normalize(s.rows[i])
	s.log.Debug("p1 flag updated", zap.String("product", s.rows[i].Name), zap.Bool("include", include))
	return nil
}

// ToggleGroundFloor flips the PT flag of one product.
func (s *State) ToggleGroundFloor(name string) error {
	row, ok := s.Row(name)
	if !ok {
		return eris.Wrapf(ErrUnknownProduct, "%q", name)
	}
	return s.SetGroundFloor(name, !row.IncludeGroundFloor)
}

// ToggleFirstFloor flips the P1 flag of one product.
func (s *State) ToggleFirstFloor(name string) error {
	row, ok := s.Row(name)
	if !ok {
		return eris.Wrapf(ErrUnknownProduct, "%q", name)
	}
	if s.variant.MergedFloorFlag {
		return s.SetGroundFloor(name, !row.IncludeGroundFloor)
	}
	return s.SetFirstFloor(name, !row.IncludeFirstFloor)
}

// Row returns the recomputed row for name.
func (s *State) Row(name string) (model.LineItem, bool) {
	i, ok := s.index[productKey(name)]
	if !ok {
		return model.LineItem{}, false
	}
	return RecomputeRow(s.rows[i], s.params), true
}

// Rows returns a fresh copy of the table with derived fields populated.
func (s *State) Rows() []model.LineItem {
	return RecomputeTable(s.rows, s.params)
}

// Result summarizes the current table. See Summarize.
func (s *State) Result() (model.Result, error) {
	return Summarize(s.rows, s.params)
}

// Snapshot returns the current parameters, rows and result for export.
// Result is nil when there is no active selection.
func (s *State) Snapshot() model.Snapshot {
	snap := model.Snapshot{
		Parameters: s.params,
		Variant:    s.variant.Name,
		Rows:       s.Rows(),
	}
	if res, err := s.Result(); err == nil {
		snap.Result = &res
	}
	return snap
}

func (s *State) editable(name string, col model.Column) (int, error) {
	i, ok := s.index[productKey(name)]
	if !ok {
		return 0, eris.Wrapf(ErrUnknownProduct, "%q", name)
	}
	if s.variant.IsLocked(s.rows[i].Name, col) {
		return 0, eris.Wrapf(ErrLockedColumn, "%s %s", s.rows[i].Name, col.Label())
	}
	return i, nil
}

func productKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
