package estimate

import (
	"strings"

	"github.com/ferrari-contract/preventivo/internal/model"

	"github.com/rotisserie/eris"
)

// Variant describes how a table is edited. With MergedFloorFlag a single
// PT/P1 flag drives both inclusions. LockedColumns entries are either a
// column key ("costo", "pt", "p1") locking the whole column or "NAME/key"
// locking one cell, e.g. "SOPPALCO/p1". The name column is always locked.
type Variant struct {
	Name            string
	MergedFloorFlag bool
	LockedColumns   []string
}

// Built-in variants.
var (
	Contract = Variant{Name: "contract"}
	WebApp   = Variant{Name: "webapp", LockedColumns: []string{"SOPPALCO/p1"}}
	Merged   = Variant{Name: "merged", MergedFloorFlag: true}
)

// Variants lists the built-in variants. The first one is the default.
var Variants = []Variant{Contract, WebApp, Merged}

// VariantByName returns the variant called name, searching extra before
// the built-ins. It reports false and the default variant when none match.
func VariantByName(name string, extra ...Variant) (Variant, bool) {
	for _, v := range extra {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	for _, v := range Variants {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Variants[0], false
}

// Validate checks that every locked column entry names a known column.
func (v Variant) Validate() error {
	for _, entry := range v.LockedColumns {
		name, key, cell := strings.Cut(entry, "/")
		if !cell {
			key = name
		} else if strings.TrimSpace(name) == "" {
			return eris.Errorf("variant %s: empty product in %q", v.Name, entry)
		}
		if _, ok := model.ParseColumn(strings.TrimSpace(key)); !ok {
			return eris.Errorf("variant %s: unknown column in %q", v.Name, entry)
		}
	}
	return nil
}

// IsLocked reports whether the cell (product, col) cannot be edited.
func (v Variant) IsLocked(product string, col model.Column) bool {
	if col == model.ColumnName {
		return true
	}
	for _, entry := range v.LockedColumns {
		name, key, cell := strings.Cut(entry, "/")
		if !cell {
			key = name
		}
		c, ok := model.ParseColumn(strings.TrimSpace(key))
		if !ok || c != col {
			continue
		}
		if !cell || strings.EqualFold(strings.TrimSpace(name), product) {
			return true
		}
	}
	return false
}

// Normalize applies the variant rules to the input fields of item: the
// merged flag copies PT into P1 and locked flags are cleared.
func (v Variant) Normalize(item model.LineItem) model.LineItem {
	if v.MergedFloorFlag {
		item.IncludeFirstFloor = item.IncludeGroundFloor
	}
	if v.IsLocked(item.Name, model.ColumnGroundFloor) {
		item.IncludeGroundFloor = false
	}
	if v.IsLocked(item.Name, model.ColumnFirstFloor) {
		item.IncludeFirstFloor = false
	}
	return item
}
