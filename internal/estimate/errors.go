package estimate

import "github.com/rotisserie/eris"

var (
	// ErrInvalidNumericInput is returned at the input boundary when a value
	// cannot be parsed as a non-negative number.
	ErrInvalidNumericInput = eris.New("invalid numeric input")

	// ErrNoActiveSelection reports that no row has an inclusion flag set, so
	// the raw total is zero. It is informational: callers show a notice and
	// skip the incidence figures.
	ErrNoActiveSelection = eris.New("no active selection: select at least one PT or P1")

	// ErrUnknownProduct is returned when a name is not part of the catalog.
	ErrUnknownProduct = eris.New("unknown product")

	// ErrLockedColumn is returned when editing a cell the variant locks.
	ErrLockedColumn = eris.New("column is locked")
)
