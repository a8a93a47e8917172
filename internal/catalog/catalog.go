// Package catalog holds the fixed product catalog and its price lists.
package catalog

import (
	"sort"
	"strings"

	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/model"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// Names lists the products in table order.
var Names = []string{
	"PAVIMENTO",
	"SOPRAELEVATO",
	"CONTROSOFFITTO",
	"CARTONGESSO DELTA 125/175",
	"MODULARI",
	"VETRO",
	"BAGNI",
	"ELETTRICO",
	"ARIA",
	"VMC",
	"ARREDI",
	"SOPPALCO",
}

// DefaultPriceList is the price list used when none is configured.
const DefaultPriceList = "standard"

// PriceLists maps a price list name to unit costs (€/m²) in Names order.
var PriceLists = map[string][]float64{
	"standard": {50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50},
	"listino":  {60, 110, 80, 150, 190, 230, 100, 190, 250, 250, 150, 600},
}

// Catalog is an ordered list of products with their unit costs.
type Catalog struct {
	PriceList string
	entries   []model.LineItem
}

// Default returns the catalog for DefaultPriceList.
func Default() Catalog {
	c, _ := ByPriceList(DefaultPriceList)
	return c
}

// ByPriceList returns the catalog priced with the named list. Unknown names
// return the default catalog and false.
func ByPriceList(name string) (Catalog, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	costs, ok := PriceLists[key]
	if !ok {
		key = DefaultPriceList
		costs = PriceLists[key]
	}

	entries := make([]model.LineItem, len(Names))
	for i, n := range Names {
		entries[i] = model.LineItem{Name: n, UnitCost: decimal.NewFromFloat(costs[i])}
	}
	return Catalog{PriceList: key, entries: entries}, ok
}

// PriceListNames returns the known price list names, sorted.
func PriceListNames() []string {
	names := make([]string, 0, len(PriceLists))
	for n := range PriceLists {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NormalizeName maps user spelling of a product to its catalog name.
// e.g. " pavimento " -> "PAVIMENTO". Unknown names are returned upper-cased
// with false.
func NormalizeName(raw string) (string, bool) {
	key := strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
	for _, n := range Names {
		if n == key {
			return n, true
		}
	}
	return key, false
}

// Items returns a copy of the catalog rows, ready for estimate.NewState.
func (c Catalog) Items() []model.LineItem {
	out := make([]model.LineItem, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of products.
func (c Catalog) Len() int { return len(c.entries) }

// UnitCost returns the cost of the named product.
func (c Catalog) UnitCost(name string) (decimal.Decimal, bool) {
	n, ok := NormalizeName(name)
	if !ok {
		return decimal.Zero, false
	}
	for _, e := range c.entries {
		if e.Name == n {
			return e.UnitCost, true
		}
	}
	return decimal.Zero, false
}

// WithPrices returns a copy of c with the given unit costs applied.
// Products not in prices keep their cost.
func (c Catalog) WithPrices(prices map[string]decimal.Decimal) (Catalog, error) {
	out := Catalog{PriceList: c.PriceList, entries: c.Items()}
	for raw, cost := range prices {
		name, ok := NormalizeName(raw)
		if !ok {
			return c, eris.Wrapf(estimate.ErrUnknownProduct, "catalog: %q", raw)
		}
		if cost.IsNegative() {
			return c, eris.Wrapf(estimate.ErrInvalidNumericInput, "catalog: negative cost for %s", name)
		}
		for i := range out.entries {
			if out.entries[i].Name == name {
				out.entries[i].UnitCost = cost
			}
		}
	}
	return out, nil
}

// WithOverrides applies float overrides as read from the config file.
func (c Catalog) WithOverrides(overrides map[string]float64) (Catalog, error) {
	prices := make(map[string]decimal.Decimal, len(overrides))
	for name, v := range overrides {
		prices[name] = decimal.NewFromFloat(v)
	}
	return c.WithPrices(prices)
}
