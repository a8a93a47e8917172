package catalog

import (
	"testing"

	"github.com/ferrari-contract/preventivo/internal/estimate"
	"github.com/ferrari-contract/preventivo/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, DefaultPriceList, c.PriceList)
	require.Equal(t, 12, c.Len())

	items := c.Items()
	for i, it := range items {
		assert.Equal(t, Names[i], it.Name)
		assert.True(t, it.UnitCost.Equal(decimal.NewFromInt(50)), it.Name)
		assert.False(t, it.IncludeGroundFloor)
		assert.False(t, it.IncludeFirstFloor)
	}
}

func TestPriceListsMatchNames(t *testing.T) {
	for name, costs := range PriceLists {
		assert.Len(t, costs, len(Names), name)
	}
}

func TestByPriceList(t *testing.T) {
	c, ok := ByPriceList(" Listino ")
	require.True(t, ok)
	assert.Equal(t, "listino", c.PriceList)

	cost, ok := c.UnitCost("soppalco")
	require.True(t, ok)
	assert.True(t, cost.Equal(decimal.NewFromInt(600)))

	c, ok = ByPriceList("missing")
	assert.False(t, ok)
	assert.Equal(t, DefaultPriceList, c.PriceList)
}

func TestPriceListNames(t *testing.T) {
	assert.Equal(t, []string{"listino", "standard"}, PriceListNames())
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"PAVIMENTO", "PAVIMENTO", true},
		{" pavimento ", "PAVIMENTO", true},
		{"cartongesso   delta 125/175", "CARTONGESSO DELTA 125/175", true},
		{"vmc", "VMC", true},
		{"tappeto", "TAPPETO", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeName(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	c := Default()
	items := c.Items()
	items[0].UnitCost = decimal.NewFromInt(1)

	cost, _ := c.UnitCost("PAVIMENTO")
	assert.True(t, cost.Equal(decimal.NewFromInt(50)))
}

func TestWithPrices(t *testing.T) {
	c := Default()
	out, err := c.WithPrices(map[string]decimal.Decimal{
		"vetro": decimal.NewFromInt(230),
		"VMC":   decimal.RequireFromString("249.99"),
	})
	require.NoError(t, err)

	cost, _ := out.UnitCost("VETRO")
	assert.True(t, cost.Equal(decimal.NewFromInt(230)))
	cost, _ = out.UnitCost("VMC")
	assert.Equal(t, "249.99", cost.String())
	cost, _ = out.UnitCost("BAGNI")
	assert.True(t, cost.Equal(decimal.NewFromInt(50)))

	cost, _ = c.UnitCost("VETRO")
	assert.True(t, cost.Equal(decimal.NewFromInt(50)), "receiver must not change")
}

func TestWithPrices_Errors(t *testing.T) {
	_, err := Default().WithPrices(map[string]decimal.Decimal{"TAPPETO": decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, estimate.ErrUnknownProduct)

	_, err = Default().WithPrices(map[string]decimal.Decimal{"VETRO": decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, estimate.ErrInvalidNumericInput)
}

func TestWithOverrides(t *testing.T) {
	out, err := Default().WithOverrides(map[string]float64{"arredi": 150})
	require.NoError(t, err)
	cost, _ := out.UnitCost("ARREDI")
	assert.True(t, cost.Equal(decimal.NewFromInt(150)))
}

func TestCatalogFeedsState(t *testing.T) {
	s, err := estimate.NewState(Default().Items(), model.DefaultParameters(), estimate.Contract)
	require.NoError(t, err)
	require.NoError(t, s.SetGroundFloor("PAVIMENTO", true))

	res, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, "7875", res.TotalWithMargin.String())
}
