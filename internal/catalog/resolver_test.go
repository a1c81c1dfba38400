package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func priceOf(v float64) *float64 { return &v }

func TestResolve_VariationTableWins(t *testing.T) {
	p := &domain.Product{
		ID:    "1",
		Price: 999,
		VariationsByColor: map[string][]domain.VariationOption{
			"Black": {
				{Storage: "128GB", Quantity: 4, Price: priceOf(899)},
				{Storage: "256GB", Quantity: 2},
			},
		},
		// Contradicting flat tables must not be consulted.
		StockByVariation: []domain.VariationStock{{Color: "Black", Storage: "128GB", Quantity: 99}},
		StockByColor:     []domain.ColorStock{{Color: "Black", Quantity: 50}},
	}

	res := Resolve(p, "Black", "128GB")
	require.True(t, res.StockKnown)
	assert.Equal(t, 4, res.StockQuantity)
	assert.Equal(t, 899.0, res.UnitPrice)
	assert.True(t, res.PriceFromVariation)

	// No per-variation price falls back to the base price.
	res = Resolve(p, "Black", "256GB")
	require.True(t, res.StockKnown)
	assert.Equal(t, 2, res.StockQuantity)
	assert.Equal(t, 999.0, res.UnitPrice)
	assert.False(t, res.PriceFromVariation)
}

func TestResolve_EmptyColorKeyForColorlessProduct(t *testing.T) {
	p := &domain.Product{
		ID:    "2",
		Price: 599,
		VariationsByColor: map[string][]domain.VariationOption{
			"": {{Storage: "64GB", Quantity: 6}},
		},
	}

	res := Resolve(p, "", "64GB")
	require.True(t, res.StockKnown)
	assert.Equal(t, 6, res.StockQuantity)
}

func TestResolve_FlatVariationFallback(t *testing.T) {
	p := &domain.Product{
		ID:    "3",
		Price: 799,
		StockByVariation: []domain.VariationStock{
			{Color: "Bay", Storage: "128GB", Quantity: 3},
		},
	}

	res := Resolve(p, "Bay", "128GB")
	require.True(t, res.StockKnown)
	assert.Equal(t, 3, res.StockQuantity)
	assert.Equal(t, 799.0, res.UnitPrice)

	res = Resolve(p, "Bay", "256GB")
	assert.False(t, res.StockKnown)
}

func TestResolve_StockByColorOnly(t *testing.T) {
	p := &domain.Product{
		ID:     "4",
		Price:  499,
		Colors: []domain.ProductColor{{Name: "Black"}, {Name: "White"}},
		StockByColor: []domain.ColorStock{
			{Color: "Black", Quantity: 5},
			{Color: "White", Quantity: 0},
		},
	}

	res := Resolve(p, "Black", "")
	require.True(t, res.StockKnown)
	assert.Equal(t, 5, res.StockQuantity)
	assert.True(t, res.InStock())

	// Determined zero blocks add-to-cart.
	res = Resolve(p, "White", "")
	require.True(t, res.StockKnown)
	assert.Equal(t, 0, res.StockQuantity)
	assert.False(t, res.InStock())

	// Unmatched color is unspecified, not zero, and does not block.
	res = Resolve(p, "Red", "")
	assert.False(t, res.StockKnown)
	assert.True(t, res.InStock())
}

func TestResolve_AmbientStockForColorlessProduct(t *testing.T) {
	p := &domain.Product{
		ID:           "5",
		Price:        299,
		StockByColor: []domain.ColorStock{{Color: "", Quantity: 8}},
	}
	res := Resolve(p, "", "")
	require.True(t, res.StockKnown)
	assert.Equal(t, 8, res.StockQuantity)

	// Without an empty-color entry the first entry stands in.
	p.StockByColor = []domain.ColorStock{{Color: "Any", Quantity: 2}}
	res = Resolve(p, "", "")
	require.True(t, res.StockKnown)
	assert.Equal(t, 2, res.StockQuantity)
}

func TestResolve_NoSources(t *testing.T) {
	p := &domain.Product{ID: "6", Price: 100}
	res := Resolve(p, "", "")
	assert.False(t, res.StockKnown)
	assert.Equal(t, 100.0, res.UnitPrice)
	assert.True(t, res.InStock())
}

func TestMaxAddQuantity(t *testing.T) {
	p := &domain.Product{
		ID:     "7",
		Price:  100,
		Colors: []domain.ProductColor{{Name: "Black"}},
		StockByColor: []domain.ColorStock{
			{Color: "Black", Quantity: 3},
		},
	}

	assert.Equal(t, 3, MaxAddQuantity(p, "Black", "", 10))
	assert.Equal(t, 2, MaxAddQuantity(p, "Black", "", 2))
	// Unknown stock keeps the caller's own limit.
	assert.Equal(t, 10, MaxAddQuantity(p, "Red", "", 10))
	// A floor of one even when the caller asks for less.
	assert.Equal(t, 1, MaxAddQuantity(p, "Black", "", 0))

	p.StockByColor[0].Quantity = 0
	assert.Equal(t, 0, MaxAddQuantity(p, "Black", "", 10))
}
