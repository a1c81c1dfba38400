// Package catalog turns loosely-typed backend product records into the
// canonical domain.Product shape and resolves stock and price for a
// color/storage selection.
package catalog

import (
	"github.com/spf13/cast"

	"storefront/internal/domain"
)

// Normalize converts an arbitrary JSON-decoded product record into a Product
// with defined, typed fields. It is idempotent: feeding a normalized product
// back in produces an identical value.
func Normalize(raw map[string]any) domain.Product {
	p := domain.Product{
		ID:          cast.ToString(raw["id"]),
		Name:        cast.ToString(raw["name"]),
		Price:       cast.ToFloat64(raw["price"]),
		Image:       cast.ToString(raw["image"]),
		Category:    cast.ToString(raw["category"]),
		Description: cast.ToString(raw["description"]),
		Sizes:       normalizeSizes(raw["sizes"]),
		Colors:      normalizeColors(raw["colors"]),
		Specs:       normalizeSpecs(raw["specs"]),
	}

	p.StockByColor = normalizeStockByColor(raw["stockByColor"])
	p.StockByVariation = normalizeStockByVariation(raw["stockByVariation"])

	variations := normalizeVariationsByColor(raw["variationsByColor"])
	if len(variations) == 0 {
		variations = deriveVariationsByColor(p.StockByVariation)
	}
	mergeVariationPrices(variations, normalizeVariationPrices(raw["pricesByVariation"]))
	if len(variations) > 0 {
		p.VariationsByColor = variations
	}

	return p
}

func normalizeSizes(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var sizes []string
	for _, v := range list {
		if s := cast.ToString(v); s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// normalizeColors accepts plain strings or {name, hex} objects and drops
// anything it cannot name.
func normalizeColors(raw any) []domain.ProductColor {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var colors []domain.ProductColor
	for _, v := range list {
		switch c := v.(type) {
		case string:
			if c != "" {
				colors = append(colors, domain.ProductColor{Name: c})
			}
		case map[string]any:
			name, ok := c["name"].(string)
			if !ok || name == "" {
				continue
			}
			hex, _ := c["hex"].(string)
			colors = append(colors, domain.ProductColor{Name: name, Hex: hex})
		}
	}
	return colors
}

func normalizeSpecs(raw any) domain.ProductSpecs {
	m, ok := raw.(map[string]any)
	if !ok {
		return domain.ProductSpecs{}
	}
	str := func(key string) string {
		s, _ := m[key].(string)
		return s
	}
	return domain.ProductSpecs{
		Processor: str("processor"),
		Camera:    str("camera"),
		Battery:   str("battery"),
		Display:   str("display"),
	}
}

func normalizeStockByColor(raw any) []domain.ColorStock {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var stock []domain.ColorStock
	for _, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		color, hasColor := m["color"]
		if _, hasQty := m["quantity"]; !hasColor || !hasQty {
			continue
		}
		stock = append(stock, domain.ColorStock{
			Color:    cast.ToString(color),
			Quantity: toQuantity(m["quantity"]),
		})
	}
	return stock
}

func normalizeStockByVariation(raw any) []domain.VariationStock {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var stock []domain.VariationStock
	for _, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		color, hasColor := m["color"]
		storage, hasStorage := m["storage"]
		if _, hasQty := m["quantity"]; !hasColor || !hasStorage || !hasQty {
			continue
		}
		stock = append(stock, domain.VariationStock{
			Color:    cast.ToString(color),
			Storage:  cast.ToString(storage),
			Quantity: toQuantity(m["quantity"]),
		})
	}
	return stock
}

// normalizeVariationsByColor validates the per-color option table. Keys whose
// lists validate to nothing are dropped entirely.
func normalizeVariationsByColor(raw any) map[string][]domain.VariationOption {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	result := make(map[string][]domain.VariationOption)
	for color, v := range m {
		list, ok := v.([]any)
		if !ok {
			continue
		}
		var options []domain.VariationOption
		for _, e := range list {
			em, ok := e.(map[string]any)
			if !ok {
				continue
			}
			storage, ok := em["storage"].(string)
			if !ok || storage == "" {
				continue
			}
			qty, err := cast.ToIntE(em["quantity"])
			if err != nil {
				continue
			}
			option := domain.VariationOption{Storage: storage, Quantity: qty}
			if rawPrice, exists := em["price"]; exists {
				if price, err := cast.ToFloat64E(rawPrice); err == nil && price >= 0 {
					option.Price = &price
				}
			}
			options = append(options, option)
		}
		if len(options) > 0 {
			result[color] = options
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// deriveVariationsByColor rebuilds the per-color table from the flat stock
// list, grouping on color (empty string for colorless variations).
func deriveVariationsByColor(stock []domain.VariationStock) map[string][]domain.VariationOption {
	if len(stock) == 0 {
		return nil
	}
	result := make(map[string][]domain.VariationOption)
	for _, s := range stock {
		result[s.Color] = append(result[s.Color], domain.VariationOption{
			Storage:  s.Storage,
			Quantity: s.Quantity,
		})
	}
	return result
}

func normalizeVariationPrices(raw any) []domain.VariationPrice {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var prices []domain.VariationPrice
	for _, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		color, hasColor := m["color"]
		storage, ok := m["storage"].(string)
		if !hasColor || !ok || storage == "" {
			continue
		}
		price, err := cast.ToFloat64E(m["price"])
		if err != nil || price < 0 {
			continue
		}
		prices = append(prices, domain.VariationPrice{
			Color:   cast.ToString(color),
			Storage: storage,
			Price:   price,
		})
	}
	return prices
}

// mergeVariationPrices overlays per-variation prices onto matching
// color|storage entries. Quantity is never touched; unmatched price rows are
// ignored.
func mergeVariationPrices(variations map[string][]domain.VariationOption, prices []domain.VariationPrice) {
	if len(variations) == 0 || len(prices) == 0 {
		return
	}
	for _, vp := range prices {
		options, ok := variations[vp.Color]
		if !ok {
			continue
		}
		for i := range options {
			if options[i].Storage == vp.Storage {
				price := vp.Price
				options[i].Price = &price
			}
		}
	}
}

// toQuantity coerces a stock quantity, defaulting to 0 on junk values.
func toQuantity(raw any) int {
	qty, err := cast.ToIntE(raw)
	if err != nil {
		return 0
	}
	return qty
}
