package catalog

import "storefront/internal/domain"

// Resolution is the outcome of resolving a color/storage selection against a
// product's stock tables. StockKnown distinguishes a determined quantity
// (including zero, which blocks add-to-cart) from "unspecified", which
// permits it.
type Resolution struct {
	StockKnown    bool
	StockQuantity int
	UnitPrice     float64
	// PriceFromVariation is set when UnitPrice came from a per-variation
	// price rather than the base product price.
	PriceFromVariation bool
}

// InStock reports whether the selection can currently be added to a cart.
// Unknown stock does not block.
func (r Resolution) InStock() bool {
	return !r.StockKnown || r.StockQuantity > 0
}

// Resolve determines stock and unit price for a selection. Sources are
// consulted in a fixed priority order and never blended for the same field:
//
//  1. VariationsByColor entry for the color (empty-string key when no color
//     is selected) containing the selected size
//  2. StockByVariation matching (color, size)
//  3. StockByColor by selected color
//  4. with no colors on the product at all, the colorless StockByColor entry,
//     or the first entry, as the ambient single stock
//
// When nothing matches, stock stays unspecified. The unit price falls back to
// the base product price unless step 1 supplied a variation price.
func Resolve(p *domain.Product, color, size string) Resolution {
	res := Resolution{UnitPrice: p.Price}

	if options, ok := p.VariationsByColor[color]; ok && size != "" {
		for _, option := range options {
			if option.Storage != size {
				continue
			}
			res.StockKnown = true
			res.StockQuantity = option.Quantity
			if option.Price != nil {
				res.UnitPrice = *option.Price
				res.PriceFromVariation = true
			}
			return res
		}
	}

	if size != "" {
		for _, s := range p.StockByVariation {
			if s.Color == color && s.Storage == size {
				res.StockKnown = true
				res.StockQuantity = s.Quantity
				return res
			}
		}
	}

	if color != "" {
		for _, s := range p.StockByColor {
			if s.Color == color {
				res.StockKnown = true
				res.StockQuantity = s.Quantity
				return res
			}
		}
		return res
	}

	if !p.HasColors() && len(p.StockByColor) > 0 {
		for _, s := range p.StockByColor {
			if s.Color == "" {
				res.StockKnown = true
				res.StockQuantity = s.Quantity
				return res
			}
		}
		res.StockKnown = true
		res.StockQuantity = p.StockByColor[0].Quantity
	}

	return res
}

// MaxAddQuantity caps the quantity a caller may add for the selection. A
// determined stock caps exactly (floored at zero is a hard block); unknown
// stock leaves the caller's own limit in place. A positive determined stock
// is never reported below 1.
func MaxAddQuantity(p *domain.Product, color, size string, limit int) int {
	if limit < 1 {
		limit = 1
	}
	res := Resolve(p, color, size)
	if !res.StockKnown {
		return limit
	}
	if res.StockQuantity <= 0 {
		return 0
	}
	if res.StockQuantity < limit {
		return res.StockQuantity
	}
	return limit
}
