package domain

// ProductSpecs is the four-field spec block shown on the detail page.
// Normalization guarantees every field is a defined string.
type ProductSpecs struct {
	Processor string `json:"processor"`
	Camera    string `json:"camera"`
	Battery   string `json:"battery"`
	Display   string `json:"display"`
}

type ProductColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// ColorStock is per-color stock with no storage dimension.
type ColorStock struct {
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

// VariationStock is the flat (color, storage) stock table.
type VariationStock struct {
	Color    string `json:"color"`
	Storage  string `json:"storage"`
	Quantity int    `json:"quantity"`
}

// VariationOption is one storage option under a color key. Price is nil when
// the variation has no price of its own and the base product price applies.
type VariationOption struct {
	Storage  string   `json:"storage"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

// VariationPrice is the admin-side per-variation price row. It never survives
// normalization as its own field; it is merged into VariationsByColor.
type VariationPrice struct {
	Color   string  `json:"color"`
	Storage string  `json:"storage"`
	Price   float64 `json:"price"`
}

// Product is the canonical normalized product. The three stock tables are
// redundant views of the same facts: VariationsByColor is authoritative when
// present, StockByVariation is its flat equivalent, StockByColor the coarsest
// fallback. An absent VariationsByColor is nil, never an empty map; consumers
// key the storage-selector decision off that.
type Product struct {
	ID               string                       `json:"id"`
	Name             string                       `json:"name"`
	Price            float64                      `json:"price"`
	Image            string                       `json:"image"`
	Category         string                       `json:"category"`
	Description      string                       `json:"description"`
	Sizes            []string                     `json:"sizes,omitempty"`
	Colors           []ProductColor               `json:"colors,omitempty"`
	Specs            ProductSpecs                 `json:"specs"`
	StockByColor     []ColorStock                 `json:"stockByColor,omitempty"`
	StockByVariation []VariationStock             `json:"stockByVariation,omitempty"`
	VariationsByColor map[string][]VariationOption `json:"variationsByColor,omitempty"`
}

// HasColors reports whether the product offers a color choice at all.
func (p *Product) HasColors() bool {
	return len(p.Colors) > 0
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Order int    `json:"order"`
}
