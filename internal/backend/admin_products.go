package backend

import (
	"context"
	"net/url"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// ProductInput is the admin create/update payload. Pointer fields are
// omitted when nil so partial updates only touch what the admin changed.
type ProductInput struct {
	ID                string                  `json:"id,omitempty"`
	Name              *string                 `json:"name,omitempty"`
	Price             *float64                `json:"price,omitempty"`
	Image             *string                 `json:"image,omitempty"`
	Category          *string                 `json:"category,omitempty"`
	Description       *string                 `json:"description,omitempty"`
	Colors            []domain.ProductColor   `json:"colors,omitempty"`
	Sizes             []string                `json:"sizes,omitempty"`
	Specs             *domain.ProductSpecs    `json:"specs,omitempty"`
	StockByColor      []domain.ColorStock     `json:"stockByColor,omitempty"`
	StockByVariation  []domain.VariationStock `json:"stockByVariation,omitempty"`
	PricesByVariation []domain.VariationPrice `json:"pricesByVariation,omitempty"`
}

// CreateProduct creates a product (admin, bearer token required) and returns
// the normalized result.
func (c *Client) CreateProduct(ctx context.Context, token string, input ProductInput) (*domain.Product, error) {
	var raw map[string]any
	if err := c.post(ctx, "/api/products", token, input, &raw); err != nil {
		return nil, err
	}
	p := catalog.Normalize(raw)
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, input ProductInput) (*domain.Product, error) {
	var raw map[string]any
	if err := c.put(ctx, "/api/products/"+url.PathEscape(id), token, input, &raw); err != nil {
		return nil, err
	}
	p := catalog.Normalize(raw)
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.delete(ctx, "/api/products/"+url.PathEscape(id), token)
}
