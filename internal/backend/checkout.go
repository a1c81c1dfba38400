package backend

import "context"

// CheckoutItem is one cart line as submitted for validation or ordering.
type CheckoutItem struct {
	ID            string  `json:"id"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	SelectedColor string  `json:"selectedColor"`
	SelectedSize  string  `json:"selectedSize"`
}

// ValidatedItem is the server's per-line verdict. CurrentPrice, when present,
// is authoritative and replaces the submitted price at order time.
type ValidatedItem struct {
	Index             int      `json:"index"`
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Valid             bool     `json:"valid"`
	Error             string   `json:"error,omitempty"`
	CurrentPrice      *float64 `json:"currentPrice,omitempty"`
	Quantity          *int     `json:"quantity,omitempty"`
	RequestedQuantity *int     `json:"requestedQuantity,omitempty"`
	AvailableQuantity *int     `json:"availableQuantity,omitempty"`
	SelectedColor     string   `json:"selectedColor,omitempty"`
	SelectedSize      string   `json:"selectedSize,omitempty"`
}

// ValidationResult is the ephemeral validated-cart snapshot. It gates the
// move to checkout and supplies the server-computed totals.
type ValidationResult struct {
	Valid          bool            `json:"valid"`
	Errors         []string        `json:"errors,omitempty"`
	ValidatedItems []ValidatedItem `json:"validatedItems"`
	Subtotal       *float64        `json:"subtotal,omitempty"`
	ShippingCost   *float64        `json:"shippingCost,omitempty"`
	Tax            *float64        `json:"tax,omitempty"`
	Total          *float64        `json:"total,omitempty"`
}

// PriceFor returns the server-corrected price for the item at index, or the
// given fallback when the server did not supply one.
func (v *ValidationResult) PriceFor(index int, fallback float64) float64 {
	if v == nil || index < 0 || index >= len(v.ValidatedItems) {
		return fallback
	}
	if price := v.ValidatedItems[index].CurrentPrice; price != nil {
		return *price
	}
	return fallback
}

// ValidateCheckout asks the backend to re-validate the cart. The server is
// authoritative over price and stock.
func (c *Client) ValidateCheckout(ctx context.Context, items []CheckoutItem) (*ValidationResult, error) {
	body := map[string]any{"items": items}
	var result ValidationResult
	if err := c.post(ctx, "/api/checkout/validate", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
