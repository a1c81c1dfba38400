// Package checkout gates order placement behind server-side cart
// re-validation and maps server-corrected prices onto the submitted order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/backend"
	"storefront/internal/domain"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// ValidationError carries every message the server raised, so callers can
// surface each one rather than just the first.
type ValidationError struct {
	Errors []string
	Result *backend.ValidationResult
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "please fix cart issues before checkout"
	}
	return strings.Join(e.Errors, "; ")
}

// CartStore is the slice of the cart service checkout needs.
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

// Gateway is the slice of the backend client checkout needs.
type Gateway interface {
	ValidateCheckout(ctx context.Context, items []backend.CheckoutItem) (*backend.ValidationResult, error)
	CreateOrder(ctx context.Context, payload backend.OrderPayload) (*backend.OrderConfirmation, error)
}

type Service struct {
	gateway Gateway
	carts   CartStore
}

func NewService(gateway Gateway, carts CartStore) *Service {
	return &Service{gateway: gateway, carts: carts}
}

// Totals is the order summary. Estimated is set while the figures are
// client-computed fallbacks, before a valid server verdict replaced them.
type Totals struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shippingCost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
	Estimated    bool    `json:"estimated"`
}

const (
	freeShippingThreshold = 500
	flatShippingCost      = 15
	taxRate               = 0.08
)

// ComputeTotals folds the server's figures over the provisional client
// computation. Only a valid verdict is trusted; each missing server field
// keeps its client-side fallback.
func ComputeTotals(cart *domain.Cart, result *backend.ValidationResult) Totals {
	subtotal := cart.TotalPrice()
	totals := Totals{
		Subtotal:  subtotal,
		Tax:       math.Round(subtotal * taxRate),
		Estimated: true,
	}
	if subtotal <= freeShippingThreshold {
		totals.ShippingCost = flatShippingCost
	}
	totals.Total = totals.Subtotal + totals.ShippingCost + totals.Tax

	if result == nil || !result.Valid {
		return totals
	}

	totals.Estimated = false
	if result.Subtotal != nil {
		totals.Subtotal = *result.Subtotal
	}
	if result.ShippingCost != nil {
		totals.ShippingCost = *result.ShippingCost
	}
	if result.Tax != nil {
		totals.Tax = *result.Tax
	}
	if result.Total != nil {
		totals.Total = *result.Total
	} else {
		totals.Total = totals.Subtotal + totals.ShippingCost + totals.Tax
	}
	return totals
}

// Validate re-validates the session's cart against the backend. An invalid
// cart comes back as a *ValidationError carrying every server message; the
// cart itself is left untouched either way.
func (s *Service) Validate(ctx context.Context, sessionID string) (*backend.ValidationResult, *domain.Cart, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, cart, ErrEmptyCart
	}

	result, err := s.gateway.ValidateCheckout(ctx, checkoutItems(cart, nil))
	if err != nil {
		return nil, cart, err
	}
	if !result.Valid {
		return result, cart, &ValidationError{Errors: result.Errors, Result: result}
	}
	return result, cart, nil
}

// PlaceOrder runs the full validate-then-submit sequence. Submitted prices
// are the server's corrected ones where given (never the potentially stale
// client price); the cart is cleared only after the order succeeds.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, shipping backend.OrderShipping) (*backend.OrderConfirmation, error) {
	if fieldErrors := ValidateShipping(shipping); len(fieldErrors) > 0 {
		return nil, &ShippingError{Fields: fieldErrors}
	}

	result, cart, err := s.Validate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	totals := ComputeTotals(cart, result)
	payload := backend.OrderPayload{
		Items:        checkoutItems(cart, result),
		Subtotal:     totals.Subtotal,
		ShippingCost: totals.ShippingCost,
		Tax:          totals.Tax,
		Total:        totals.Total,
		Shipping:     shipping,
	}

	confirmation, err := s.gateway.CreateOrder(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		// The order went through; a stale cart is recoverable.
		zap.S().Warnf("clear cart after order %s: %v", confirmation.OrderID, err)
	}
	return confirmation, nil
}

// checkoutItems flattens cart lines into the wire shape. With a validation
// result present, each line's price is the server's currentPrice for that
// index, falling back to the line's own snapshot price.
func checkoutItems(cart *domain.Cart, result *backend.ValidationResult) []backend.CheckoutItem {
	items := make([]backend.CheckoutItem, 0, len(cart.Lines))
	for i := range cart.Lines {
		line := &cart.Lines[i]
		items = append(items, backend.CheckoutItem{
			ID:            line.Product.ID,
			Quantity:      line.Quantity,
			Price:         result.PriceFor(i, line.Product.Price),
			SelectedColor: line.SelectedColor,
			SelectedSize:  line.SelectedSize,
		})
	}
	return items
}
