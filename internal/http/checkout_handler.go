package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/internal/backend"
	"storefront/internal/checkout"
	"storefront/internal/domain"
)

// CheckoutService is the slice of the checkout service these routes need.
type CheckoutService interface {
	Validate(ctx context.Context, sessionID string) (*backend.ValidationResult, *domain.Cart, error)
	PlaceOrder(ctx context.Context, sessionID string, shipping backend.OrderShipping) (*backend.OrderConfirmation, error)
}

type CheckoutHandler struct {
	checkouts CheckoutService
	timeout   time.Duration
}

func NewCheckoutHandler(checkouts CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts, timeout: timeout}
}

type ValidateResponse struct {
	Result *backend.ValidationResult `json:"result"`
	Totals checkout.Totals           `json:"totals"`
}

// Validate re-checks the session's cart against the backend and returns the
// verdict with reconciled totals. An invalid cart is a 409 carrying every
// server message, which is what keeps the client off the checkout page.
func (h *CheckoutHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, cart, err := h.checkouts.Validate(ctx, sessionIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ValidateResponse{
		Result: result,
		Totals: checkout.ComputeTotals(cart, result),
	})
}

type PlaceOrderRequestDTO struct {
	Shipping backend.OrderShipping `json:"shipping"`
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	confirmation, err := h.checkouts.PlaceOrder(ctx, sessionIDFromContext(r.Context()), req.Shipping)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, confirmation)
}
