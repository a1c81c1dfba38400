package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"storefront/internal/backend"
	"storefront/internal/cart"
	"storefront/internal/checkout"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Errors []string          `json:"errors,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.S().Warnf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondServiceError maps domain and upstream errors onto HTTP statuses.
// Upstream statuses pass through; an unreachable backend reads as 502.
func respondServiceError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	var validationErr *checkout.ValidationError
	var shippingErr *checkout.ShippingError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.As(err, &shippingErr):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  shippingErr.Error(),
			Code:   "invalid_shipping",
			Fields: shippingErr.Fields,
		})
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error:  validationErr.Error(),
			Code:   "cart_invalid",
			Errors: validationErr.Errors,
		})
	case errors.Is(err, backend.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, cart.ErrLineNotFound):
		respondError(w, http.StatusNotFound, "not_found", "cart item not found")
	case errors.Is(err, cart.ErrCartNotFound):
		respondError(w, http.StatusNotFound, "not_found", "cart not found")
	case errors.As(err, &apiErr):
		if apiErr.Temporary() {
			respondError(w, http.StatusBadGateway, "backend_unreachable", apiErr.Message)
			return
		}
		respondError(w, apiErr.Status, "backend_error", apiErr.Message)
	default:
		zap.S().Errorf("unhandled service error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
