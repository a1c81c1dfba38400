package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// lineIDParam extracts the cart line ID from the URL. Line IDs embed "|"
// separators, which clients percent-encode, so the raw segment is unescaped.
func lineIDParam(r *http.Request) string {
	raw := chi.URLParam(r, "lineID")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// maxLineQuantity caps a single cart line regardless of reported stock.
const maxLineQuantity = 10

// CartService is the slice of the cart service the cart routes need.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID string, product domain.Product, quantity int, size, color string, variationPrice *float64) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID, lineID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type CartHandler struct {
	carts    CartService
	products ProductSource
	timeout  time.Duration
}

func NewCartHandler(carts CartService, products ProductSource, timeout time.Duration) *CartHandler {
	return &CartHandler{carts: carts, products: products, timeout: timeout}
}

type AddItemRequestDTO struct {
	ProductID     string `json:"productId"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cart, err := h.carts.GetCart(ctx, sessionIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// AddItem re-fetches the product so the stored line carries current data, and
// resolves the selection server-side: a selection the stock tables rule out
// is rejected, and the requested quantity is clamped to what they allow.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId is required")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := h.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	res := catalog.Resolve(product, req.SelectedColor, req.SelectedSize)
	if !res.InStock() {
		respondError(w, http.StatusConflict, "out_of_stock", "selected variation is out of stock")
		return
	}
	if max := catalog.MaxAddQuantity(product, req.SelectedColor, req.SelectedSize, maxLineQuantity); req.Quantity > max {
		req.Quantity = max
	}

	var variationPrice *float64
	if res.PriceFromVariation {
		variationPrice = &res.UnitPrice
	}

	cart, err := h.carts.AddItem(ctx, sessionIDFromContext(r.Context()), *product, req.Quantity, req.SelectedSize, req.SelectedColor, variationPrice)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	lineID := lineIDParam(r)
	if lineID == "" {
		respondError(w, http.StatusBadRequest, "invalid_line_id", "line id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > maxLineQuantity {
		req.Quantity = maxLineQuantity
	}

	cart, err := h.carts.UpdateQuantity(ctx, sessionIDFromContext(r.Context()), lineID, req.Quantity)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	lineID := lineIDParam(r)
	if lineID == "" {
		respondError(w, http.StatusBadRequest, "invalid_line_id", "line id is required")
		return
	}

	cart, err := h.carts.RemoveItem(ctx, sessionIDFromContext(r.Context()), lineID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.carts.ClearCart(ctx, sessionIDFromContext(r.Context())); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
