package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"storefront/internal/backend"
	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// ProductSource is the slice of the backend client the catalog routes need.
type ProductSource interface {
	ListProducts(ctx context.Context, query backend.ProductQuery) (*backend.ProductList, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type ProductHandler struct {
	products ProductSource
	timeout  time.Duration
}

func NewProductHandler(products ProductSource, timeout time.Duration) *ProductHandler {
	return &ProductHandler{products: products, timeout: timeout}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	query := backend.ProductQuery{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Q:        q.Get("q"),
		Page:     cast.ToInt(q.Get("page")),
		Limit:    cast.ToInt(q.Get("limit")),
	}

	list, err := h.products.ListProducts(ctx, query)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	product, err := h.products.GetProductByID(ctx, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

type AvailabilityResponse struct {
	ProductID     string  `json:"productId"`
	SelectedColor string  `json:"selectedColor,omitempty"`
	SelectedSize  string  `json:"selectedSize,omitempty"`
	InStock       bool    `json:"inStock"`
	StockKnown    bool    `json:"stockKnown"`
	StockQuantity int     `json:"stockQuantity"`
	UnitPrice     float64 `json:"unitPrice"`
	MaxQuantity   int     `json:"maxQuantity"`
}

// Availability resolves a color/size selection for a product: effective unit
// price, stock verdict, and the largest quantity a single add may request.
func (h *ProductHandler) Availability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	color := r.URL.Query().Get("color")
	size := r.URL.Query().Get("size")

	product, err := h.products.GetProductByID(ctx, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	res := catalog.Resolve(product, color, size)
	respondJSON(w, http.StatusOK, AvailabilityResponse{
		ProductID:     product.ID,
		SelectedColor: color,
		SelectedSize:  size,
		InStock:       res.InStock(),
		StockKnown:    res.StockKnown,
		StockQuantity: res.StockQuantity,
		UnitPrice:     res.UnitPrice,
		MaxQuantity:   catalog.MaxAddQuantity(product, color, size, maxLineQuantity),
	})
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.products.ListCategories(ctx)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}
