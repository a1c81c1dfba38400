package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"storefront/internal/backend"
	"storefront/internal/domain"
)

// AdminGateway is the authenticated slice of the backend client: login plus
// the catalog, category, order and upload management calls.
type AdminGateway interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
	Me(ctx context.Context, token string) (*backend.Admin, error)

	CreateProduct(ctx context.Context, token string, input backend.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, token, id string, input backend.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error

	CreateCategory(ctx context.Context, token string, input backend.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, token, id string, input backend.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, token, id string) error

	ListOrders(ctx context.Context, token string, query backend.OrdersQuery) (*backend.OrderList, error)
	GetOrder(ctx context.Context, token, orderID string) (*backend.Order, error)
	UpdateOrderStatus(ctx context.Context, token, orderID string, status backend.OrderStatus) (*backend.StatusUpdate, error)

	UploadProductImage(ctx context.Context, token, filename, contentType string, file io.Reader, size int64) (string, error)
}

type AdminHandler struct {
	gateway AdminGateway
	timeout time.Duration
}

func NewAdminHandler(gateway AdminGateway, timeout time.Duration) *AdminHandler {
	return &AdminHandler{gateway: gateway, timeout: timeout}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_credentials", "email and password are required")
		return
	}

	result, err := h.gateway.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	admin, err := h.gateway.Me(ctx, token)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, admin)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	var input backend.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.gateway.CreateProduct(ctx, token, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	var input backend.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.gateway.UpdateProduct(ctx, token, chi.URLParam(r, "id"), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	if err := h.gateway.DeleteProduct(ctx, token, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	var input backend.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	category, err := h.gateway.CreateCategory(ctx, token, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	var input backend.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	category, err := h.gateway.UpdateCategory(ctx, token, chi.URLParam(r, "id"), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	if err := h.gateway.DeleteCategory(ctx, token, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	q := r.URL.Query()
	query := backend.OrdersQuery{
		Page:   cast.ToInt(q.Get("page")),
		Limit:  cast.ToInt(q.Get("limit")),
		Status: q.Get("status"),
		Search: q.Get("search"),
	}

	list, err := h.gateway.ListOrders(ctx, token, query)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	order, err := h.gateway.GetOrder(ctx, token, chi.URLParam(r, "orderID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status := backend.OrderStatus(req.Status)
	if !status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	update, err := h.gateway.UpdateOrderStatus(ctx, token, chi.URLParam(r, "orderID"), status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, update)
}

// UploadImage accepts a multipart form with a single "image" part and relays
// it to the backend upload endpoint.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	if err := r.ParseMultipartForm(backend.MaxImageSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := backend.ValidateImage(contentType, header.Size); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_image", err.Error())
		return
	}

	url, err := h.gateway.UploadProductImage(ctx, token, header.Filename, contentType, file, header.Size)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}
