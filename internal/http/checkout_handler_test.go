package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/backend"
	"storefront/internal/checkout"
	"storefront/internal/domain"
)

type checkoutServiceMock struct {
	result       *backend.ValidationResult
	cart         *domain.Cart
	confirmation *backend.OrderConfirmation
	err          error

	gotSessionID string
	gotShipping  backend.OrderShipping
}

func (m *checkoutServiceMock) Validate(_ context.Context, sessionID string) (*backend.ValidationResult, *domain.Cart, error) {
	m.gotSessionID = sessionID
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.result, m.cart, nil
}

func (m *checkoutServiceMock) PlaceOrder(_ context.Context, sessionID string, shipping backend.OrderShipping) (*backend.OrderConfirmation, error) {
	m.gotSessionID = sessionID
	m.gotShipping = shipping
	if m.err != nil {
		return nil, m.err
	}
	return m.confirmation, nil
}

func newCheckoutRouter(checkouts *checkoutServiceMock) http.Handler {
	cartHandler := NewCartHandler(&cartServiceMock{}, &productSourceMock{}, 5*time.Second)
	productHandler := NewProductHandler(&productSourceMock{}, 5*time.Second)
	checkoutHandler := NewCheckoutHandler(checkouts, 5*time.Second)
	adminHandler := NewAdminHandler(&adminGatewayMock{}, 5*time.Second)
	return NewRouter(productHandler, cartHandler, checkoutHandler, adminHandler, 10*time.Second)
}

func TestValidateCheckout_ValidCartWithTotals(t *testing.T) {
	checkouts := &checkoutServiceMock{
		result: &backend.ValidationResult{Valid: true},
		cart: &domain.Cart{Lines: []domain.CartLine{
			{Product: domain.Product{ID: "1", Price: 100}, Quantity: 2},
		}},
	}
	router := newCheckoutRouter(checkouts)

	request := httptest.NewRequest("POST", "/api/v1/checkout/validate", nil)
	request.Header.Set("X-Session-ID", "s-99")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "s-99", checkouts.gotSessionID)

	var resp ValidateResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.True(t, resp.Result.Valid)
	assert.Equal(t, 200.0, resp.Totals.Subtotal)
	assert.Equal(t, 15.0, resp.Totals.ShippingCost)
	assert.False(t, resp.Totals.Estimated, "a valid verdict makes the totals authoritative")
}

func TestValidateCheckout_InvalidCartReturns409WithEveryMessage(t *testing.T) {
	checkouts := &checkoutServiceMock{
		err: &checkout.ValidationError{Errors: []string{"Phone out of stock", "Case price changed"}},
	}
	router := newCheckoutRouter(checkouts)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/v1/checkout/validate", nil))

	assert.Equal(t, http.StatusConflict, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "cart_invalid", resp.Code)
	assert.Equal(t, []string{"Phone out of stock", "Case price changed"}, resp.Errors)
}

func TestValidateCheckout_EmptyCart(t *testing.T) {
	router := newCheckoutRouter(&checkoutServiceMock{err: checkout.ErrEmptyCart})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/v1/checkout/validate", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPlaceOrder_Success(t *testing.T) {
	checkouts := &checkoutServiceMock{
		confirmation: &backend.OrderConfirmation{Success: true, OrderID: "ord-7"},
	}
	router := newCheckoutRouter(checkouts)

	body, _ := json.Marshal(PlaceOrderRequestDTO{Shipping: backend.OrderShipping{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Phone: "+44 1234 5678", Address: "12 Analytical Way",
		City: "London", PostalCode: "N1 9GU", Country: "UK",
	}})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/v1/checkout/", bytes.NewReader(body)))

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "Ada", checkouts.gotShipping.FirstName)

	var confirmation backend.OrderConfirmation
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&confirmation))
	assert.Equal(t, "ord-7", confirmation.OrderID)
}

func TestPlaceOrder_ShippingErrorsReturnFields(t *testing.T) {
	checkouts := &checkoutServiceMock{
		err: &checkout.ShippingError{Fields: map[string]string{"email": "please enter a valid email address"}},
	}
	router := newCheckoutRouter(checkouts)

	body, _ := json.Marshal(PlaceOrderRequestDTO{})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/v1/checkout/", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "invalid_shipping", resp.Code)
	assert.Contains(t, resp.Fields, "email")
}

type adminGatewayMock struct {
	loginResult *backend.LoginResult
	admin       *backend.Admin
	product     *domain.Product
	category    *domain.Category
	orders      *backend.OrderList
	order       *backend.Order
	update      *backend.StatusUpdate
	uploadURL   string
	err         error

	gotStatus backend.OrderStatus
}

func (m *adminGatewayMock) Login(context.Context, string, string) (*backend.LoginResult, error) {
	return m.loginResult, m.err
}

func (m *adminGatewayMock) Me(context.Context, string) (*backend.Admin, error) {
	return m.admin, m.err
}

func (m *adminGatewayMock) CreateProduct(context.Context, string, backend.ProductInput) (*domain.Product, error) {
	return m.product, m.err
}

func (m *adminGatewayMock) UpdateProduct(context.Context, string, string, backend.ProductInput) (*domain.Product, error) {
	return m.product, m.err
}

func (m *adminGatewayMock) DeleteProduct(context.Context, string, string) error {
	return m.err
}

func (m *adminGatewayMock) CreateCategory(context.Context, string, backend.CategoryInput) (*domain.Category, error) {
	return m.category, m.err
}

func (m *adminGatewayMock) UpdateCategory(context.Context, string, string, backend.CategoryInput) (*domain.Category, error) {
	return m.category, m.err
}

func (m *adminGatewayMock) DeleteCategory(context.Context, string, string) error {
	return m.err
}

func (m *adminGatewayMock) ListOrders(context.Context, string, backend.OrdersQuery) (*backend.OrderList, error) {
	return m.orders, m.err
}

func (m *adminGatewayMock) GetOrder(context.Context, string, string) (*backend.Order, error) {
	return m.order, m.err
}

func (m *adminGatewayMock) UpdateOrderStatus(_ context.Context, _, _ string, status backend.OrderStatus) (*backend.StatusUpdate, error) {
	m.gotStatus = status
	return m.update, m.err
}

func (m *adminGatewayMock) UploadProductImage(context.Context, string, string, string, io.Reader, int64) (string, error) {
	return m.uploadURL, m.err
}
