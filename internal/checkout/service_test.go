package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/backend"
	"storefront/internal/domain"
)

type mockGateway struct {
	result      *backend.ValidationResult
	validateErr error

	confirmation *backend.OrderConfirmation
	orderErr     error
	gotItems     []backend.CheckoutItem
	gotPayload   *backend.OrderPayload
}

func (m *mockGateway) ValidateCheckout(_ context.Context, items []backend.CheckoutItem) (*backend.ValidationResult, error) {
	m.gotItems = items
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.result, nil
}

func (m *mockGateway) CreateOrder(_ context.Context, payload backend.OrderPayload) (*backend.OrderConfirmation, error) {
	m.gotPayload = &payload
	if m.orderErr != nil {
		return nil, m.orderErr
	}
	return m.confirmation, nil
}

type mockCarts struct {
	cart    *domain.Cart
	getErr  error
	cleared bool
}

func (m *mockCarts) GetCart(context.Context, string) (*domain.Cart, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.cart, nil
}

func (m *mockCarts) ClearCart(context.Context, string) error {
	m.cleared = true
	return nil
}

func twoLineCart() *domain.Cart {
	return &domain.Cart{
		SessionID: "s1",
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "1", Name: "A", Price: 100}, Quantity: 2, SelectedColor: "Black"},
			{Product: domain.Product{ID: "2", Name: "B", Price: 50}, Quantity: 1, SelectedSize: "128GB"},
		},
	}
}

func validShipping() backend.OrderShipping {
	return backend.OrderShipping{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Phone:      "+44 1234 5678",
		Address:    "12 Analytical Way",
		City:       "London",
		PostalCode: "N1 9GU",
		Country:    "UK",
	}
}

func TestValidate_EmptyCart(t *testing.T) {
	sut := NewService(&mockGateway{}, &mockCarts{cart: &domain.Cart{SessionID: "s1"}})

	_, _, err := sut.Validate(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestValidate_SendsCartLines(t *testing.T) {
	gateway := &mockGateway{result: &backend.ValidationResult{Valid: true}}
	sut := NewService(gateway, &mockCarts{cart: twoLineCart()})

	result, cart, err := sut.Validate(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Len(t, cart.Lines, 2)

	require.Len(t, gateway.gotItems, 2)
	assert.Equal(t, backend.CheckoutItem{ID: "1", Quantity: 2, Price: 100, SelectedColor: "Black"}, gateway.gotItems[0])
	assert.Equal(t, backend.CheckoutItem{ID: "2", Quantity: 1, Price: 50, SelectedSize: "128GB"}, gateway.gotItems[1])
}

func TestValidate_InvalidCartSurfacesEveryError(t *testing.T) {
	gateway := &mockGateway{result: &backend.ValidationResult{
		Valid:  false,
		Errors: []string{"A out of stock", "B price changed"},
	}}
	carts := &mockCarts{cart: twoLineCart()}
	sut := NewService(gateway, carts)

	_, _, err := sut.Validate(context.Background(), "s1")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"A out of stock", "B price changed"}, vErr.Errors)
	assert.False(t, carts.cleared, "a failed validation must leave the cart untouched")
}

func TestComputeTotals_ClientFallback(t *testing.T) {
	cart := twoLineCart() // subtotal 250

	totals := ComputeTotals(cart, nil)
	assert.True(t, totals.Estimated)
	assert.Equal(t, 250.0, totals.Subtotal)
	assert.Equal(t, 15.0, totals.ShippingCost) // under the free-shipping threshold
	assert.Equal(t, 20.0, totals.Tax)          // round(250 * 0.08)
	assert.Equal(t, 285.0, totals.Total)
}

func TestComputeTotals_FreeShippingOver500(t *testing.T) {
	cart := &domain.Cart{Lines: []domain.CartLine{
		{Product: domain.Product{ID: "1", Price: 600}, Quantity: 1},
	}}

	totals := ComputeTotals(cart, nil)
	assert.Equal(t, 0.0, totals.ShippingCost)
}

func TestComputeTotals_ServerFiguresWin(t *testing.T) {
	cart := twoLineCart()
	subtotal, shipping, tax, total := 240.0, 10.0, 19.2, 269.2
	result := &backend.ValidationResult{
		Valid:        true,
		Subtotal:     &subtotal,
		ShippingCost: &shipping,
		Tax:          &tax,
		Total:        &total,
	}

	totals := ComputeTotals(cart, result)
	assert.False(t, totals.Estimated)
	assert.Equal(t, 240.0, totals.Subtotal)
	assert.Equal(t, 10.0, totals.ShippingCost)
	assert.Equal(t, 19.2, totals.Tax)
	assert.Equal(t, 269.2, totals.Total)
}

func TestComputeTotals_InvalidResultIgnored(t *testing.T) {
	cart := twoLineCart()
	subtotal := 1.0
	result := &backend.ValidationResult{Valid: false, Subtotal: &subtotal}

	totals := ComputeTotals(cart, result)
	assert.True(t, totals.Estimated)
	assert.Equal(t, 250.0, totals.Subtotal)
}

func TestPlaceOrder_UsesServerCorrectedPrices(t *testing.T) {
	corrected := 90.0
	gateway := &mockGateway{
		result: &backend.ValidationResult{
			Valid: true,
			ValidatedItems: []backend.ValidatedItem{
				{Index: 0, ID: "1", Valid: true, CurrentPrice: &corrected},
				{Index: 1, ID: "2", Valid: true}, // no corrected price
			},
		},
		confirmation: &backend.OrderConfirmation{Success: true, OrderID: "ord-1"},
	}
	carts := &mockCarts{cart: twoLineCart()}
	sut := NewService(gateway, carts)

	confirmation, err := sut.PlaceOrder(context.Background(), "s1", validShipping())
	require.NoError(t, err)
	assert.Equal(t, "ord-1", confirmation.OrderID)

	require.NotNil(t, gateway.gotPayload)
	require.Len(t, gateway.gotPayload.Items, 2)
	assert.Equal(t, 90.0, gateway.gotPayload.Items[0].Price) // server price, not 100
	assert.Equal(t, 50.0, gateway.gotPayload.Items[1].Price) // own snapshot price
	assert.True(t, carts.cleared)
}

func TestPlaceOrder_InvalidCartBlocksSubmission(t *testing.T) {
	gateway := &mockGateway{result: &backend.ValidationResult{
		Valid:  false,
		Errors: []string{"A out of stock"},
	}}
	carts := &mockCarts{cart: twoLineCart()}
	sut := NewService(gateway, carts)

	_, err := sut.PlaceOrder(context.Background(), "s1", validShipping())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Nil(t, gateway.gotPayload, "order must not be submitted")
	assert.False(t, carts.cleared)
}

func TestPlaceOrder_SubmitErrorKeepsCart(t *testing.T) {
	gateway := &mockGateway{
		result:   &backend.ValidationResult{Valid: true},
		orderErr: fmt.Errorf("upstream down"),
	}
	carts := &mockCarts{cart: twoLineCart()}
	sut := NewService(gateway, carts)

	_, err := sut.PlaceOrder(context.Background(), "s1", validShipping())
	require.ErrorContains(t, err, "upstream down")
	assert.False(t, carts.cleared)
}

func TestPlaceOrder_RejectsBadShippingForm(t *testing.T) {
	gateway := &mockGateway{}
	sut := NewService(gateway, &mockCarts{cart: twoLineCart()})

	shipping := validShipping()
	shipping.Email = "not-an-email"
	shipping.City = ""

	_, err := sut.PlaceOrder(context.Background(), "s1", shipping)

	var sErr *ShippingError
	require.ErrorAs(t, err, &sErr)
	assert.Contains(t, sErr.Fields, "email")
	assert.Contains(t, sErr.Fields, "city")
	assert.Nil(t, gateway.gotItems, "validation call must not happen on a bad form")
}

func TestValidateShipping_AllRules(t *testing.T) {
	errs := ValidateShipping(backend.OrderShipping{})
	for _, field := range []string{"firstName", "lastName", "email", "phone", "address", "city", "postalCode", "country"} {
		assert.Contains(t, errs, field)
	}

	errs = ValidateShipping(validShipping())
	assert.Empty(t, errs)

	shipping := validShipping()
	shipping.Phone = "abc"
	errs = ValidateShipping(shipping)
	assert.Contains(t, errs, "phone")

	shipping = validShipping()
	shipping.PostalCode = "ab"
	errs = ValidateShipping(shipping)
	assert.Contains(t, errs, "postalCode")
}
