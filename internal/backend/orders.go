package backend

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

type OrderShipping struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type OrderPayload struct {
	Items        []CheckoutItem `json:"items"`
	Subtotal     float64        `json:"subtotal"`
	ShippingCost float64        `json:"shippingCost"`
	Tax          float64        `json:"tax"`
	Total        float64        `json:"total"`
	Shipping     OrderShipping  `json:"shipping"`
}

type OrderConfirmation struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message,omitempty"`
}

// CreateOrder places the order. The backend validates again and decrements
// stock; a failed validation surfaces as an *APIError.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (*OrderConfirmation, error) {
	var confirmation OrderConfirmation
	if err := c.post(ctx, "/api/orders", "", payload, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

type OrderStatus string

const (
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type OrderLine struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	SelectedColor string  `json:"selectedColor,omitempty"`
	SelectedSize  string  `json:"selectedSize,omitempty"`
}

type Order struct {
	OrderID      string        `json:"orderId"`
	Shipping     OrderShipping `json:"shipping"`
	Items        []OrderLine   `json:"items"`
	Subtotal     float64       `json:"subtotal"`
	ShippingCost float64       `json:"shippingCost"`
	Tax          float64       `json:"tax"`
	Total        float64       `json:"total"`
	Status       OrderStatus   `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type OrderList struct {
	Data       []Order    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type OrdersQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// ListOrders is the admin order table (bearer token required).
func (c *Client) ListOrders(ctx context.Context, token string, query OrdersQuery) (*OrderList, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Status != "" {
		params.Set("status", query.Status)
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}

	var list OrderList
	if err := c.get(ctx, "/api/admin/orders", params, token, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*Order, error) {
	var order Order
	if err := c.get(ctx, "/api/admin/orders/"+url.PathEscape(orderID), nil, token, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

type StatusUpdate struct {
	Success   bool   `json:"success"`
	OrderID   string `json:"orderId"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID string, status OrderStatus) (*StatusUpdate, error) {
	body := map[string]string{"status": string(status)}
	var update StatusUpdate
	path := "/api/admin/orders/" + url.PathEscape(orderID) + "/status"
	if err := c.put(ctx, path, token, body, &update); err != nil {
		return nil, err
	}
	return &update, nil
}
