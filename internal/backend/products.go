package backend

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type Pagination struct {
	Page          int    `json:"page"`
	Limit         int    `json:"limit"`
	Total         int    `json:"total"`
	TotalPages    int    `json:"totalPages"`
	RecordsOnPage int    `json:"recordsOnPage"`
	HasNext       bool   `json:"hasNext"`
	HasPrev       bool   `json:"hasPrev"`
	Summary       string `json:"summary"`
}

type ProductList struct {
	Data       []domain.Product `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

type ProductQuery struct {
	ID       string
	Category string
	Search   string
	Q        string
	Page     int
	Limit    int
}

func (q ProductQuery) values() url.Values {
	params := url.Values{}
	set := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	set("id", q.ID)
	set("category", q.Category)
	set("search", q.Search)
	set("q", q.Q)
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params
}

// ListProducts fetches a product page and normalizes every record.
func (c *Client) ListProducts(ctx context.Context, query ProductQuery) (*ProductList, error) {
	var payload struct {
		Data       []map[string]any `json:"data"`
		Pagination Pagination       `json:"pagination"`
	}
	if err := c.get(ctx, "/api/products", query.values(), "", &payload); err != nil {
		return nil, err
	}

	list := &ProductList{
		Data:       make([]domain.Product, 0, len(payload.Data)),
		Pagination: payload.Pagination,
	}
	for _, raw := range payload.Data {
		list.Data = append(list.Data, catalog.Normalize(raw))
	}
	return list, nil
}

// GetProductByID fetches a single product via GET /api/products?id=. The
// backend has answered with three shapes over time: a {data: [...]} list, a
// wrapped {data: {...}} single, and a bare product at the root; all three are
// accepted. Returns ErrProductNotFound when the response holds no product.
func (c *Client) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	params := url.Values{}
	params.Set("id", id)
	params.Set("limit", "1")

	var payload map[string]any
	if err := c.get(ctx, "/api/products", params, "", &payload); err != nil {
		return nil, err
	}

	raw := extractProductRecord(payload)
	if raw == nil {
		return nil, ErrProductNotFound
	}
	p := catalog.Normalize(raw)
	return &p, nil
}

func extractProductRecord(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	switch data := payload["data"].(type) {
	case []any:
		if len(data) > 0 {
			if m, ok := data[0].(map[string]any); ok && isProductLike(m) {
				return m
			}
		}
		return nil
	case map[string]any:
		if isProductLike(data) {
			return data
		}
		return nil
	}
	if isProductLike(payload) {
		return payload
	}
	return nil
}

func isProductLike(m map[string]any) bool {
	_, hasID := m["id"]
	_, hasName := m["name"]
	_, hasPrice := m["price"]
	return hasID && hasName && hasPrice
}
