package backend

import (
	"context"
	"net/url"

	"storefront/internal/domain"
)

type CategoryInput struct {
	Name  *string `json:"name,omitempty"`
	Slug  *string `json:"slug,omitempty"`
	Order *int    `json:"order,omitempty"`
}

// ListCategories is public; a non-array response degrades to an empty list.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.get(ctx, "/api/categories", nil, "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var category domain.Category
	if err := c.get(ctx, "/api/categories/"+url.PathEscape(id), nil, "", &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, input CategoryInput) (*domain.Category, error) {
	var category domain.Category
	if err := c.post(ctx, "/api/categories", token, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token, id string, input CategoryInput) (*domain.Category, error) {
	var category domain.Category
	if err := c.put(ctx, "/api/categories/"+url.PathEscape(id), token, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.delete(ctx, "/api/categories/"+url.PathEscape(id), token)
}
