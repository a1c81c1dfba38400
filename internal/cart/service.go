// Package cart holds the cart store: lines keyed by product, color and
// storage selection, merged on add, persisted per session.
package cart

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"storefront/internal/cart/cache"
	"storefront/internal/domain"
)

type Service struct {
	repo  CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // prevents cache stampede on the same session
}

func NewService(repo CartRepository, cartCache cache.CartCache) *Service {
	return &Service{
		repo:  repo,
		cache: cartCache,
	}
}

// GetCart returns the session's cart, or a fresh empty cart for an unknown
// session. Concurrent misses for the same session are collapsed.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		cached, err := s.cache.Get(ctx, sessionID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			zap.S().Warnf("cart cache get error: %v", err) // degraded, not fatal
		}

		cart, err := s.repo.GetCart(ctx, sessionID)
		if errors.Is(err, ErrCartNotFound) {
			return &domain.Cart{
				SessionID: sessionID,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), sessionID, cart); err != nil {
				zap.S().Warnf("cart cache set error: %v", err)
			}
		}()

		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// AddItem puts a product into the cart. A line with the same identity key
// (product, color, size) absorbs the quantity and keeps its original price;
// otherwise a new line snapshots the product, priced at variationPrice when
// one applies, else the base product price.
func (s *Service) AddItem(ctx context.Context, sessionID string, product domain.Product, quantity int, size, color string, variationPrice *float64) (*domain.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	lineID := domain.LineID(product.ID, color, size)
	if i := cart.FindLine(lineID); i >= 0 {
		cart.Lines[i].Quantity += quantity
	} else {
		line := domain.CartLine{
			Product:       product,
			Quantity:      quantity,
			SelectedColor: color,
			SelectedSize:  size,
			AddedAt:       time.Now(),
		}
		if variationPrice != nil {
			line.Product.Price = *variationPrice
		}
		cart.Lines = append(cart.Lines, line)
	}

	return s.save(ctx, cart)
}

// UpdateQuantity sets a line's quantity, clamped at zero; a line reaching
// zero is removed. Unknown lines are an error.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.FindLine(lineID)
	if i < 0 {
		return nil, ErrLineNotFound
	}

	if quantity < 0 {
		quantity = 0
	}
	if quantity == 0 {
		cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
	} else {
		cart.Lines[i].Quantity = quantity
	}

	return s.save(ctx, cart)
}

// RemoveItem deletes the line with the exact composite key; removing an
// absent line leaves the cart untouched.
func (s *Service) RemoveItem(ctx context.Context, sessionID, lineID string) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.FindLine(lineID)
	if i < 0 {
		return cart, nil
	}
	cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)

	return s.save(ctx, cart)
}

// ClearCart drops every line; used after a successful order.
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	err := s.repo.DeleteCart(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrCartNotFound) {
		return err
	}
	s.invalidate(sessionID)
	return nil
}

func (s *Service) save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		return nil, err
	}
	s.invalidate(cart.SessionID)
	return cart, nil
}

func (s *Service) invalidate(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		zap.S().Warnf("cart cache invalidate error: %v", err)
	}
}
