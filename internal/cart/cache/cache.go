package cache

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Set(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// Disabled is the no-op cache used when no Redis is configured; every read
// is a miss.
type Disabled struct{}

func (Disabled) Get(context.Context, string) (*domain.Cart, error) { return nil, ErrCacheMiss }
func (Disabled) Set(context.Context, string, *domain.Cart) error   { return nil }
func (Disabled) Delete(context.Context, string) error              { return nil }
