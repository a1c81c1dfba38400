package cart

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain"
)

// MemoryRepository keeps carts in a mutex-guarded map. Used for local
// development and tests; carts do not survive a restart.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[string]*domain.Cart)}
}

func (m *MemoryRepository) GetCart(_ context.Context, sessionID string) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cart, ok := m.carts[sessionID]
	if !ok {
		return nil, ErrCartNotFound
	}
	copied := *cart
	copied.Lines = append([]domain.CartLine(nil), cart.Lines...)
	return &copied, nil
}

func (m *MemoryRepository) UpsertCart(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	copied := *cart
	copied.Lines = append([]domain.CartLine(nil), cart.Lines...)
	m.carts[cart.SessionID] = &copied
	return nil
}

func (m *MemoryRepository) DeleteCart(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.carts[sessionID]; !ok {
		return ErrCartNotFound
	}
	delete(m.carts, sessionID)
	return nil
}
