package cartstore

import (
	"context"
	"sync"

	"github.com/yankhoury/homeplate/internal/models"
)

type memoryStore struct {
	mu    sync.RWMutex
	carts map[string][]models.CartItem
}

func NewMemoryStore() Store {
	return &memoryStore{carts: make(map[string][]models.CartItem)}
}

func (m *memoryStore) Load(ctx context.Context, userID string) ([]models.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items, ok := m.carts[userID]
	if !ok {
		return nil, nil
	}

	// callers mutate their copy, never the stored slice
	out := make([]models.CartItem, len(items))
	copy(out, items)

	return out, nil
}

func (m *memoryStore) Save(ctx context.Context, userID string, items []models.CartItem) error {
	stored := make([]models.CartItem, len(items))
	copy(stored, items)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.carts[userID] = stored

	return nil
}

func (m *memoryStore) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, userID)

	return nil
}

func (m *memoryStore) Close() error {
	return nil
}
