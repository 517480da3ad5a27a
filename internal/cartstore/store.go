package cartstore

import (
	"context"

	"github.com/yankhoury/homeplate/internal/models"
)

// Store keeps each user's cart lines. Whether carts survive a restart is a
// deployment choice: the memory store keeps the original session-only
// semantics, the redis store persists them with a TTL.
type Store interface {
	Load(ctx context.Context, userID string) ([]models.CartItem, error)
	Save(ctx context.Context, userID string, items []models.CartItem) error
	Delete(ctx context.Context, userID string) error
	Close() error
}

func Key(userID string) string {
	return "cart:" + userID
}
