package cartstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yankhoury/homeplate/internal/models"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (r *redisStore) Load(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := r.client.Get(ctx, Key(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get cart for user %s from redis: %w", userID, err)
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart for user %s: %w", userID, err)
	}

	return items, nil
}

func (r *redisStore) Save(ctx context.Context, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for user %s: %w", userID, err)
	}

	if err := r.client.Set(ctx, Key(userID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cart for user %s in redis: %w", userID, err)
	}

	return nil
}

func (r *redisStore) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, Key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart for user %s from redis: %w", userID, err)
	}

	return nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
