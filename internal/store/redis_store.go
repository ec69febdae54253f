package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart"

// RedisCartStore persists each customer's cart as a JSON blob under a single
// fixed key, the server-side analogue of the browser's local-storage slot.
type RedisCartStore struct {
	client *redis.Client
	notifier
}

func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{client: client}
}

func cartKey(customerID uuid.UUID) string {
	return cartKeyPrefix + ":" + customerID.String()
}

// Load returns the persisted line sequence. Absent or malformed data is
// treated as an empty cart, never an error.
func (s *RedisCartStore) Load(ctx context.Context, customerID uuid.UUID) ([]models.CartLine, error) {

	data, err := s.client.Get(ctx, cartKey(customerID)).Bytes()
	if err != nil {

		if err == redis.Nil {
			return []models.CartLine{}, nil
		}

		return nil, fmt.Errorf("failed to load cart for %s: %w", customerID, err)
	}

	var lines []models.CartLine

	if err := json.Unmarshal(data, &lines); err != nil {
		slog.Warn("Discarding malformed cart data",
			slog.String("customerId", customerID.String()),
			slog.String("error", err.Error()),
		)
		return []models.CartLine{}, nil
	}

	return lines, nil
}

func (s *RedisCartStore) Save(ctx context.Context, customerID uuid.UUID, lines []models.CartLine) error {

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart lines: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(customerID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart for %s: %w", customerID, err)
	}

	s.notify(customerID)

	return nil
}

func (s *RedisCartStore) Clear(ctx context.Context, customerID uuid.UUID) error {

	if err := s.client.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart for %s: %w", customerID, err)
	}

	s.notify(customerID)

	return nil
}

func (s *RedisCartStore) Subscribe() <-chan CartEvent {
	return s.subscribe()
}
