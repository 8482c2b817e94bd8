package redisx

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/order-cache-api/internal/orders"
	"github.com/redis/go-redis/v9"
)

// OrderStore keeps serialized orders keyed by order_id.
type OrderStore struct{ Redis *redis.Client }

func (s *OrderStore) Set(ctx context.Context, orderID int64, value []byte) error {
	if err := s.Redis.Set(ctx, OrderKey(orderID), string(value), 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %d: %v", orders.ErrBackendUnavailable, orderID, err)
	}
	return nil
}

func (s *OrderStore) Get(ctx context.Context, orderID int64) ([]byte, bool, error) {
	v, err := s.Redis.Get(ctx, OrderKey(orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: redis get %d: %v", orders.ErrBackendUnavailable, orderID, err)
	}
	return []byte(v), true, nil
}

func (s *OrderStore) Ping(ctx context.Context) error {
	if err := s.Redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping: %v", orders.ErrBackendUnavailable, err)
	}
	return nil
}
