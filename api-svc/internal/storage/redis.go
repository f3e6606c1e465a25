package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"foodmarket/api-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisOrderCache keeps the line items of tracked orders so polling clients
// only pay for the header lookup in Postgres.
type RedisOrderCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisOrderCache(client *redis.Client, ttl time.Duration) *RedisOrderCache {
	return &RedisOrderCache{Client: client, TTL: ttl}
}

func (c *RedisOrderCache) key(orderID int) string {
	return "order:" + strconv.Itoa(orderID) + ":items"
}

// GetItems reports a miss as (nil, nil).
func (c *RedisOrderCache) GetItems(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	payload, err := c.Client.Get(ctx, c.key(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []domain.OrderItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RedisOrderCache) SetItems(ctx context.Context, orderID int, items []domain.OrderItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.key(orderID), payload, c.TTL).Err()
}
