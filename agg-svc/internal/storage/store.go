package storage

import (
	"context"
	"fmt"
	"strconv"

	"foodmarket/agg-svc/internal/domain"
	"foodmarket/pkg/orderstats"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// RecordOrderCreated bumps the day's order count, the per-item quantity
// leaderboards and the status tally in one MULTI/EXEC.
func (s *Store) RecordOrderCreated(ctx context.Context, msg domain.OrderMessage) error {
	day := msg.Day()
	ordersKey := orderstats.DailyOrdersKey(day)
	itemsKey := orderstats.DailyItemsKey(day)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, ordersKey)
		pipe.Expire(ctx, ordersKey, orderstats.DailyRetention)

		for _, item := range msg.Items {
			member := strconv.Itoa(item.MenuItemID)
			qty := float64(item.Quantity)
			pipe.ZIncrBy(ctx, itemsKey, qty, member)
			pipe.ZIncrBy(ctx, orderstats.AllTimeItemsKey, qty, member)
		}
		if len(msg.Items) > 0 {
			pipe.Expire(ctx, itemsKey, orderstats.DailyRetention)
		}

		status := msg.Status
		if status == "" {
			status = "preparing"
		}
		pipe.HIncrBy(ctx, orderstats.StatusCountsKey, status, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record order %d: %w", msg.OrderID, err)
	}
	return nil
}

// RecordStatusChange moves one order from its old status bucket to the new one.
func (s *Store) RecordStatusChange(ctx context.Context, msg domain.OrderMessage) error {
	if msg.FromStatus == msg.Status {
		return nil
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if msg.FromStatus != "" {
			pipe.HIncrBy(ctx, orderstats.StatusCountsKey, msg.FromStatus, -1)
		}
		pipe.HIncrBy(ctx, orderstats.StatusCountsKey, msg.Status, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record status change for order %d: %w", msg.OrderID, err)
	}
	return nil
}
