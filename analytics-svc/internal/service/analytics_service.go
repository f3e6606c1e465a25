package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"foodmarket/analytics-svc/internal/domain"
	"foodmarket/pkg/logger"
	"foodmarket/pkg/orderstats"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	popularLimit = 10

	sourceRedis    = "redis"
	sourcePostgres = "postgres"
)

type AnalyticsService struct {
	db  *sql.DB
	rdb *redis.Client
	log *logger.Logger
	now func() time.Time
}

// NewAnalyticsService takes a nil rdb to serve everything from Postgres.
func NewAnalyticsService(db *sql.DB, rdb *redis.Client, log *logger.Logger) *AnalyticsService {
	if log == nil {
		log = logger.Nop()
	}
	return &AnalyticsService{
		db:  db,
		rdb: rdb,
		log: log.WithComponent("analytics"),
		now: time.Now,
	}
}

// WithClock replaces the time source used to pick today's counters.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// PopularItems ranks menu items by quantity ordered. Counters maintained by
// agg-svc are read first; when they are empty or Redis is down the ranking is
// computed from order_items.
func (s *AnalyticsService) PopularItems(ctx context.Context, rawPeriod string) (*domain.PopularItemsResponse, error) {
	period, err := domain.ParsePeriod(rawPeriod)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		items, err := s.popularFromRedis(ctx, period)
		if err != nil {
			s.log.Warn("Redis counters unavailable, using Postgres", "period", period, "error", err)
		} else if len(items) > 0 {
			return &domain.PopularItemsResponse{Period: period, Source: sourceRedis, Items: items}, nil
		}
	}

	items, err := s.popularFromDB(ctx, period)
	if err != nil {
		return nil, err
	}
	return &domain.PopularItemsResponse{Period: period, Source: sourcePostgres, Items: items}, nil
}

func (s *AnalyticsService) popularFromRedis(ctx context.Context, period domain.Period) ([]domain.PopularItem, error) {
	key := orderstats.AllTimeItemsKey
	if period == domain.PeriodToday {
		key = orderstats.DailyItemsKey(orderstats.Day(s.now()))
	}

	ranked, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, popularLimit-1).Result()
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(ranked))
	quantities := make(map[int]int64, len(ranked))
	for _, z := range ranked {
		id, err := strconv.Atoi(fmt.Sprint(z.Member))
		if err != nil {
			continue
		}
		ids = append(ids, int64(id))
		quantities[id] = int64(z.Score)
	}

	names, err := s.itemNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.PopularItem, 0, len(ids))
	for _, id := range ids {
		item, ok := names[int(id)]
		if !ok {
			continue
		}
		item.Quantity = quantities[int(id)]
		items = append(items, item)
	}
	return items, nil
}

// itemNames resolves ids to the most recently ordered name, so items removed
// from the menu still show up under the name customers saw.
func (s *AnalyticsService) itemNames(ctx context.Context, ids []int64) (map[int]domain.PopularItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT ON (menu_item_id) menu_item_id, item_name, restaurant_id
		FROM order_items
		WHERE menu_item_id = ANY($1)
		ORDER BY menu_item_id, id DESC`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("resolve item names: %w", err)
	}
	defer rows.Close()

	names := make(map[int]domain.PopularItem, len(ids))
	for rows.Next() {
		var item domain.PopularItem
		var restaurantID sql.NullInt64
		if err := rows.Scan(&item.MenuItemID, &item.Name, &restaurantID); err != nil {
			return nil, err
		}
		item.RestaurantID = int(restaurantID.Int64)
		names[item.MenuItemID] = item
	}
	return names, rows.Err()
}

func (s *AnalyticsService) popularFromDB(ctx context.Context, period domain.Period) ([]domain.PopularItem, error) {
	filter := ""
	if period == domain.PeriodToday {
		filter = "WHERE o.created_at::date = CURRENT_DATE"
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT oi.menu_item_id, MAX(oi.item_name), COALESCE(MAX(oi.restaurant_id), 0), SUM(oi.quantity) AS quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		`+filter+`
		GROUP BY oi.menu_item_id
		ORDER BY quantity DESC, oi.menu_item_id
		LIMIT $1`, popularLimit)
	if err != nil {
		return nil, fmt.Errorf("popular items: %w", err)
	}
	defer rows.Close()

	items := []domain.PopularItem{}
	for rows.Next() {
		var item domain.PopularItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.RestaurantID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *AnalyticsService) OrderSummary(ctx context.Context) (*domain.OrderSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*), COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE)
		FROM orders
		GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("order summary: %w", err)
	}
	defer rows.Close()

	summary := &domain.OrderSummary{ByStatus: map[string]int{}}
	for rows.Next() {
		var status string
		var total, today int
		if err := rows.Scan(&status, &total, &today); err != nil {
			return nil, err
		}
		summary.ByStatus[status] = total
		summary.Total += total
		summary.Today += today
	}
	return summary, rows.Err()
}
