package tests

import (
	"context"
	"testing"
	"time"

	"foodmarket/analytics-svc/internal/domain"
	"foodmarket/analytics-svc/internal/service"
	"foodmarket/pkg/orderstats"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func setupAnalytics(t *testing.T, withRedis bool) (*service.AnalyticsService, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	if !withRedis {
		return service.NewAnalyticsService(db, nil, nil), mock, nil
	}
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return service.NewAnalyticsService(db, rdb, nil).WithClock(func() time.Time { return fixedNow }), mock, mr
}

func TestAnalyticsService_PopularItemsFromRedis(t *testing.T) {
	svc, mock, mr := setupAnalytics(t, true)
	key := orderstats.DailyItemsKey("2026-10-19")
	mr.ZAdd(key, 4, "7")
	mr.ZAdd(key, 9, "8")
	mr.ZAdd(key, 1, "99")

	mock.ExpectQuery("SELECT DISTINCT ON \\(menu_item_id\\)").WithArgs(sqlmock.AnyArg()).WillReturnRows(
		sqlmock.NewRows([]string{"menu_item_id", "item_name", "restaurant_id"}).
			AddRow(7, "Pizza", 3).
			AddRow(8, "Soup", 4))

	resp, err := svc.PopularItems(context.Background(), "today")

	require.NoError(t, err)
	assert.Equal(t, "redis", resp.Source)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Soup", resp.Items[0].Name)
	assert.Equal(t, int64(9), resp.Items[0].Quantity)
	assert.Equal(t, int64(4), resp.Items[1].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsService_PopularItemsFallsBackToPostgres(t *testing.T) {
	aggregate := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"menu_item_id", "max", "coalesce", "quantity"}).AddRow(7, "Pizza", 3, 12)
	}

	t.Run("empty counters", func(t *testing.T) {
		svc, mock, _ := setupAnalytics(t, true)
		mock.ExpectQuery("(?s)FROM order_items oi\\s+JOIN orders o (.+) GROUP BY oi.menu_item_id").
			WithArgs(10).WillReturnRows(aggregate())

		resp, err := svc.PopularItems(context.Background(), "all")

		require.NoError(t, err)
		assert.Equal(t, "postgres", resp.Source)
		assert.Equal(t, domain.PeriodAll, resp.Period)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(12), resp.Items[0].Quantity)
	})

	t.Run("redis down", func(t *testing.T) {
		svc, mock, mr := setupAnalytics(t, true)
		mr.Close()
		mock.ExpectQuery("(?s)WHERE o.created_at::date = CURRENT_DATE").WithArgs(10).WillReturnRows(aggregate())

		resp, err := svc.PopularItems(context.Background(), "today")

		require.NoError(t, err)
		assert.Equal(t, "postgres", resp.Source)
	})

	t.Run("no redis configured", func(t *testing.T) {
		svc, mock, _ := setupAnalytics(t, false)
		mock.ExpectQuery("GROUP BY oi.menu_item_id").WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "max", "coalesce", "quantity"}))

		resp, err := svc.PopularItems(context.Background(), "")

		require.NoError(t, err)
		assert.NotNil(t, resp.Items)
		assert.Empty(t, resp.Items)
	})
}

func TestAnalyticsService_PopularItemsRejectsUnknownPeriod(t *testing.T) {
	svc, _, _ := setupAnalytics(t, false)

	_, err := svc.PopularItems(context.Background(), "week")

	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestAnalyticsService_OrderSummary(t *testing.T) {
	svc, mock, _ := setupAnalytics(t, false)
	mock.ExpectQuery("FROM orders\\s+GROUP BY status").WillReturnRows(
		sqlmock.NewRows([]string{"status", "count", "count"}).
			AddRow("preparing", 2, 2).
			AddRow("delivered", 5, 1).
			AddRow("cancelled", 1, 0))

	summary, err := svc.OrderSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 8, summary.Total)
	assert.Equal(t, 3, summary.Today)
	assert.Equal(t, 5, summary.ByStatus["delivered"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
