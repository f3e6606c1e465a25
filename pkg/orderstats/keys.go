// Package orderstats names the Redis keys agg-svc writes and analytics-svc
// reads.
package orderstats

import "time"

const (
	dailyOrdersPrefix = "analytics:orders:daily:"
	dailyItemsPrefix  = "analytics:items:daily:"

	// AllTimeItemsKey is a sorted set of menu item id -> total quantity ordered.
	AllTimeItemsKey = "analytics:items:alltime"
	// StatusCountsKey is a hash of order status -> number of orders currently in it.
	StatusCountsKey = "analytics:status"

	// DailyRetention bounds how long per-day keys live.
	DailyRetention = 7 * 24 * time.Hour

	dayLayout = "2006-01-02"
)

// Day formats t as the UTC calendar day used in key names.
func Day(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

func DailyOrdersKey(day string) string { return dailyOrdersPrefix + day }

// DailyItemsKey is a sorted set of menu item id -> quantity ordered that day.
func DailyItemsKey(day string) string { return dailyItemsPrefix + day }
