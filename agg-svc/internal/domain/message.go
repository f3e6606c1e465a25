package domain

import (
	"time"

	"foodmarket/pkg/orderstats"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

type OrderItem struct {
	MenuItemID   int `json:"menu_item_id"`
	RestaurantID int `json:"restaurant_id"`
	Quantity     int `json:"quantity"`
}

// OrderMessage is one event from the orders topic, as published by api-svc.
type OrderMessage struct {
	Type       string      `json:"type"`
	OrderID    int         `json:"order_id"`
	FromStatus string      `json:"from_status,omitempty"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Day is the UTC calendar day the event is counted under.
func (m OrderMessage) Day() string {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return orderstats.Day(ts)
}
