package domain

import "time"

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

type OrderEventItem struct {
	MenuItemID   int `json:"menu_item_id"`
	RestaurantID int `json:"restaurant_id"`
	Quantity     int `json:"quantity"`
}

type OrderEvent struct {
	Type       string           `json:"type"`
	OrderID    int              `json:"order_id"`
	FromStatus Status           `json:"from_status,omitempty"`
	Status     Status           `json:"status"`
	Items      []OrderEventItem `json:"items,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}
