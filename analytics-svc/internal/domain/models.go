package domain

import "errors"

var ErrInvalidPeriod = errors.New("invalid period")

type Period string

const (
	PeriodToday Period = "today"
	PeriodAll   Period = "all"
)

// ParsePeriod defaults an empty period to all.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodAll:
		return PeriodAll, nil
	case PeriodToday:
		return PeriodToday, nil
	}
	return "", ErrInvalidPeriod
}

type PopularItem struct {
	MenuItemID   int    `json:"menu_item_id"`
	Name         string `json:"name"`
	RestaurantID int    `json:"restaurant_id"`
	Quantity     int64  `json:"quantity"`
}

type PopularItemsResponse struct {
	Period Period        `json:"period"`
	Source string        `json:"source"`
	Items  []PopularItem `json:"items"`
}

type OrderSummary struct {
	Total    int            `json:"total"`
	Today    int            `json:"today"`
	ByStatus map[string]int `json:"by_status"`
}
