package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type StoreType string

const (
	StoreTypeRestaurant StoreType = "restaurant"
	StoreTypeGrocery    StoreType = "grocery"
	StoreTypePharmacy   StoreType = "pharmacy"
	StoreTypeOther      StoreType = "other"
)

func (t StoreType) Valid() bool {
	switch t {
	case StoreTypeRestaurant, StoreTypeGrocery, StoreTypePharmacy, StoreTypeOther:
		return true
	}
	return false
}

type Restaurant struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	CuisineType  string          `json:"cuisine_type"`
	Rating       decimal.Decimal `json:"rating"`
	ImageURL     string          `json:"image_url"`
	OwnerName    string          `json:"owner_name"`
	OwnerEmail   string          `json:"owner_email"`
	OwnerPhone   *string         `json:"owner_phone"`
	Address      string          `json:"address"`
	Description  *string         `json:"description"`
	StoreType    StoreType       `json:"store_type"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	DeliveryTime string          `json:"delivery_time"`
	CreatedAt    time.Time       `json:"created_at"`
}

type MenuItem struct {
	ID           int             `json:"id"`
	RestaurantID int             `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	ImageURL     *string         `json:"image_url"`
	Available    bool            `json:"available"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Order is the order header. Items is only populated by the tracking read.
type Order struct {
	ID                int             `json:"id"`
	CustomerName      string          `json:"customer_name"`
	CustomerEmail     *string         `json:"customer_email"`
	CustomerPhone     *string         `json:"customer_phone"`
	DeliveryAddress   string          `json:"delivery_address"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	ItemsSubtotal     decimal.Decimal `json:"items_subtotal"`
	EstimatedDelivery string          `json:"estimated_delivery"`
	Status            Status          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Items             []OrderItem     `json:"items,omitempty"`
}

// OrderItem keeps the name and price the customer saw when ordering.
type OrderItem struct {
	ID             int             `json:"id"`
	OrderID        int             `json:"order_id"`
	MenuItemID     int             `json:"menu_item_id"`
	RestaurantID   int             `json:"restaurant_id"`
	ItemName       string          `json:"item_name"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	RestaurantName *string         `json:"restaurant_name,omitempty"`
}

type CreateOrderItem struct {
	MenuItemID   int             `json:"menuItemId"`
	RestaurantID int             `json:"restaurantId"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerPhone   string            `json:"customerPhone"`
	DeliveryAddress string            `json:"deliveryAddress"`
	Items           []CreateOrderItem `json:"items"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
}

// NewOrder is what the transaction manager hands to storage after validation.
type NewOrder struct {
	CustomerName      string
	CustomerEmail     *string
	CustomerPhone     *string
	DeliveryAddress   string
	TotalAmount       decimal.Decimal
	ItemsSubtotal     decimal.Decimal
	EstimatedDelivery string
	Status            Status
	Items             []CreateOrderItem
}

type SignupRequest struct {
	Name         string           `json:"name"`
	CuisineType  string           `json:"cuisineType"`
	OwnerName    string           `json:"ownerName"`
	OwnerEmail   string           `json:"ownerEmail"`
	OwnerPhone   string           `json:"ownerPhone"`
	Address      string           `json:"address"`
	Description  string           `json:"description"`
	ImageURL     string           `json:"imageUrl"`
	StoreType    StoreType        `json:"storeType"`
	DeliveryFee  *decimal.Decimal `json:"deliveryFee"`
	DeliveryTime string           `json:"deliveryTime"`
}

// RestaurantUpdate carries only the fields present in the request body; nil
// fields keep their stored value.
type RestaurantUpdate struct {
	Name         *string          `json:"name"`
	CuisineType  *string          `json:"cuisineType"`
	OwnerName    *string          `json:"ownerName"`
	OwnerEmail   *string          `json:"ownerEmail"`
	OwnerPhone   *string          `json:"ownerPhone"`
	Address      *string          `json:"address"`
	Description  *string          `json:"description"`
	ImageURL     *string          `json:"imageUrl"`
	StoreType    *StoreType       `json:"storeType"`
	DeliveryFee  *decimal.Decimal `json:"deliveryFee"`
	DeliveryTime *string          `json:"deliveryTime"`
	Rating       *decimal.Decimal `json:"rating"`
}

type CreateMenuItemRequest struct {
	RestaurantID int             `json:"restaurantId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	ImageURL     string          `json:"imageUrl"`
}
