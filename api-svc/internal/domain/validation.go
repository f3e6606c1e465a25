package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

func (r CreateOrderRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" || strings.TrimSpace(r.DeliveryAddress) == "" || len(r.Items) == 0 {
		return NewValidationError("Missing required fields: customerName, deliveryAddress, and items are required")
	}
	for i, item := range r.Items {
		if item.Quantity < 1 {
			return NewValidationError("Invalid quantity for item %d: must be a positive integer", i+1)
		}
		if item.Price.IsNegative() {
			return NewValidationError("Invalid price for item %d: must not be negative", i+1)
		}
	}
	if r.TotalAmount.IsNegative() {
		return NewValidationError("Invalid totalAmount: must not be negative")
	}
	return nil
}

// Subtotal is the sum of price x quantity over the submitted items.
func (r CreateOrderRequest) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range r.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

func (r SignupRequest) Validate() error {
	if r.Name == "" || r.OwnerName == "" || r.OwnerEmail == "" || r.Address == "" {
		return NewValidationError("Missing required fields: name, ownerName, ownerEmail, and address are required")
	}
	if r.StoreType != "" && !r.StoreType.Valid() {
		return NewValidationError("Invalid storeType: must be one of restaurant, grocery, pharmacy, other")
	}
	if r.DeliveryFee != nil && r.DeliveryFee.IsNegative() {
		return NewValidationError("Invalid deliveryFee: must not be negative")
	}
	return nil
}

func (u RestaurantUpdate) Validate() error {
	if u.StoreType != nil && !u.StoreType.Valid() {
		return NewValidationError("Invalid storeType: must be one of restaurant, grocery, pharmacy, other")
	}
	if u.DeliveryFee != nil && u.DeliveryFee.IsNegative() {
		return NewValidationError("Invalid deliveryFee: must not be negative")
	}
	if u.Rating != nil && (u.Rating.IsNegative() || u.Rating.GreaterThan(decimal.NewFromInt(5))) {
		return NewValidationError("Invalid rating: must be between 0 and 5")
	}
	return nil
}

func (r CreateMenuItemRequest) Validate() error {
	if r.RestaurantID == 0 || r.Name == "" || r.Price.IsZero() {
		return NewValidationError("Missing required fields: restaurantId, name, and price are required")
	}
	if r.Price.IsNegative() {
		return NewValidationError("Invalid price: must be greater than zero")
	}
	return nil
}
