package service

import (
	"context"

	"foodmarket/api-svc/internal/domain"
	"foodmarket/api-svc/internal/storage"
)

type RestaurantRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	SearchRestaurants(ctx context.Context, query string) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	CreateRestaurant(ctx context.Context, req domain.SignupRequest) (*domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id int, update domain.RestaurantUpdate) (*domain.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
}

type MenuRepository interface {
	ListMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.NewOrder) (*domain.Order, error)
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrderItems(ctx context.Context, orderID int) ([]domain.OrderItem, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status domain.Status, check func(from domain.Status) error) (*domain.Order, domain.Status, error)
}

// OrderCache holds line items only. Items never change after the order is
// written, so entries need no invalidation. Status always comes from the store.
type OrderCache interface {
	GetItems(ctx context.Context, orderID int) ([]domain.OrderItem, error)
	SetItems(ctx context.Context, orderID int, items []domain.OrderItem) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type RestaurantServiceInterface interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	Search(ctx context.Context, query string) ([]domain.Restaurant, error)
	Get(ctx context.Context, id int) (*domain.Restaurant, error)
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.Restaurant, error)
	Update(ctx context.Context, id int, update domain.RestaurantUpdate) (*domain.Restaurant, error)
	Delete(ctx context.Context, id int) (*domain.Restaurant, error)
}

type MenuServiceInterface interface {
	ListAvailable(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	Get(ctx context.Context, id int) (*domain.MenuItem, error)
	Create(ctx context.Context, req domain.CreateMenuItemRequest) (*domain.MenuItem, error)
	Delete(ctx context.Context, id int) (*domain.MenuItem, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error)
	TrackingQRCode(ctx context.Context, id int) ([]byte, error)
}

var (
	_ RestaurantRepository = (*storage.PostgresRepository)(nil)
	_ MenuRepository       = (*storage.PostgresRepository)(nil)
	_ OrderRepository      = (*storage.PostgresRepository)(nil)
	_ OrderCache           = (*storage.RedisOrderCache)(nil)
	_ OrderPublisher       = (*storage.KafkaPublisher)(nil)
)
