package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"foodmarket/api-svc/internal/domain"
	"foodmarket/pkg/logger"
)

// Delivery estimates are a display heuristic: a window of estimateSpread
// minutes starting somewhere in [estimateMinLow, estimateMinLow+estimateRange).
const (
	estimateMinLow = 20
	estimateRange  = 20
	estimateSpread = 10
)

// Events go out after the write has committed, so a slow or absent broker may
// only hold the response for this long.
const defaultPublishTimeout = time.Second

type Randomizer interface {
	IntN(n int) int
}

type defaultRandomizer struct{}

func (defaultRandomizer) IntN(n int) int { return rand.Intn(n) }

type OrderService struct {
	repository OrderRepository
	cache      OrderCache
	publisher  OrderPublisher
	qrEncoder  QRGenerator
	random     Randomizer
	log        *logger.Logger

	publishTimeout time.Duration
}

// NewOrderService wires the order core. cache, publisher and qr may be nil.
func NewOrderService(repository OrderRepository, cache OrderCache, publisher OrderPublisher, qr QRGenerator, log *logger.Logger) *OrderService {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderService{
		repository: repository,
		cache:      cache,
		publisher:  publisher,
		qrEncoder:  qr,
		random:     defaultRandomizer{},
		log:        log.WithComponent("order_service"),

		publishTimeout: defaultPublishTimeout,
	}
}

func (s *OrderService) WithRandomizer(r Randomizer) *OrderService {
	s.random = r
	return s
}

func (s *OrderService) WithPublishTimeout(d time.Duration) *OrderService {
	s.publishTimeout = d
	return s
}

func (s *OrderService) estimateDelivery() string {
	low := estimateMinLow + s.random.IntN(estimateRange)
	return fmt.Sprintf("%d-%d min", low, low+estimateSpread)
}

// Create validates a cart submission and persists it atomically. The client
// total may include fees and tax but can never be below the item subtotal.
func (s *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	subtotal := req.Subtotal()
	total := req.TotalAmount
	if total.IsZero() {
		total = subtotal
	} else if total.LessThan(subtotal) {
		return nil, domain.NewValidationError("Invalid totalAmount: %s is less than the items subtotal %s",
			total.StringFixed(2), subtotal.StringFixed(2))
	}

	order, err := s.repository.CreateOrder(ctx, domain.NewOrder{
		CustomerName:      req.CustomerName,
		CustomerEmail:     optional(req.CustomerEmail),
		CustomerPhone:     optional(req.CustomerPhone),
		DeliveryAddress:   req.DeliveryAddress,
		TotalAmount:       total,
		ItemsSubtotal:     subtotal,
		EstimatedDelivery: s.estimateDelivery(),
		Status:            domain.InitialStatus,
		Items:             req.Items,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Order created", "order_id", order.ID, "items", len(req.Items), "total", order.TotalAmount.String())

	items := make([]domain.OrderEventItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderEventItem{
			MenuItemID:   item.MenuItemID,
			RestaurantID: item.RestaurantID,
			Quantity:     item.Quantity,
		})
	}
	s.publish(ctx, domain.OrderEvent{
		Type:    domain.EventOrderCreated,
		OrderID: order.ID,
		Status:  order.Status,
		Items:   items,
	})

	return order, nil
}

// Get returns the order header with its line items attached. The header is
// read from the store on every call so a status change is visible at once.
func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.repository.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.orderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (s *OrderService) orderItems(ctx context.Context, id int) ([]domain.OrderItem, error) {
	if s.cache != nil {
		cached, err := s.cache.GetItems(ctx, id)
		if err != nil {
			s.log.Warn("Order items cache read failed", "order_id", id, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	items, err := s.repository.ListOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetItems(ctx, id, items); err != nil {
			s.log.Warn("Order items cache write failed", "order_id", id, "error", err)
		}
	}
	return items, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repository.ListOrders(ctx)
}

// UpdateStatus moves an order along preparing -> on_the_way -> delivered, or
// to cancelled before delivery.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, raw string) (*domain.Order, error) {
	status, ok := domain.ParseStatus(raw)
	if !ok {
		return nil, domain.NewValidationError("Invalid status")
	}

	order, from, err := s.repository.UpdateOrderStatus(ctx, id, status, func(from domain.Status) error {
		if !domain.CanTransition(from, status) {
			return domain.NewValidationError("Invalid status transition from %s to %s", from, status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Order status changed", "order_id", id, "from", from, "to", status)

	s.publish(ctx, domain.OrderEvent{
		Type:       domain.EventOrderStatusChanged,
		OrderID:    id,
		FromStatus: from,
		Status:     status,
	})

	return order, nil
}

func (s *OrderService) TrackingQRCode(ctx context.Context, id int) ([]byte, error) {
	if s.qrEncoder == nil {
		return nil, domain.NotFound("QR code")
	}
	if _, err := s.repository.GetOrder(ctx, id); err != nil {
		return nil, err
	}
	return s.qrEncoder.Generate(id)
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()

	// The order is already committed: a client that gave up must not cancel
	// the event, and the broker must not hold the response past the timeout.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.Warn("Order event publish failed", "order_id", event.OrderID, "type", event.Type, "error", err)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ OrderServiceInterface = (*OrderService)(nil)
