package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodmarket/api-svc/internal/domain"
)

const orderColumns = `id, customer_name, customer_email, customer_phone, delivery_address, total_amount,
	COALESCE(items_subtotal, 0), COALESCE(estimated_delivery, ''), status, created_at, updated_at`

const recentOrdersLimit = 50

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
		&order.DeliveryAddress, &order.TotalAmount, &order.ItemsSubtotal, &order.EstimatedDelivery,
		&order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder writes the header and one order_items row per item as a single
// unit. A failure on any item rolls back the header too.
func (r *PostgresRepository) CreateOrder(ctx context.Context, o domain.NewOrder) (*domain.Order, error) {
	var order *domain.Order
	err := withTx(ctx, r.DB, func(q Querier) error {
		created, err := scanOrder(q.QueryRowContext(ctx, `
			INSERT INTO orders (customer_name, customer_email, customer_phone, delivery_address,
				total_amount, items_subtotal, estimated_delivery, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+orderColumns,
			o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.DeliveryAddress,
			o.TotalAmount, o.ItemsSubtotal, o.EstimatedDelivery, o.Status))
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i, item := range o.Items {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO order_items (order_id, menu_item_id, restaurant_id, item_name, quantity, price)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				created.ID, item.MenuItemID, item.RestaurantID, item.Name, item.Quantity, item.Price); err != nil {
				return fmt.Errorf("insert order item %d: %w", i+1, err)
			}
		}

		order = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("Order")
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return order, nil
}

// ListOrderItems returns the line items of an order in insertion order, each
// with the current name of its restaurant for display.
func (r *PostgresRepository) ListOrderItems(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, oi.restaurant_id, oi.item_name, oi.quantity, oi.price,
			r.name AS restaurant_name
		FROM order_items oi
		LEFT JOIN restaurants r ON oi.restaurant_id = r.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list items for order %d: %w", orderID, err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.RestaurantID,
			&item.ItemName, &item.Quantity, &item.Price, &item.RestaurantName); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1`, recentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus locks the order row, lets check veto the move from the
// current status, then applies it and records the change in
// order_status_history. It returns the updated header and the previous status.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.Status, check func(from domain.Status) error) (*domain.Order, domain.Status, error) {
	var (
		updated *domain.Order
		from    domain.Status
	)
	err := withTx(ctx, r.DB, func(q Querier) error {
		err := q.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&from)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("Order")
		}
		if err != nil {
			return err
		}

		if check != nil {
			if err := check(from); err != nil {
				return err
			}
		}

		updated, err = scanOrder(q.QueryRowContext(ctx, `
			UPDATE orders
			SET status = $1, updated_at = CURRENT_TIMESTAMP
			WHERE id = $2
			RETURNING `+orderColumns, status, id))
		if err != nil {
			return err
		}

		_, err = q.ExecContext(ctx, `
			INSERT INTO order_status_history (order_id, from_status, to_status)
			VALUES ($1, $2, $3)`, id, from, status)
		return err
	})
	if err != nil {
		if domain.IsNotFound(err) || domain.IsValidation(err) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("update status of order %d: %w", id, err)
	}
	return updated, from, nil
}
