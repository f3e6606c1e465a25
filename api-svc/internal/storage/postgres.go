package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodmarket/api-svc/internal/domain"

	"github.com/lib/pq"
)

const defaultRestaurantImage = "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800"

const restaurantColumns = `id, name, COALESCE(cuisine_type, ''), COALESCE(rating, 0), COALESCE(image_url, ''),
	COALESCE(owner_name, ''), COALESCE(owner_email, ''), owner_phone, COALESCE(address, ''), description,
	COALESCE(store_type, 'restaurant'), COALESCE(delivery_fee, 0), COALESCE(delivery_time, ''), created_at`

const menuItemColumns = `id, restaurant_id, name, description, price, COALESCE(category, ''), image_url, available, created_at`

// pq reports foreign_key_violation with this SQLSTATE.
const foreignKeyViolation = "23503"

type PostgresRepository struct {
	DB DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func scanRestaurant(row rowScanner) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := row.Scan(&rest.ID, &rest.Name, &rest.CuisineType, &rest.Rating, &rest.ImageURL,
		&rest.OwnerName, &rest.OwnerEmail, &rest.OwnerPhone, &rest.Address, &rest.Description,
		&rest.StoreType, &rest.DeliveryFee, &rest.DeliveryTime, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := row.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price,
		&item.Category, &item.ImageURL, &item.Available, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) queryRestaurants(ctx context.Context, query string, args ...any) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	restaurants, err := r.queryRestaurants(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY rating DESC NULLS LAST, id`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

func (r *PostgresRepository) SearchRestaurants(ctx context.Context, query string) ([]domain.Restaurant, error) {
	restaurants, err := r.queryRestaurants(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE LOWER(name) LIKE LOWER($1)
		   OR LOWER(cuisine_type) LIKE LOWER($1)
		ORDER BY rating DESC NULLS LAST, id`, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	return restaurants, nil
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.DB.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("Restaurant")
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant %d: %w", id, err)
	}
	return rest, nil
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, req domain.SignupRequest) (*domain.Restaurant, error) {
	cuisine := req.CuisineType
	if cuisine == "" {
		cuisine = "General"
	}
	image := req.ImageURL
	if image == "" {
		image = defaultRestaurantImage
	}
	storeType := req.StoreType
	if storeType == "" {
		storeType = domain.StoreTypeRestaurant
	}
	deliveryTime := req.DeliveryTime
	if deliveryTime == "" {
		deliveryTime = "30-40 min"
	}
	var deliveryFee any = "3.00"
	if req.DeliveryFee != nil && !req.DeliveryFee.IsZero() {
		deliveryFee = req.DeliveryFee
	}

	rest, err := scanRestaurant(r.DB.QueryRowContext(ctx, `
		INSERT INTO restaurants (name, cuisine_type, rating, image_url, owner_name, owner_email, owner_phone,
			address, description, store_type, delivery_fee, delivery_time)
		VALUES ($1, $2, 0, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+restaurantColumns,
		req.Name, cuisine, image, req.OwnerName, req.OwnerEmail, nullString(req.OwnerPhone),
		req.Address, nullString(req.Description), storeType, deliveryFee, deliveryTime))
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return rest, nil
}

func (r *PostgresRepository) UpdateRestaurant(ctx context.Context, id int, u domain.RestaurantUpdate) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.DB.QueryRowContext(ctx, `
		UPDATE restaurants SET
			name = COALESCE($1, name),
			cuisine_type = COALESCE($2, cuisine_type),
			owner_name = COALESCE($3, owner_name),
			owner_email = COALESCE($4, owner_email),
			owner_phone = COALESCE($5, owner_phone),
			address = COALESCE($6, address),
			description = COALESCE($7, description),
			image_url = COALESCE($8, image_url),
			store_type = COALESCE($9, store_type),
			delivery_fee = COALESCE($10, delivery_fee),
			delivery_time = COALESCE($11, delivery_time),
			rating = COALESCE($12, rating)
		WHERE id = $13
		RETURNING `+restaurantColumns,
		u.Name, u.CuisineType, u.OwnerName, u.OwnerEmail, u.OwnerPhone, u.Address, u.Description,
		u.ImageURL, u.StoreType, u.DeliveryFee, u.DeliveryTime, u.Rating, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("Store")
	}
	if err != nil {
		return nil, fmt.Errorf("update restaurant %d: %w", id, err)
	}
	return rest, nil
}

// DeleteRestaurant removes the restaurant and all of its menu items in one
// transaction.
func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var deleted *domain.Restaurant
	err := withTx(ctx, r.DB, func(q Querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM menu_items WHERE restaurant_id = $1`, id); err != nil {
			return err
		}
		rest, err := scanRestaurant(q.QueryRowContext(ctx,
			`DELETE FROM restaurants WHERE id = $1 RETURNING `+restaurantColumns, id))
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("Store")
		}
		if err != nil {
			return err
		}
		deleted = rest
		return nil
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("delete restaurant %d: %w", id, err)
	}
	return deleted, nil
}

func (r *PostgresRepository) ListMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+menuItemColumns+`
		FROM menu_items
		WHERE restaurant_id = $1 AND available = true
		ORDER BY category, name`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu for restaurant %d: %w", restaurantID, err)
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("Menu item")
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item %d: %w", id, err)
	}
	return item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (*domain.MenuItem, error) {
	category := req.Category
	if category == "" {
		category = "General"
	}
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (restaurant_id, name, description, price, category, image_url, available)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING `+menuItemColumns,
		req.RestaurantID, req.Name, nullString(req.Description), req.Price, category, nullString(req.ImageURL)))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return nil, domain.NewValidationError("Restaurant %d does not exist", req.RestaurantID)
		}
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx,
		`DELETE FROM menu_items WHERE id = $1 RETURNING `+menuItemColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("Menu item")
	}
	if err != nil {
		return nil, fmt.Errorf("delete menu item %d: %w", id, err)
	}
	return item, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
