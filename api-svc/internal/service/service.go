package service

import (
	"context"
	"strings"

	"foodmarket/api-svc/internal/domain"
)

type RestaurantService struct {
	repo RestaurantRepository
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

// Search matches q as a case-insensitive substring of name or cuisine type.
// A blank query behaves like List.
func (s *RestaurantService) Search(ctx context.Context, q string) ([]domain.Restaurant, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.repo.ListRestaurants(ctx)
	}
	return s.repo.SearchRestaurants(ctx, q)
}

func (s *RestaurantService) Get(ctx context.Context, id int) (*domain.Restaurant, error) {
	return s.repo.GetRestaurant(ctx, id)
}

func (s *RestaurantService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.Restaurant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreateRestaurant(ctx, req)
}

func (s *RestaurantService) Update(ctx context.Context, id int, update domain.RestaurantUpdate) (*domain.Restaurant, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateRestaurant(ctx, id, update)
}

// Delete removes the store together with its whole menu.
func (s *RestaurantService) Delete(ctx context.Context, id int) (*domain.Restaurant, error) {
	return s.repo.DeleteRestaurant(ctx, id)
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)

type MenuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) ListAvailable(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	return s.repo.ListMenu(ctx, restaurantID)
}

func (s *MenuService) Get(ctx context.Context, id int) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

func (s *MenuService) Create(ctx context.Context, req domain.CreateMenuItemRequest) (*domain.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreateMenuItem(ctx, req)
}

func (s *MenuService) Delete(ctx context.Context, id int) (*domain.MenuItem, error) {
	return s.repo.DeleteMenuItem(ctx, id)
}

var _ MenuServiceInterface = (*MenuService)(nil)
