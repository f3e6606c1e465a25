package service

import (
	"context"

	"foodmarket/analytics-svc/internal/domain"
)

type AnalyticsInterface interface {
	PopularItems(ctx context.Context, period string) (*domain.PopularItemsResponse, error)
	OrderSummary(ctx context.Context) (*domain.OrderSummary, error)
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)
