package service

import (
	"context"

	"foodmarket/agg-svc/internal/domain"
	"foodmarket/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordOrderCreated(ctx context.Context, msg domain.OrderMessage) error
	RecordStatusChange(ctx context.Context, msg domain.OrderMessage) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, msg domain.OrderMessage) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
