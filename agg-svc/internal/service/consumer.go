package service

import (
	"context"
	"encoding/json"

	"foodmarket/agg-svc/internal/domain"
	"foodmarket/pkg/logger"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Log    *logger.Logger
}

func NewConsumer(reader MessageReader, store StoreInterface, log *logger.Logger) *Consumer {
	if log == nil {
		log = logger.Nop()
	}
	return &Consumer{
		Reader: reader,
		Store:  store,
		Log:    log.WithComponent("consumer"),
	}
}

// Start reads the orders topic until ctx is cancelled. Bad payloads and
// store failures are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("Starting order aggregation consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Log.Info("Consumer stopped")
				return
			}
			c.Log.Error("Error reading message", "error", err)
			continue
		}

		var msg domain.OrderMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			c.Log.Warn("Skipping malformed message", "offset", message.Offset, "error", err)
			continue
		}

		if err := c.ProcessEvent(ctx, msg); err != nil {
			c.Log.Error("Error processing event", "type", msg.Type, "order_id", msg.OrderID, "error", err)
		}
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, msg domain.OrderMessage) error {
	switch msg.Type {
	case domain.EventOrderCreated:
		if err := c.Store.RecordOrderCreated(ctx, msg); err != nil {
			return err
		}
	case domain.EventOrderStatusChanged:
		if err := c.Store.RecordStatusChange(ctx, msg); err != nil {
			return err
		}
	default:
		return nil
	}
	c.Log.Debug("Processed order event", "type", msg.Type, "order_id", msg.OrderID)
	return nil
}
