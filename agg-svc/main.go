package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"foodmarket/agg-svc/internal/service"
	"foodmarket/agg-svc/internal/storage"
	"foodmarket/config"
	"foodmarket/pkg/logger"
)

const consumerGroup = "agg-svc-consumer"

func main() {
	cfg := config.Load("8082")
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "agg-svc"})

	if cfg.RedisAddr == "" || cfg.KafkaBroker == "" {
		log.Fatal("agg-svc requires REDIS_HOST and KAFKA_BROKER")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(cfg.RedisAddr)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg.KafkaBroker, cfg.OrdersTopic, consumerGroup)
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb), log)
	consumer.Start(ctx)
}
