package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "foodmarket/api-svc/internal/api/http"
	"foodmarket/api-svc/internal/service"
	"foodmarket/api-svc/internal/storage"
	"foodmarket/config"
	"foodmarket/pkg/httpserver"
	"foodmarket/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

func main() {
	cfg := config.Load("8081")
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "api-svc"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg.DB)
	defer db.Close()

	rdb := config.MustInitRedis(cfg.RedisAddr)
	if rdb != nil {
		defer rdb.Close()
	}

	writer := config.NewKafkaWriter(cfg.KafkaBroker, cfg.OrdersTopic)
	if writer != nil {
		defer writer.Close()
	}

	if cfg.AutoMigrate {
		if err := storage.NewPostgresRepository(db).EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to apply migrations", "error", err)
		}
		log.Info("Database schema is up to date")
	}

	handler := buildHandler(cfg, db, rdb, writer, log)
	if err := httpserver.Run(ctx, ":"+cfg.Port, handler, log); err != nil {
		log.Fatal("HTTP server failed", "error", err)
	}
}

// buildHandler wires storage, services and routes. Redis and Kafka are
// optional: a nil client disables the tracking cache or event publishing.
func buildHandler(cfg config.Config, db *sql.DB, rdb *redis.Client, writer *kafka.Writer, log *logger.Logger) http.Handler {
	repo := storage.NewPostgresRepository(db)

	var cache service.OrderCache
	if rdb != nil {
		cache = storage.NewRedisOrderCache(rdb, cfg.OrderCacheTTL)
	} else {
		log.Warn("REDIS_HOST not set, order tracking cache disabled")
	}

	var publisher service.OrderPublisher
	if writer != nil {
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		log.Warn("KAFKA_BROKER not set, order events disabled")
	}

	orderSvc := service.NewOrderService(repo, cache, publisher, service.TrackingQRGenerator{BaseURL: cfg.PublicBaseURL}, log)
	handler := httpapi.NewHandler(
		service.NewRestaurantService(repo),
		service.NewMenuService(repo),
		orderSvc,
		service.NewAccessGate(cfg.AdminToken),
		log,
	)
	return httpapi.NewRouter(handler)
}
