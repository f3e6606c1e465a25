package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	httpapi "foodmarket/analytics-svc/internal/api/http"
	"foodmarket/analytics-svc/internal/service"
	"foodmarket/config"
	"foodmarket/pkg/httpserver"
	"foodmarket/pkg/logger"
)

func main() {
	cfg := config.Load("8083")
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "analytics-svc"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg.DB)
	defer db.Close()

	rdb := config.MustInitRedis(cfg.RedisAddr)
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Warn("REDIS_HOST not set, analytics served from Postgres only")
	}

	handler := httpapi.NewHandler(service.NewAnalyticsService(db, rdb, log), log)
	if err := httpserver.Run(ctx, ":"+cfg.Port, httpapi.NewRouter(handler), log); err != nil {
		log.Fatal("HTTP server failed", "error", err)
	}
}
