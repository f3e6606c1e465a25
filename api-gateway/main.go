package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodmarket/api-gateway/internal/gateway"
	"foodmarket/config"
	"foodmarket/pkg/httpserver"
	"foodmarket/pkg/logger"

	"github.com/rs/cors"
)

func main() {
	cfg := config.Load("8080")
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "api-gateway"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpserver.Run(ctx, ":"+cfg.Port, buildHandler(cfg, log), log); err != nil {
		log.Fatal("HTTP server failed", "error", err)
	}
}

func buildHandler(cfg config.Config, log *logger.Logger) http.Handler {
	gw := gateway.NewGateway(gateway.Config{
		APISvcURL:       cfg.APISvcURL,
		AnalyticsSvcURL: cfg.AnalyticsSvcURL,
	}, &http.Client{Timeout: 30 * time.Second}, log)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(gw.SetupRoutes())
}
