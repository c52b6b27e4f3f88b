package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/gateway"
	"github.com/iliyamo/hotel-booking/internal/logger"
)

func main() {
	_ = godotenv.Load() // a missing .env is fine

	cfg := config.LoadGatewayConfig()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	e, err := gateway.New(cfg)
	if err != nil {
		logger.Fatal("invalid BACKEND_URL", "error", err)
	}
	e.HidePort = true

	go func() {
		logger.Get().Info("gateway listening", "port", cfg.Port, "backend", cfg.BackendURL)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("gateway stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Get().Error("gateway shutdown", "error", err)
	}
}
