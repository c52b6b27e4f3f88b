package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/logger"
	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/router"
	"github.com/iliyamo/hotel-booking/internal/scheduler"
	"github.com/iliyamo/hotel-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // a missing .env is fine; real deployments use the environment

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Get()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("schema migration failed", "error", err)
		}
	}
	if cfg.DBSeed {
		if err := database.Seed(ctx, db, cfg.BcryptCost); err != nil {
			logger.Fatal("seeding failed", "error", err)
		}
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unreachable; cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	users, tokens := repository.NewUserRepo(db), repository.NewTokenRepo(db)
	rooms, events := repository.NewRoomRepo(db), repository.NewEventRepo(db)
	baskets := repository.NewBasketRepo(db)

	var publisher handler.ReservationPublisher
	if cfg.QueueEnabled {
		publisher = service.NewPublisher(cfg.RabbitURL)
		consumer := queue.NewConsumer(cfg.RabbitURL, "logs", log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("reservation consumer stopped", "error", err)
			}
		}()
	}

	metrics := middleware.NewMetrics("hotel")
	rateLimit := config.LoadRateLimitConfig()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(cfg.IsDevelopment())

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.HeaderRequestID},
	}))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	e.Use(middleware.NewTokenBucket(rateLimit, rdb))

	router.Register(e, router.Handlers{
		Health:       &handler.HealthHandler{DB: db, Redis: rdb},
		Auth:         handler.NewAuthHandler(cfg, users, tokens),
		Users:        handler.NewUserHandler(cfg, users, tokens),
		Rooms:        handler.NewRoomHandler(rooms),
		Events:       handler.NewEventHandler(events),
		Inventory:    handler.NewInventoryHandler(repository.NewInventoryRepo(db)),
		Reservations: handler.NewReservationHandler(repository.NewReservationRepo(db), publisher),
		Baskets:      handler.NewBasketHandler(cfg, baskets, rooms, events, publisher),
		Metrics:      metrics,
	}, cfg.JWTSecret, rateLimit.ForAuth(), rdb)

	sched, err := scheduler.New(baskets, tokens, cfg.BasketSweep, log)
	if err != nil {
		logger.Fatal("scheduler setup failed", "error", err)
	}
	sched.Start()

	go func() {
		log.Info("listening", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	if err := sched.Shutdown(); err != nil {
		log.Error("scheduler shutdown", "error", err)
	}
}
