package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/tukang/internal/pkg/config"
	"github.com/piresc/tukang/internal/pkg/database"
	"github.com/piresc/tukang/internal/pkg/health"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/middleware"
	"github.com/piresc/tukang/internal/pkg/nats"
	nrpkg "github.com/piresc/tukang/internal/pkg/newrelic"
	"github.com/piresc/tukang/internal/pkg/retry"
	"github.com/piresc/tukang/internal/pkg/taskqueue"
	"github.com/piresc/tukang/internal/pkg/websocket"
	"github.com/piresc/tukang/services/booking"
	"github.com/piresc/tukang/services/booking/cache"
	"github.com/piresc/tukang/services/booking/dispatch"
	"github.com/piresc/tukang/services/booking/gateway"
	"github.com/piresc/tukang/services/booking/handler"
	natsHandler "github.com/piresc/tukang/services/booking/handler/nats"
	"github.com/piresc/tukang/services/booking/repository"
	"github.com/piresc/tukang/services/booking/repository/memory"
	"github.com/piresc/tukang/services/booking/usecase"
)

func main() {
	appName := "booking-service"
	configPath := "config/booking.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("store", configs.Store.Driver),
		logger.String("channel", configs.Channel.Transport),
		logger.String("cache", configs.Cache.Driver))

	healthService := health.NewService()

	// Authoritative store
	var deps usecase.Deps
	var postgresClient *database.PostgresClient
	switch configs.Store.Driver {
	case "memory":
		store := memory.NewStore()
		deps.Bookings, deps.Workers, deps.Users, deps.Services, deps.Notifications = store, store, store, store, store
	default:
		postgresClient, err = database.NewPostgresClient(configs.Database)
		if err != nil {
			zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
		}
		defer postgresClient.Close()
		healthService.AddChecker("postgres", health.NewPostgresChecker(postgresClient))

		repos := repository.NewRepositories(postgresClient.GetDB())
		deps.Bookings, deps.Workers, deps.Users, deps.Services, deps.Notifications =
			repos.Bookings, repos.Workers, repos.Users, repos.Services, repos.Notifications
	}

	// Redis backs the shared cache and the write rate limiter
	var rdb *redis.Client
	if configs.Cache.Driver == cache.DriverRedis || configs.Server.RateLimit > 0 {
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		defer redisClient.Close()
		healthService.AddChecker("redis", health.NewRedisChecker(redisClient))
		rdb = redisClient.GetClient()
	}

	// NATS carries channel events and cache invalidations between instances
	var natsClient *nats.Client
	if configs.Channel.Transport != "local" || configs.Cache.Broadcast {
		natsClient, err = nats.NewClient(configs.NATS.URL, appName)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
		}
		defer natsClient.Close()
		healthService.AddChecker("nats", health.NewNATSChecker(natsClient))
		logger.Info("NATS client initialized", logger.String("url", configs.NATS.URL))
	}

	hub := websocket.NewHub(configs.JWT)
	defer hub.Close()

	if configs.Channel.Transport == "local" {
		deps.Gateway = gateway.NewLocalChannelGW(hub)
	} else {
		deps.Gateway = gateway.NewNATSChannelGW(natsClient, zapLogger)
	}

	var invalidate nats.MessageHandler
	deps.Cache = cache.New(configs.Cache, rdb)
	if configs.Cache.Broadcast && deps.Cache != nil {
		broadcast := cache.NewBroadcast(deps.Cache, natsClient)
		deps.Cache = broadcast
		invalidate = broadcast.HandleInvalidation
	}

	synonyms, err := config.LoadCategorySynonyms(configs.Dispatch.SynonymsFile, configs.Dispatch.Synonyms)
	if err != nil {
		zapLogger.Fatal("Failed to load category synonyms", logger.Err(err))
	}
	deps.Synonyms = dispatch.NewSynonymTable(synonyms)

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = configs.FollowUp.MaxRetries
	deps.Queue = taskqueue.New(taskqueue.Config{
		Workers:     configs.FollowUp.Workers,
		SoftLimit:   configs.FollowUp.QueueSize,
		TaskTimeout: 10 * time.Second,
		Retry:       retryCfg,
	}, zapLogger)

	var bookingUC booking.BookingUC = usecase.NewBookingUC(configs, deps, usecase.WithNewRelic(nrApp))

	var bookingNATS *natsHandler.BookingHandler
	if natsClient != nil {
		var deliver gateway.Deliverer
		if configs.Channel.Transport != "local" {
			deliver = hub
		}
		bookingNATS = natsHandler.NewBookingHandler(natsClient, deliver, invalidate)
	}
	bookingHandler := handler.NewHandler(bookingUC, hub, bookingNATS, rdb, configs)
	if err := bookingHandler.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	// Panic recovery first, then APM so the request logger sees the transaction
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterEndpoints(e, appName, configs.App.Version, healthService)
	bookingHandler.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf("%s:%d", configs.Server.Host, configs.Server.Port)
		zapLogger.Info("Starting HTTP server",
			logger.String("address", addr),
			logger.String("app", appName))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("Received shutdown signal", logger.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	zapLogger.Info("Shutting down HTTP server...")
	if err := e.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	bookingHandler.Close()

	zapLogger.Info("Draining follow-up queue...")
	deps.Queue.Close()

	if nrApp != nil {
		zapLogger.Info("Shutting down New Relic...")
		nrApp.Shutdown(10 * time.Second)
	}

	zapLogger.Info("Server exiting gracefully")
}
