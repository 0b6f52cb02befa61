package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/pintwise/internal/adapter/http"
	"github.com/iho/pintwise/internal/adapter/http/handler"
	"github.com/iho/pintwise/internal/adapter/http/middleware"
	redisRepo "github.com/iho/pintwise/internal/adapter/repository/redis"
	"github.com/iho/pintwise/internal/infrastructure/config"
	"github.com/iho/pintwise/internal/infrastructure/idgen"
	"github.com/iho/pintwise/internal/infrastructure/logger"
	"github.com/iho/pintwise/internal/infrastructure/metrics"
	"github.com/iho/pintwise/internal/infrastructure/redis"
	"github.com/iho/pintwise/internal/infrastructure/scheduler"
	"github.com/iho/pintwise/internal/usecase"
)

func main() {
	// Bootstrap logger until configuration is loaded
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("server failed")
	}

	appLogger.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	idGen := idgen.NewULIDGenerator()

	// Store
	store, closeStore, err := openStore(ctx, cfg, idGen, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}
	defer closeStore()

	healthHandler := handler.NewHealthHandler(cfg.StoreBackend, store.Ping)

	ucOpts := []usecase.Option{
		usecase.WithMetrics(m),
		usecase.WithLogger(appLogger),
		usecase.WithStoreTimeout(cfg.StoreTimeout),
	}

	// Redis is optional
	var idempotencyStore usecase.IdempotencyStore
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		appLogger.Info().Msg("connected to redis")

		ucOpts = append(ucOpts, usecase.WithCache(redisRepo.NewCache(redisClient), cfg.BalanceCacheTTL))
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		healthHandler.WithCheck("redis", func(ctx context.Context) error {
			return redis.Ping(ctx, redisClient)
		})
	}

	// Use cases
	entryUC := usecase.NewEntryUseCase(store, ucOpts...)
	balanceUC := usecase.NewBalanceUseCase(store, ucOpts...)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).
		OnReject(m.RateLimitHits.Inc)

	// Background jobs
	jobs := scheduler.New(appLogger)
	if err := jobs.Add("limiter_sweep", cfg.LimiterSweepSchedule, func() {
		removed := rateLimiter.CleanupLimiters()
		appLogger.Debug().Int("removed", removed).Int("remaining", rateLimiter.Size()).Msg("swept idle rate limiters")
	}); err != nil {
		return err
	}
	jobs.Start()
	defer jobs.Stop()

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:     handler.NewEntryHandler(entryUC),
		BalanceHandler:   handler.NewBalanceHandler(balanceUC),
		HealthHandler:    healthHandler,
		Logger:           appLogger,
		Metrics:          m,
		Gatherer:         registry,
		RateLimiter:      rateLimiter,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info().
			Str("port", cfg.HTTPPort).
			Str("store", cfg.StoreBackend).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}
