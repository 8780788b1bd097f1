package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ncaufield/devportal/internal/config"
	"github.com/ncaufield/devportal/pkg/api"
	"github.com/ncaufield/devportal/pkg/cache"
	"github.com/ncaufield/devportal/pkg/core/services"
	"github.com/ncaufield/devportal/pkg/postgres"
	"github.com/ncaufield/devportal/pkg/utils/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; environment variables override the config file
	godotenv.Load()

	logger, err := logging.InitLogger("server", os.Getenv("DEVPORTAL_DEBUG") != "")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Loading configuration")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()

	logger.Info("Connecting to database")
	database, err := postgres.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	logger.Info("Running migrations")
	if err := database.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var statusCache services.StatusCache
	if cfg.RedisAddr != "" {
		ttl := time.Duration(cfg.HealthCacheTTL) * time.Second
		if ttl == 0 {
			ttl = time.Minute
		}
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		statusCache = cache.New(redisClient, ttl)
		logger.Info("Health cache enabled", zap.String("redis_addr", cfg.RedisAddr), zap.Duration("ttl", ttl))
	} else {
		logger.Info("Health cache disabled, every request hits the upstream")
	}

	hub := api.NewHub(logger)
	tokens := api.NewTokenService(cfg.JWTSecret)
	jwtAuth := jwtauth.New("HS256", []byte(cfg.JWTSecret), nil)
	fetcher := api.NewHTTPHealthFetcher(cfg.Landscapes)

	server := api.NewServer(database, statusCache, fetcher, hub, tokens, logger, cfg.Years)
	router := api.NewRouter(server, hub, jwtAuth, logger)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.Int("port", cfg.ServerPort))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	return nil
}
