package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gmartbd/storefront-api/internal/api"
	"github.com/gmartbd/storefront-api/internal/compare"
	"github.com/gmartbd/storefront-api/internal/config"
	"github.com/gmartbd/storefront-api/internal/session"
	"github.com/gmartbd/storefront-api/internal/upstream"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Session store: Redis when configured, in-memory otherwise
	var store session.Store
	if cfg.Redis.URL != "" {
		client, err := session.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer client.Close()
		store = session.NewRedisStore(client)
		logger.Info("Session store backed by Redis")
	} else {
		store = session.NewMemoryStore()
		logger.Warn("REDIS_URL not set, session state is in-memory and lost on restart")
	}

	client := upstream.NewClient(cfg.Upstream, logger)
	manager := compare.NewManager(store, logger)
	router := api.NewRouter(cfg, client, manager, store, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Storefront API listening",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
