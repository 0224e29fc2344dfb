package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/office-seat-booking/internal/app"
	"github.com/nekogravitycat/office-seat-booking/internal/config"
	"github.com/nekogravitycat/office-seat-booking/internal/db"
	"github.com/nekogravitycat/office-seat-booking/internal/logging"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/cache"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.IsProduction)
	slog.SetDefault(logger)
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		fatal(logger, "failed to connect to db", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		fatal(logger, "failed to apply schema", err)
	}

	// Redis is optional, the services fall back to direct lookups.
	var lookupCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
			Prefix:   "seats:",
		})
		if err != nil {
			logger.Warn("redis unavailable, lookup cache disabled", slog.Any("error", err))
		} else {
			defer redisCache.Close()
			lookupCache = redisCache
		}
	}

	container, err := app.NewContainer(app.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		DBPool:            pool,
		Cache:             lookupCache,
		Logger:            logger,
		JWTSecret:         cfg.JWTSecret,
		JWTTTL:            cfg.JWTAccessTokenTTL,
		BcryptCost:        cfg.BcryptCost,
		AdminEmails:       cfg.AdminEmails,
		Location:          cfg.Location,
		StoragePath:       cfg.StoragePath,
		FloorPlanMaxBytes: cfg.FloorPlanMaxBytes,
	})
	if err != nil {
		fatal(logger, "failed to build application", err)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info("server running",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("timezone", cfg.Location.String()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "server error", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("error", err))
	}

	logger.Info("server exited gracefully")
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
