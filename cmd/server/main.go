package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neexbeast/trip-planner/internal/api"
	"github.com/neexbeast/trip-planner/internal/cache"
	"github.com/neexbeast/trip-planner/internal/config"
	"github.com/neexbeast/trip-planner/internal/source"
	"github.com/neexbeast/trip-planner/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "err", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	var (
		opts        []source.Option
		dbPinger    api.Pinger
		cachePinger api.Pinger
		history     api.HistoryRepo
	)

	// Redis is optional; without it every search hits the data source.
	if cfg.RedisURL != "" {
		searchCache, err := cache.Open(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = searchCache.Close() }()

		opts = append(opts, source.WithDecorator(cache.Decorator(searchCache, log)))
		cachePinger = searchCache
		log.Info("search cache enabled", "ttl", cfg.CacheTTL)
	}

	// Postgres is optional; without it the history endpoints answer 503.
	if cfg.DatabaseURL != "" {
		pool, err := storage.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		if err := storage.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations applied")

		history = storage.NewRepository(pool)
		dbPinger = pool
	}

	browser := source.NewChromeBrowser(cfg.Scraper.Headless, cfg.Scraper.UserAgent)
	factory := source.NewFactory(cfg.SourceConfig(), browser, log, opts...)
	log.Info("data source selected", "mode", factory.Mode(), "origin", cfg.DefaultOrigin)

	handlers := api.NewHandlers(factory, history, cfg.DefaultOrigin, log)
	router := api.NewRouter(handlers, api.RouterConfig{
		CORSOrigins:        cfg.CORSOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, dbPinger, cachePinger, log)

	// Scraper calls can take the whole browser timeout, so writes get headroom.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Scraper.Timeout*2 + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}
