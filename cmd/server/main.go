package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ojala-app/ojala/internal/api"
	"github.com/ojala-app/ojala/internal/conjugator"
	"github.com/ojala-app/ojala/internal/exercise"
	"github.com/ojala-app/ojala/internal/grammar"
	"github.com/ojala-app/ojala/internal/platform/cache"
	"github.com/ojala-app/ojala/internal/platform/config"
	"github.com/ojala-app/ojala/internal/platform/database"
	"github.com/ojala-app/ojala/internal/review"
)

func main() {
	if err := run(); err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	tables := grammar.Builtin()
	if cfg.Data.VerbsDir != "" {
		tables, err = tables.LoadDir(cfg.Data.VerbsDir)
		if err != nil {
			return fmt.Errorf("loading verb datasets: %w", err)
		}
	}
	logger.Info("grammar tables ready", "verbs", tables.Len())

	templates := exercise.BuiltinTemplates()
	if cfg.Data.TemplatesDir != "" {
		templates, err = exercise.LoadTemplatesDir(templates, cfg.Data.TemplatesDir)
		if err != nil {
			return fmt.Errorf("loading exercise templates: %w", err)
		}
	}

	engine := conjugator.New(tables)
	generator := exercise.NewGenerator(engine, exercise.WithTemplates(templates))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var db *database.DB
	if cfg.Database.URL != "" {
		db, err = database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx, review.Schema()); err != nil {
			return err
		}
		logger.Info("database connected")
	} else {
		logger.Warn("no database configured, review cards are in-memory only")
	}

	var redis *cache.Cache
	if cfg.Cache.URL != "" {
		redis, err = cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			return fmt.Errorf("connecting to cache: %w", err)
		}
		defer redis.Close()
		logger.Info("cache connected")
	}

	registry := review.NewRegistry(storeFactory(db))

	server := api.NewServer(api.Config{
		Logger:        logger,
		Engine:        engine,
		Generator:     generator,
		Registry:      registry,
		DB:            db,
		Cache:         redis,
		KeyHash:       cfg.Auth.KeyHash,
		SessionTTL:    cfg.Cache.SessionTTL,
		WriteTimeout:  cfg.Session.WriteTimeout,
		ExerciseBatch: cfg.Session.ExerciseBatch,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	// No global read/write timeouts: the practice websocket outlives any
	// sane value and manages its own per-message deadlines.
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// storeFactory picks the card-store backend: postgres when a pool exists,
// per-learner memory stores otherwise.
func storeFactory(db *database.DB) review.StoreFactory {
	if db == nil {
		return nil
	}
	return func(learnerID string) (review.Store, error) {
		return review.NewPostgresStore(db.Pool, learnerID)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
