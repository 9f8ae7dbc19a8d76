// Package main is the entry point for the calendarium API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rharbaugh/calendarium/internal/api"
	"github.com/rharbaugh/calendarium/internal/config"
	"github.com/rharbaugh/calendarium/internal/database"
	"github.com/rharbaugh/calendarium/internal/logger"
	"github.com/rharbaugh/calendarium/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.Setup(cfg)
	log.Info("starting calendarium API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
	)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := db.Migrate(ctx)
	if err != nil {
		return err
	}
	log.Info("database ready", slog.String("path", cfg.DatabasePath), slog.Int("migrations_applied", applied))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	almanac := service.New(service.Options{
		FeastsPath: cfg.FeastsPath,
		Location:   loc,
		DB:         db,
		Logger:     log,
	})
	defer almanac.Close()

	if err := almanac.LoadFeasts(ctx); err != nil {
		return fmt.Errorf("load feasts: %w", err)
	}
	if cfg.WatchFeasts && cfg.FeastsPath != "" {
		if err := almanac.WatchFeasts(); err != nil {
			log.Warn("feast file will not be reloaded", slog.Any("error", err))
		}
	}
	if err := almanac.StartScheduler(cfg.RefreshCron); err != nil {
		return err
	}
	almanac.Refresh(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.NewRouter(api.NewHandlers(almanac, db, log), cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("calendarium API ready", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
