// Command server runs the gymstream backend.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gymstream/handlers"
	"gymstream/internal/auth"
	"gymstream/internal/config"
	"gymstream/internal/database"
	"gymstream/internal/logging"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logging.New("error", "").Error("invalid configuration", "error", err)
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFile)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Error("failed to create data directory", "dir", cfg.DataDir, "error", err)
		return err
	}

	db, err := database.NewDB(database.Config{DatabasePath: filepath.Join(cfg.DataDir, "gymstream.db")})
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return err
	}
	defer db.Close()

	if err := database.EnsureDefaultAdmin(database.NewUserRepository(db.Connection()), logger); err != nil {
		logger.Error("failed to seed admin account", "error", err)
		return err
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("invalid token configuration", "error", err)
		return err
	}

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handlers.NewHandler(db, tokens, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
