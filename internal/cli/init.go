// Package cli provides common CLI initialization utilities.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"melking/internal/log"
)

// SetupLogger builds the process logger at level and installs it as the
// slog default.
func SetupLogger(level slog.Level) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = level
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// GracefulShutdown calls shutdown with a timeout-bound context on SIGINT or
// SIGTERM. The returned channel is closed once shutdown has returned.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, shutdown func(ctx context.Context) error) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := shutdown(ctx); err != nil {
			logger.Failure(ctx, "Shutdown error", log.OpShutdown, err, nil)
			return
		}
		logger.Info("Shutdown complete")
	}()

	return done
}
