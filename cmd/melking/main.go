package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"melking/internal/backend"
	"melking/internal/cache"
	"melking/internal/cli"
	"melking/internal/config"
	apphttp "melking/internal/http"
	"melking/internal/log"
	"melking/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.Level())
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	res, err := backend.NewFactory(logger).CreateBackend(startCtx, bcfg)
	cancel()
	if err != nil {
		logger.Failure(context.Background(), "Failed to initialize data backend", log.OpStartup, err, nil)
		os.Exit(1)
	}

	summaries := services.NewSummaryService(res.Backend, cfg.CacheTTL)

	var janitor *cache.Janitor
	if c := summaries.Cache(); c != nil {
		janitor = cache.NewJanitor(c)
		janitor.Start(cfg.CacheTTL)
	}

	checks := map[string]apphttp.ReadinessCheck{}
	if res.Ping != nil {
		checks[bcfg.Type.String()] = res.Ping
	}

	srv := apphttp.NewServer(":"+cfg.Port, summaries, apphttp.Options{
		Calendar:       cfg.CalendarSystem(),
		RequestTimeout: cfg.RequestTimeout,
		Logger:         logger,
		Checks:         checks,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) error {
		var errs []error
		errs = append(errs, srv.Shutdown(ctx))
		if janitor != nil {
			errs = append(errs, janitor.Stop(ctx))
		}
		if res.Cleanup != nil {
			errs = append(errs, res.Cleanup())
		}
		return errors.Join(errs...)
	})

	logger.Info("Starting melking server",
		"port", cfg.Port,
		log.FieldBackend, bcfg.Type.String(),
		"calendar", cfg.CalendarSystem(),
		"cache_ttl", cfg.CacheTTL.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
