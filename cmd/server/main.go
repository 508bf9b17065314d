package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/pizzeria/internal/api"
	"github.com/mcoot/pizzeria/internal/api/middleware"
	"github.com/mcoot/pizzeria/internal/config"
	"github.com/mcoot/pizzeria/internal/factory"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		slog.Error("invalid log level", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Create application factory
	app, err := factory.New(ctx, factory.Config{
		Settings: *cfg,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close backends", slog.String("error", err.Error()))
		}
	}()

	handler := api.NewHandler(api.RouterConfig{
		Logger:           logger,
		IdentityResolver: app.IdentityResolver,
		SessionService:   app.SessionService,
		AddressService:   app.AddressService,
		PaymentService:   app.PaymentService,
		CatalogService:   app.CatalogService,
		Cookie: middleware.CookieConfig{
			Secret: cfg.Session.CookieSecret,
			Secure: cfg.Session.SecureCookie,
		},
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	server := api.NewServer(handler, cfg.Server, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			cancel()
			_ = app.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("server stopped")
}
