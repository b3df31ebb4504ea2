// @title satchel API
// @version 1.0
// @description Inventory and equipment engine: nested bags, equipment slots and versioned saves.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
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

	"github.com/osse101/satchel/internal/bootstrap"
	"github.com/osse101/satchel/internal/config"
	"github.com/osse101/satchel/internal/handler"
	"github.com/osse101/satchel/internal/inventory"
	"github.com/osse101/satchel/internal/profile"
	"github.com/osse101/satchel/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg, newLoggerConfig(cfg))
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Warn("Environment validation failed", "error", err)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	handler.InitValidator()

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}

	bus, hub := bootstrap.InitializeEventSystem()

	svc := profile.NewService(storage.Profiles, inventory.NewEngine(cat), nil, bus, profile.Config{
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	})

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, svc, cat, hub)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:         srv,
		ProfileService: svc,
		Hub:            hub,
		Storage:        storage,
	})
	return runErr
}
