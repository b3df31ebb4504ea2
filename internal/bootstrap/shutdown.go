package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/satchel/internal/server"
	"github.com/osse101/satchel/internal/stream"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server         *server.Server
	ProfileService shutdownableService
	Hub            *stream.Hub
	Storage        *Storage
}

// GracefulShutdown stops the application in order:
// 1. HTTP server (stop accepting new requests)
// 2. Stream hub (close live connections)
// 3. Profile service (wait for in-flight transactions)
// 4. Storage (release connections last)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Hub != nil {
		slog.Info(LogMsgStoppingStreamHub)
		components.Hub.Stop()
	}

	if components.ProfileService != nil {
		shutdownService(ctx, ServiceNameProfile, components.ProfileService)
	}

	if components.Storage != nil {
		if err := components.Storage.Close(); err != nil {
			slog.Error(LogMsgStorageCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
