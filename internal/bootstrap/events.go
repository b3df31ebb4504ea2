package bootstrap

import (
	"log/slog"

	"github.com/osse101/satchel/internal/event"
	"github.com/osse101/satchel/internal/metrics"
	"github.com/osse101/satchel/internal/stream"
)

// InitializeEventSystem creates the event bus and the stream hub, then
// registers the bus subscribers:
// - metrics collector (counts published events by type)
// - stream subscriber (pushes profile events to SSE and WebSocket clients)
//
// The hub is started; stop it during shutdown.
func InitializeEventSystem() (event.Bus, *stream.Hub) {
	bus := event.NewMemoryBus()

	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	hub := stream.NewHub()
	hub.Start()
	stream.NewSubscriber(hub, bus).Subscribe()

	slog.Info(LogMsgEventSystemInitialized)
	return bus, hub
}
