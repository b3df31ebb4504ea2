package metrics

import (
	"context"

	"github.com/osse101/satchel/internal/event"
	"github.com/osse101/satchel/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{
		event.InventoryChanged,
		event.ProfileCreated,
		event.ProfileDeleted,
		event.SaveImported,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent counts the event by type
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()
	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// RecordTransaction counts one inventory transaction outcome
func RecordTransaction(op, result string) {
	InventoryTransactions.WithLabelValues(op, result).Inc()
}
