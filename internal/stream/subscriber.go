package stream

import (
	"context"
	"log/slog"

	"github.com/osse101/satchel/internal/event"
)

// Subscriber bridges the internal event bus to the stream hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new stream subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.InventoryChanged, s.handleInventoryChanged)
	s.bus.Subscribe(event.SaveImported, s.handleInventoryChanged)
	s.bus.Subscribe(event.ProfileDeleted, s.handleProfileDeleted)

	slog.Info(LogMsgSubscriberReady,
		"types", []string{
			string(event.InventoryChanged),
			string(event.SaveImported),
			string(event.ProfileDeleted),
		})
}

func (s *Subscriber) handleInventoryChanged(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.InventoryChangedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
	}
	if payload.ProfileID == "" {
		payload.ProfileID = profileIDFromMetadata(evt)
	}
	if payload.ProfileID == "" {
		slog.Warn(LogMsgMissingProfileID, "type", evt.Type)
		return nil
	}

	s.hub.Broadcast(payload.ProfileID, EventTypeInventoryChanged, payload)
	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeInventoryChanged,
		"profile_id", payload.ProfileID,
		"operation", payload.Operation)
	return nil
}

func (s *Subscriber) handleProfileDeleted(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ProfilePayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
	}
	if payload.ProfileID == "" {
		payload.ProfileID = profileIDFromMetadata(evt)
	}
	if payload.ProfileID == "" {
		return nil
	}
	s.hub.Broadcast(payload.ProfileID, EventTypeProfileDeleted, payload)
	return nil
}

func profileIDFromMetadata(evt event.Event) string {
	id, _ := evt.GetMetadataValue(event.MetadataKeyProfileID).(string)
	return id
}
