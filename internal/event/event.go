package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/satchel/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]any

// Event represents a generic event in the system
type Event struct {
	Version  string   `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type     `json:"type"`
	Payload  any      `json:"payload"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) any {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Event types
const (
	InventoryChanged Type = "inventory.changed"
	ProfileCreated   Type = "profile.created"
	ProfileDeleted   Type = "profile.deleted"
	SaveImported     Type = "save.imported"
)

// InventoryChangedPayloadV1 carries the snapshot after an accepted transaction
type InventoryChangedPayloadV1 struct {
	ProfileID string           `json:"profile_id"`
	Operation string           `json:"operation"`
	Inventory *domain.Snapshot `json:"inventory"`
	Timestamp int64            `json:"timestamp"`
}

// ProfilePayloadV1 is the payload for profile lifecycle events
type ProfilePayloadV1 struct {
	ProfileID string `json:"profile_id"`
	Timestamp int64  `json:"timestamp"`
}

// NewInventoryChangedEvent creates a new inventory changed event
func NewInventoryChangedEvent(profileID, operation string, inv *domain.Snapshot) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    InventoryChanged,
		Payload: InventoryChangedPayloadV1{
			ProfileID: profileID,
			Operation: operation,
			Inventory: inv,
			Timestamp: time.Now().Unix(),
		},
		Metadata: Metadata{MetadataKeyProfileID: profileID},
	}
}

// NewProfileEvent creates a profile lifecycle event of the given type
func NewProfileEvent(eventType Type, profileID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: ProfilePayloadV1{
			ProfileID: profileID,
			Timestamp: time.Now().Unix(),
		},
		Metadata: Metadata{MetadataKeyProfileID: profileID},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
