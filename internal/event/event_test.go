package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/satchel/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event

	bus.Subscribe(InventoryChanged, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	inv := &domain.Snapshot{BaseSlots: []*domain.Slot{{ItemID: "rope", Count: 1}}}
	require.NoError(t, bus.Publish(context.Background(), NewInventoryChangedEvent("alice", "place", inv)))
	require.NoError(t, bus.Publish(context.Background(), NewProfileEvent(ProfileCreated, "alice")))

	require.Len(t, got, 1, "only the subscribed type is delivered")
	assert.Equal(t, EventSchemaVersion, got[0].Version)
	assert.Equal(t, "alice", got[0].GetMetadataValue(MetadataKeyProfileID))

	payload, err := DecodePayload[InventoryChangedPayloadV1](got[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, "place", payload.Operation)
	assert.Same(t, inv, payload.Inventory)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	var order []int

	bus.Subscribe(ProfileDeleted, func(ctx context.Context, e Event) error {
		order = append(order, 1)
		return nil
	})
	bus.Subscribe(ProfileDeleted, func(ctx context.Context, e Event) error {
		order = append(order, 2)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewProfileEvent(ProfileDeleted, "bob")))
	assert.Equal(t, []int{1, 2}, order)
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	called := false

	bus.Subscribe(SaveImported, func(ctx context.Context, e Event) error {
		return errors.New("handler error")
	})
	bus.Subscribe(SaveImported, func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	err := bus.Publish(context.Background(), NewProfileEvent(SaveImported, "carol"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 errors")
	assert.True(t, called, "a failing handler does not stop later handlers")
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]any{"profile_id": "dave", "timestamp": float64(12)}

	payload, err := DecodePayload[ProfilePayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, ProfilePayloadV1{ProfileID: "dave", Timestamp: 12}, payload)
}

func TestDecodePayload(t *testing.T) {
	want := ProfilePayloadV1{ProfileID: "erin", Timestamp: 7}

	tests := []struct {
		name    string
		payload any
		wantErr bool
	}{
		{"value", want, false},
		{"pointer", &want, false},
		{"raw json", json.RawMessage(`{"profile_id":"erin","timestamp":7}`), false},
		{"bytes", []byte(`{"profile_id":"erin","timestamp":7}`), false},
		{"nil", nil, true},
		{"nil pointer", (*ProfilePayloadV1)(nil), true},
		{"malformed json", json.RawMessage(`{"profile_id":`), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePayload[ProfilePayloadV1](tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
