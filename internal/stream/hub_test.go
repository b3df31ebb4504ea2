package stream

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/satchel/internal/event"
	"github.com/osse101/satchel/internal/testing/leaktest"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e, ok := <-c.EventChannel:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_BroadcastRoutesByProfile(t *testing.T) {
	hub := startHub(t)

	alice := hub.Register("alice")
	bob := hub.Register("bob")
	waitForClients(t, hub, 2)

	hub.Broadcast("alice", EventTypeInventoryChanged, "payload")

	got := receive(t, alice)
	assert.Equal(t, EventTypeInventoryChanged, got.Type)
	assert.Equal(t, "alice", got.ProfileID)
	assert.Equal(t, "payload", got.Payload)
	assert.NotEmpty(t, got.ID)

	select {
	case e := <-bob.EventChannel:
		t.Fatalf("bob received an event for another profile: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)

	c := hub.Register("alice")
	waitForClients(t, hub, 1)

	hub.Unregister(c.ID)
	waitForClients(t, hub, 0)

	_, ok := <-c.EventChannel
	assert.False(t, ok)
}

func TestHub_StopClosesClientsAndLeaksNothing(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	hub := NewHub()
	hub.Start()
	c := hub.Register("alice")
	waitForClients(t, hub, 1)

	hub.Stop()
	hub.Stop()

	_, ok := <-c.EventChannel
	assert.False(t, ok)

	late := hub.Register("bob")
	_, ok = <-late.EventChannel
	assert.False(t, ok, "registering after stop yields a closed channel")
	hub.Unregister(late.ID)

	checker.Check(0)
}

func TestHub_StopClosesQueuedRegistrations(t *testing.T) {
	// Without Start nothing drains the register queue
	hub := NewHub()
	queued := []*Client{hub.Register("alice"), hub.Register("bob")}

	hub.Stop()

	for _, c := range queued {
		select {
		case _, ok := <-c.EventChannel:
			assert.False(t, ok, "client %s channel should be closed", c.ProfileID)
		case <-time.After(time.Second):
			t.Fatalf("client %s channel left open after Stop", c.ProfileID)
		}
	}

	late := hub.Register("carol")
	_, ok := <-late.EventChannel
	assert.False(t, ok)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "e1", Type: EventTypeInventoryChanged, ProfileID: "alice"})
	require.NoError(t, err)

	s := string(msg)
	assert.True(t, strings.HasPrefix(s, "id: e1\nevent: inventory.changed\ndata: {"))
	assert.True(t, strings.HasSuffix(s, "}\n\n"))
	assert.Contains(t, s, `"profile_id":"alice"`)
}

func TestSubscriber_ForwardsBusEvents(t *testing.T) {
	hub := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	c := hub.Register("alice")
	waitForClients(t, hub, 1)

	require.NoError(t, bus.Publish(context.Background(), event.NewInventoryChangedEvent("alice", "place", nil)))
	got := receive(t, c)
	assert.Equal(t, EventTypeInventoryChanged, got.Type)
	payload, ok := got.Payload.(event.InventoryChangedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "place", payload.Operation)

	require.NoError(t, bus.Publish(context.Background(), event.NewProfileEvent(event.ProfileDeleted, "alice")))
	assert.Equal(t, EventTypeProfileDeleted, receive(t, c).Type)

	// events without a profile are ignored
	require.NoError(t, bus.Publish(context.Background(), event.Event{Type: event.InventoryChanged}))
}

func TestSubscriber_DecodesPayloadWithoutMetadata(t *testing.T) {
	hub := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	c := hub.Register("alice")
	waitForClients(t, hub, 1)
	ctx := context.Background()

	tests := []struct {
		name    string
		evt     event.Event
		wantOp  string
		wantTyp string
	}{
		{
			name: "payload pointer",
			evt: event.Event{Type: event.InventoryChanged, Payload: &event.InventoryChangedPayloadV1{
				ProfileID: "alice", Operation: "drop",
			}},
			wantOp:  "drop",
			wantTyp: EventTypeInventoryChanged,
		},
		{
			name: "payload map from a decoded envelope",
			evt: event.Event{Type: event.SaveImported, Payload: map[string]any{
				"profile_id": "alice", "operation": "import",
			}},
			wantOp:  "import",
			wantTyp: EventTypeInventoryChanged,
		},
		{
			name: "raw json payload",
			evt: event.Event{Type: event.InventoryChanged,
				Payload: json.RawMessage(`{"profile_id":"alice","operation":"sort"}`)},
			wantOp:  "sort",
			wantTyp: EventTypeInventoryChanged,
		},
		{
			name: "profile from metadata when payload is missing",
			evt: event.Event{Type: event.InventoryChanged,
				Metadata: event.Metadata{event.MetadataKeyProfileID: "alice"}},
			wantTyp: EventTypeInventoryChanged,
		},
		{
			name:    "profile deleted payload",
			evt:     event.Event{Type: event.ProfileDeleted, Payload: event.ProfilePayloadV1{ProfileID: "alice"}},
			wantTyp: EventTypeProfileDeleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, bus.Publish(ctx, tt.evt))

			got := receive(t, c)
			assert.Equal(t, tt.wantTyp, got.Type)
			assert.Equal(t, "alice", got.ProfileID)
			if tt.wantTyp == EventTypeInventoryChanged {
				payload, ok := got.Payload.(event.InventoryChangedPayloadV1)
				require.True(t, ok)
				assert.Equal(t, "alice", payload.ProfileID)
				assert.Equal(t, tt.wantOp, payload.Operation)
			}
		})
	}

	t.Run("undecodable payload without metadata is dropped", func(t *testing.T) {
		require.NoError(t, bus.Publish(ctx, event.Event{Type: event.InventoryChanged, Payload: "garbage"}))
		select {
		case e := <-c.EventChannel:
			t.Fatalf("unexpected event: %+v", e)
		case <-time.After(50 * time.Millisecond):
		}
	})
}
