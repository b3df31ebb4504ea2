package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileFromQuery(r *http.Request) string {
	return r.URL.Query().Get("profile")
}

// readSSEEvent reads lines until a blank line and returns the decoded data line
func readSSEEvent(t *testing.T, r *bufio.Reader) Event {
	t.Helper()
	var data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(line, "data: ")
		}
	}
	var e Event
	require.NoError(t, json.Unmarshal([]byte(data), &e))
	return e
}

func TestSSEHandler(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(SSEHandler(hub, profileFromQuery))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?profile=alice", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	hello := readSSEEvent(t, reader)
	assert.Equal(t, EventTypeConnected, hello.Type)
	assert.Equal(t, "alice", hello.ProfileID)

	waitForClients(t, hub, 1)
	hub.Broadcast("bob", EventTypeInventoryChanged, "not for alice")
	hub.Broadcast("alice", EventTypeInventoryChanged, map[string]any{"operation": "place"})

	got := readSSEEvent(t, reader)
	assert.Equal(t, EventTypeInventoryChanged, got.Type)
	assert.Equal(t, "alice", got.ProfileID)

	cancel()
	waitForClients(t, hub, 0)
}

func TestWebSocketHandler(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(WebSocketHandler(hub, profileFromQuery))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?profile=alice"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var hello Event
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, EventTypeConnected, hello.Type)

	waitForClients(t, hub, 1)
	hub.Broadcast("alice", EventTypeInventoryChanged, map[string]any{"operation": "equip"})

	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventTypeInventoryChanged, got.Type)
	assert.Equal(t, map[string]any{"operation": "equip"}, got.Payload)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}

func TestWebSocketHandler_HubShutdownClosesConnection(t *testing.T) {
	hub := NewHub()
	hub.Start()
	srv := httptest.NewServer(WebSocketHandler(hub, profileFromQuery))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?profile=alice"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var hello Event
	require.NoError(t, conn.ReadJSON(&hello))
	waitForClients(t, hub, 1)

	hub.Stop()

	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}
