package stream

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketHandler returns an HTTP handler streaming a profile's events over a websocket.
// Clients only listen; anything they send is read and discarded.
func WebSocketHandler(hub *Hub, profileID ProfileIDFunc) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  WebSocketBufferSize,
		WriteBufferSize: WebSocketBufferSize,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := profileID(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn(LogMsgUpgradeFailed, "error", err, "profile_id", id)
			return
		}
		defer conn.Close()

		client := hub.Register(id)
		slog.Info(LogMsgClientConnected,
			"transport", "websocket",
			"client_id", client.ID,
			"profile_id", id)

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected,
				"transport", "websocket",
				"client_id", client.ID)
		}()

		// Reader goroutine: keeps pong handling alive and notices the peer going away.
		closed := make(chan struct{})
		_ = conn.SetReadDeadline(time.Now().Add(PongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(PongWait))
		})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		if err := writeEvent(conn, connectedEvent(client)); err != nil {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-closed:
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
						time.Now().Add(time.Second))
					return
				}
				if err := writeEvent(conn, event); err != nil {
					slog.Warn(LogMsgWriteError, "error", err, "client_id", client.ID)
					return
				}

			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteTimeout)); err != nil {
					return
				}
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, event Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	return conn.WriteJSON(event)
}
