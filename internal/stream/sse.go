package stream

import (
	"log/slog"
	"net/http"
	"time"
)

// ProfileIDFunc extracts the watched profile id from a request
type ProfileIDFunc func(r *http.Request) string

// SSEHandler returns an HTTP handler streaming a profile's events as server-sent events
func SSEHandler(hub *Hub, profileID ProfileIDFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		client := hub.Register(profileID(r))
		slog.Info(LogMsgClientConnected,
			"transport", "sse",
			"client_id", client.ID,
			"profile_id", client.ProfileID)

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected,
				"transport", "sse",
				"client_id", client.ID)
		}()

		if msg, err := FormatSSEMessage(connectedEvent(client)); err == nil {
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// hub is shutting down
					return
				}

				msg, err := FormatSSEMessage(event)
				if err != nil {
					slog.Error(LogMsgWriteError, "error", err)
					continue
				}
				if _, err := w.Write(msg); err != nil {
					slog.Warn(LogMsgWriteError, "error", err)
					return
				}
				flusher.Flush()

			case <-ticker.C:
				msg, _ := FormatSSEMessage(Event{
					Type:      EventTypeKeepalive,
					ProfileID: client.ProfileID,
					Timestamp: time.Now().Unix(),
				})
				if _, err := w.Write(msg); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
