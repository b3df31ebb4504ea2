package stream

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// Connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second

	// PongWait is how long a websocket peer may stay silent before it is dropped
	PongWait = 2 * KeepaliveInterval

	// WebSocketBufferSize is the upgrader read and write buffer size
	WebSocketBufferSize = 16 * 1024
)

// Event types pushed to clients
const (
	// EventTypeConnected is the first message of every stream
	EventTypeConnected = "connected"

	// EventTypeInventoryChanged is sent after an accepted inventory transaction
	EventTypeInventoryChanged = "inventory.changed"

	// EventTypeProfileDeleted is sent when the watched profile is removed
	EventTypeProfileDeleted = "profile.deleted"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected     = "Stream client connected"
	LogMsgClientDisconnected  = "Stream client disconnected"
	LogMsgEventBroadcast      = "Broadcasting stream event"
	LogMsgEventDropped        = "Stream broadcast buffer full, event dropped"
	LogMsgWriteError          = "Failed to write stream event"
	LogMsgUpgradeFailed       = "WebSocket upgrade failed"
	LogMsgSubscriberReady     = "Stream subscriber registered for event types"
	LogMsgPayloadDecodeFailed = "Failed to decode stream event payload"
	LogMsgMissingProfileID    = "Stream event without profile id"
)
