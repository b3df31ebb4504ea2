package profile

import "time"

// Operation names, used as metric labels and event operations
const (
	OpCreate         = "create"
	OpPlace          = "place"
	OpMove           = "move"
	OpEquip          = "equip"
	OpEquipBag       = "equip_bag"
	OpDropEquipped   = "drop_equipped"
	OpUnequip        = "unequip"
	OpDeleteFromSlot = "delete"
	OpDeleteEquipped = "delete_equipped"
	OpConsume        = "consume"
	OpMarkSeen       = "seen"
	OpImport         = "import"
)

// Profile id limits
const (
	MaxProfileIDLength = 64
)

// Cache defaults
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 10 * time.Minute
)

// Error messages
const (
	ErrMsgShuttingDown       = "profile service is shutting down"
	ErrMsgShutdownTimedOut   = "shutdown timed out"
	ErrMsgFailedToLoadSave   = "failed to load save"
	ErrMsgFailedToPersist    = "failed to persist save"
	ErrMsgInvalidProfileID   = "profile id must be 1-64 characters of letters, digits, '-' or '_'"
	ErrMsgFailedToEncodeSave = "failed to encode save"
)

// Log messages
const (
	LogMsgProfileCreated      = "Profile created"
	LogMsgProfileDeleted      = "Profile deleted"
	LogMsgSaveImported        = "Save imported"
	LogMsgTransactionApplied  = "Inventory transaction applied"
	LogMsgTransactionRejected = "Inventory transaction rejected"
	LogMsgPublishFailed       = "Failed to publish event"
	LogMsgPartialPlacement    = "Placement stopped early, inventory full"
)
