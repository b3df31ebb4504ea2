package catalog

// ==================== Schema ====================

// SchemaPath is the path of the catalog schema inside the embedded filesystem
const SchemaPath = "schema/catalog.schema.json"

// ==================== Error Messages ====================

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read catalog file: %w"
	ErrMsgParseConfigFailed    = "failed to parse catalog: %w"
	ErrMsgParseYAMLFailed      = "failed to parse catalog yaml: %w"
)

// Validation error messages (fragments used with error wrapping)
const (
	ErrMsgConfigNil        = "config is nil"
	ErrMsgNoItemsDefined   = "no items defined"
	ErrMsgBadBaseSlotCount = "base_slot_count must be positive"
)

// These format strings are used with fmt.Errorf for detailed error messages
const (
	ErrFmtItemAtIndexEmpty     = "%w: item at index %d has empty id"
	ErrFmtItemNegativeMaxStack = "%w: item '%s' has negative max_stack"
	ErrFmtUnknownItemSlot      = "%w: item '%s' declares unknown slot '%s'"
	ErrFmtBagBadCapacity       = "%w: bag '%s' must have a positive capacity"
	ErrFmtBagStackable         = "%w: bag '%s' cannot stack (max_stack %d)"
	ErrFmtTypeSlotUnknown      = "%w: type '%s' maps to unknown slot '%s'"
	ErrFmtStarterUnknownItem   = "%w: starter kit references unknown item '%s'"
	ErrFmtStarterBadCount      = "%w: starter kit entry '%s' must have a positive count"
)
