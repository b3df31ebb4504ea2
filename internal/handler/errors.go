package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query and path parameter error messages
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"
	ErrMsgMissingProfileID  = "Missing profile ID"

	// Save transfer error messages
	ErrMsgReadSaveFailed   = "Failed to read save data"
	ErrMsgEmptySave        = "Save data is empty"
	ErrMsgExportSaveFailed = "Failed to export save"
)

// Success messages for API responses
const (
	MsgProfileDeleted = "Profile deleted"
	MsgSaveImported   = "Save imported"
)

// Log messages
const (
	LogMsgDecodeFailedFormat   = "Failed to decode %s request"
	LogMsgDecodedFormat        = "%s request decoded"
	LogMsgInvalidRequest       = "Invalid request"
	LogMsgServiceErrorFormat   = "%s failed"
	LogMsgReadinessCheckFailed = "Readiness check failed"
	LogMsgEncodeResponseFailed = "Failed to encode JSON response"
	LogMsgWriteResponseFailed  = "Failed to write response buffer"
)
