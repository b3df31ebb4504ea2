package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Profile Operations
const (
	ErrMsgFailedToInsertProfile = "failed to insert profile"
	ErrMsgFailedToGetSave       = "failed to get save"
	ErrMsgFailedToUpdateSave    = "failed to update save"
	ErrMsgFailedToDeleteProfile = "failed to delete profile"
	ErrMsgFailedToListProfiles  = "failed to list profiles"
)
