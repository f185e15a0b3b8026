// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts and agents.
const (
	// Dataset errors
	ErrDatasetNotFound     = "DATASET_NOT_FOUND"
	ErrDatasetNotSpecified = "DATASET_NOT_SPECIFIED"
	ErrConfigInvalid       = "CONFIG_INVALID"

	// Store errors
	ErrStoreInvalid  = "STORE_INVALID"
	ErrStoreNotFound = "STORE_NOT_FOUND"

	// Check errors
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrAuditFailed      = "AUDIT_FAILED"
	ErrReleaseFailed    = "RELEASE_FAILED"
	ErrManifestInvalid  = "MANIFEST_INVALID"

	// Build errors
	ErrBuildFailed    = "BUILD_FAILED"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Index errors
	ErrDatabaseError = "DATABASE_ERROR"
	ErrIndexLocked   = "INDEX_LOCKED"
	ErrPlantNotFound = "PLANT_NOT_FOUND"

	// Input errors
	ErrInvalidInput     = "INVALID_INPUT"
	ErrLocaleUnknown    = "LOCALE_UNKNOWN"
	ErrCategoryUnknown  = "CATEGORY_UNKNOWN"
	ErrCategoryEmpty    = "CATEGORY_EMPTY"
	ErrDocsTopicUnknown = "DOCS_TOPIC_UNKNOWN"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
