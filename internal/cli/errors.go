package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Configuration errors
	ErrConfigInvalid       = "CONFIG_INVALID"
	ErrLibraryNotSpecified = "LIBRARY_NOT_SPECIFIED"

	// Filter errors
	ErrInvalidFilter = "INVALID_FILTER"

	// Date errors
	ErrInvalidDate = "INVALID_DATE"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Remote library errors
	ErrRemoteQuery  = "REMOTE_QUERY_FAILED"
	ErrRemoteUpdate = "REMOTE_UPDATE_FAILED"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"
)

// Warning codes for non-fatal issues.
const (
	WarnDateUnparseable = "DATE_UNPARSEABLE"
	WarnDateOutOfRange  = "DATE_OUT_OF_RANGE"
)
