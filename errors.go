package cmusearch

import "errors"

// Sentinel errors backing the error taxonomy. Callers branch on error
// class with errors.Is; every returned error wraps one of these so the
// host never has to parse a message to decide how to recover.
var (
	// ErrInputMalformed means serialized input could not be parsed, or
	// required fields were missing. The call is rejected; engine state
	// is unchanged.
	ErrInputMalformed = errors.New("cmusearch: input malformed")

	// ErrVersionMismatch means a cached index carries an unrecognized
	// schema version. The host should rebuild from sources.
	ErrVersionMismatch = errors.New("cmusearch: cached index version mismatch")

	// ErrNotInitialized means search or count was requested before the
	// engine was built or restored.
	ErrNotInitialized = errors.New("cmusearch: engine not initialized")

	// ErrInvalidConfig means a weight was negative, or a source in the
	// config was not present in the document set (or vice versa).
	ErrInvalidConfig = errors.New("cmusearch: invalid config")
)
