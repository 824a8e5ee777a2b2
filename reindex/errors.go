package reindex

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrUnknownCollection is returned when the configured collection is not
	// one of the fixed per-modality names.
	ErrUnknownCollection = errors.New("unknown collection")
)
