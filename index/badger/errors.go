package badger

import "errors"

// ErrBackendRequired is returned when a backend is not provided.
var ErrBackendRequired = errors.New("backend required")
