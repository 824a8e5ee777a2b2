package search

import "errors"

var (
	// ErrEmptyQuery indicates a blank or whitespace-only query string.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrUnknownCollection indicates a collection name outside the fixed
	// per-modality set.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrEmbedderRequired is returned when a searcher is built without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrIndexRequired is returned when a searcher is built without a vector index.
	ErrIndexRequired = errors.New("vector index required")
)
