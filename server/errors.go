package server

import "errors"

var (
	// ErrPipelineRequired is returned when a server is built without a pipeline.
	ErrPipelineRequired = errors.New("ingestion pipeline required")

	// ErrSearcherRequired is returned when a server is built without a searcher.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrIndexRequired is returned when a server is built without a vector index.
	ErrIndexRequired = errors.New("vector index required")
)
