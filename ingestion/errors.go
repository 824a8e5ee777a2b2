package ingestion

import "errors"

var (
	// ErrStoreRequired is returned when a pipeline is built without a media store.
	ErrStoreRequired = errors.New("media store required")

	// ErrSamplerRequired is returned when a pipeline is built without a frame sampler.
	ErrSamplerRequired = errors.New("frame sampler required")

	// ErrAIProviderRequired is returned when a pipeline is built without an AI provider.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrIndexRequired is returned when a pipeline is built without a vector index.
	ErrIndexRequired = errors.New("vector index required")
)
