package ai

import "context"

// Embedder generates fixed-dimensional vector embeddings for semantic
// similarity search. Text and image embeddings share one vector space, which
// is what makes a text query against an image collection meaningful at all.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedImage generates a vector embedding for the image at imagePath,
	// in the same vector space as EmbedText.
	// Returns an error if the file cannot be read or embedding fails.
	EmbedImage(ctx context.Context, imagePath string) ([]float32, error)
}

// Captioner produces a short natural-language description of an image.
// Implementations must be thread-safe for concurrent use.
type Captioner interface {
	// Caption describes the image at imagePath in one short sentence.
	// Returns an error if the file cannot be read or the model fails.
	Caption(ctx context.Context, imagePath string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Captioner
// instances, ensuring they share configuration and resources.
type Provider interface {
	// Embedder returns the embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Captioner returns the caption service.
	// The returned Captioner is safe for concurrent use.
	Captioner() Captioner

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
