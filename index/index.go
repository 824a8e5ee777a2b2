package index

import "context"

// Entry is one stored unit in the vector index: a fixed-dimensional vector
// paired with its metadata envelope and a short display document.
type Entry struct {
	ID       string
	Vector   []float32
	Metadata map[string]string
	Document string
}

// QueryResult holds the index's parallel result arrays, rank-ordered by
// ascending distance. Consumers should zip the arrays defensively; a backend
// may omit Distances entirely.
type QueryResult struct {
	IDs       []string
	Metadatas []map[string]string
	Documents []string
	Distances []float32
}

// VectorIndex is a per-collection vector store.
// Implementations must be safe for concurrent use; concurrent adds to the
// same collection may resolve last-write-wins per ID.
type VectorIndex interface {
	// Add stores an entry in the named collection.
	// Collections are created lazily on first add.
	Add(ctx context.Context, collection string, entry *Entry) error

	// Query returns up to topK entries of the collection nearest to vector,
	// by ascending distance. An empty or unknown collection yields an empty
	// result, not an error.
	Query(ctx context.Context, collection string, vector []float32, topK int) (*QueryResult, error)

	// Collections lists the collections that exist (have seen at least one
	// add), in lexical order.
	Collections(ctx context.Context) ([]string, error)

	// HasCollection reports whether the named collection exists.
	HasCollection(ctx context.Context, name string) (bool, error)

	// Close closes the index and releases resources.
	Close() error
}
