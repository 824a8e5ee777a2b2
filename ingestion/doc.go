// Package ingestion turns uploaded media into indexed vectors. One call takes
// a session's images, videos, and text, persists everything through the media
// store, captions and embeds visuals on a worker pool, and writes entries into
// the per-modality collections of the vector index.
package ingestion
