// Package reindex re-embeds the stored entries of every collection with the
// currently configured embedding model. It exists for model upgrades: vectors
// written by an old model are unusable for queries embedded by a new one, so
// each entry's document text is embedded again and written back in place.
//
// The package supports batch processing with progress tracking and retry
// logic with exponential backoff.
package reindex
