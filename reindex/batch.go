package reindex

import (
	"context"
	"fmt"
	"time"

	"github.com/storytrail/storytrail/ai"
	"github.com/storytrail/storytrail/core"
	"github.com/storytrail/storytrail/index"
)

// BatchProcessor re-embeds batches of index entries and writes them back.
type BatchProcessor struct {
	source         EntrySource
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(source EntrySource, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		source:         source,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process re-embeds each entry's document and updates the entry in place in
// its collection. Entries without document text keep their existing vector;
// there is nothing to re-embed them from.
// Returns the number of entries actually re-embedded.
func (bp *BatchProcessor) Process(ctx context.Context, collection string, entries []*index.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	updated := 0
	for _, entry := range entries {
		if !core.HasContent(entry.Document) {
			continue
		}

		var vector []float32
		err := RetryWithBackoff(ctx, func() error {
			var embedErr error
			vector, embedErr = bp.embedder.EmbedText(ctx, entry.Document)
			return embedErr
		}, bp.maxRetries, bp.retryBaseDelay)
		if err != nil {
			return updated, fmt.Errorf("failed to embed entry %s after %d attempts: %w", entry.ID, bp.maxRetries, err)
		}

		entry.Vector = vector
		if err := bp.source.Add(ctx, collection, entry); err != nil {
			return updated, fmt.Errorf("failed to update entry %s: %w", entry.ID, err)
		}
		updated++
	}

	return updated, nil
}
