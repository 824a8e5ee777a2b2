// Copyright 2025 StoryTrail Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/storytrail/storytrail/ai"
	"github.com/storytrail/storytrail/core"
	"github.com/storytrail/storytrail/index"
)

// Config holds configuration for a reindex run.
type Config struct {
	// BatchSize is the number of entries to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of entries)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Collection restricts the run to one collection.
	// Empty means every known collection present in the index.
	Collection string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer re-embeds every entry of every known collection in the index.
type Reindexer struct {
	source    EntrySource
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(source EntrySource, embedder ai.Embedder, config *Config, progress io.Writer) *Reindexer {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reindexer{
		source:    source,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(source, embedder, config.MaxRetries, config.RetryDelay),
	}
}

// Run executes the reindex operation across all known collections that exist
// in the index. Entries without document text are counted but left untouched.
func (r *Reindexer) Run(ctx context.Context) error {
	if r.config.Collection != "" && !core.IsKnownCollection(r.config.Collection) {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, r.config.Collection)
	}

	existing, err := r.source.Collections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	collections := make([]string, 0, len(existing))
	for _, name := range existing {
		if !core.IsKnownCollection(name) {
			continue
		}
		if r.config.Collection != "" && name != r.config.Collection {
			continue
		}
		collections = append(collections, name)
	}

	total := 0
	for _, collection := range collections {
		count, err := NewEntryIterator(r.source, collection, r.config.BatchSize).Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count entries in %s: %w", collection, err)
		}
		total += count
	}

	if total == 0 {
		fmt.Fprintf(r.progress, "No entries found in index (0 entries)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reindex of %d entries across %d collections (batch size: %d)\n",
		total, len(collections), r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	updated := 0
	for _, collection := range collections {
		iterator := NewEntryIterator(r.source, collection, r.config.BatchSize)
		err := iterator.ForEach(ctx, func(entries []*index.Entry) error {
			n, err := r.processor.Process(ctx, collection, entries)
			if err != nil {
				return fmt.Errorf("failed to process batch in %s: %w", collection, err)
			}
			updated += n
			tracker.Increment(len(entries))
			return nil
		})
		if err != nil {
			return err
		}
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindex complete. Re-embedded %d of %d entries in %v (%.1f entries/sec)\n",
		updated, total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
