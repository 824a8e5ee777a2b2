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

	"github.com/storytrail/storytrail/index"
)

const (
	// DefaultBatchSize is the default number of entries to fetch in each batch
	DefaultBatchSize = 100
)

// EntrySource is the slice of the index a reindex run needs: paging entries
// out of a collection, writing them back, and listing collections.
// *badger.Index satisfies it.
type EntrySource interface {
	Entries(ctx context.Context, collection string, afterID string, limit int) ([]*index.Entry, error)
	Add(ctx context.Context, collection string, entry *index.Entry) error
	Collections(ctx context.Context) ([]string, error)
}

// EntryIterator iterates over one collection's entries in batches.
type EntryIterator struct {
	source     EntrySource
	collection string
	batchSize  int
}

// NewEntryIterator creates a new entry iterator over a collection.
// batchSize: number of entries to fetch in each batch (must be > 0)
func NewEntryIterator(source EntrySource, collection string, batchSize int) *EntryIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &EntryIterator{
		source:     source,
		collection: collection,
		batchSize:  batchSize,
	}
}

// ForEach iterates over all entries in the collection, calling fn for each
// batch. Iteration stops on first error from fn or when the collection is
// exhausted. Context cancellation is checked between batches.
func (it *EntryIterator) ForEach(ctx context.Context, fn func([]*index.Entry) error) error {
	afterID := ""
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := it.source.Entries(ctx, it.collection, afterID, it.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}

		afterID = batch[len(batch)-1].ID
	}
}

// Count walks the collection and returns its entry count.
func (it *EntryIterator) Count(ctx context.Context) (int, error) {
	total := 0
	err := it.ForEach(ctx, func(batch []*index.Entry) error {
		total += len(batch)
		return nil
	})
	return total, err
}
