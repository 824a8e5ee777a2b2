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


package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storytrail/storytrail/ai"
	"github.com/storytrail/storytrail/core"
	"github.com/storytrail/storytrail/index"
)

// Result count bounds applied to every query.
const (
	DefaultMinResults = 1
	DefaultMaxResults = 20
)

// Searcher answers text queries against one modality collection by embedding
// the query and ranking stored vectors by cosine distance.
type Searcher struct {
	embedder   ai.Embedder
	index      index.VectorIndex
	logger     *slog.Logger
	minResults int
	maxResults int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithResultRange overrides the bounds the requested result count is clamped
// to. Values below 1 are ignored.
func WithResultRange(minResults, maxResults int) Option {
	return func(s *Searcher) {
		if minResults >= 1 {
			s.minResults = minResults
		}
		if maxResults >= s.minResults {
			s.maxResults = maxResults
		}
	}
}

// NewSearcher creates a searcher over the given embedder and index.
func NewSearcher(embedder ai.Embedder, idx index.VectorIndex, opts ...Option) (*Searcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	s := &Searcher{
		embedder:   embedder,
		index:      idx,
		logger:     slog.Default().With("component", "search"),
		minResults: DefaultMinResults,
		maxResults: DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search embeds the query and returns up to nResults hits from the named
// collection, closest first. The requested count is clamped to the searcher's
// bounds. A blank query fails before any embedding work; a collection outside
// the fixed per-modality set fails with ErrUnknownCollection. A collection
// that exists but has no close entries yields an empty, non-nil slice.
func (s *Searcher) Search(ctx context.Context, query, collection string, nResults int) ([]core.SearchResult, error) {
	if !core.HasContent(query) {
		return nil, ErrEmptyQuery
	}
	if !core.IsKnownCollection(collection) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}

	if nResults < s.minResults {
		nResults = s.minResults
	}
	if nResults > s.maxResults {
		nResults = s.maxResults
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	res, err := s.index.Query(ctx, collection, vector, nResults)
	if err != nil {
		return nil, fmt.Errorf("query against %s failed: %w", collection, err)
	}

	results := make([]core.SearchResult, 0, len(res.IDs))
	for i, id := range res.IDs {
		result := core.SearchResult{ID: id}
		if i < len(res.Metadatas) {
			result.Metadata = res.Metadatas[i]
		}
		if i < len(res.Documents) {
			result.Document = res.Documents[i]
		}
		if i < len(res.Distances) {
			distance := res.Distances[i]
			result.Distance = &distance
		}
		results = append(results, result)
	}

	s.logger.Debug("search complete",
		"collection", collection,
		"requested", nResults,
		"returned", len(results))
	return results, nil
}
