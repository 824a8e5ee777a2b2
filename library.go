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


package storytrail

import (
	"io"
	"log/slog"

	"github.com/storytrail/storytrail/ai"
	"github.com/storytrail/storytrail/ai/ollama"
	"github.com/storytrail/storytrail/config"
	"github.com/storytrail/storytrail/index/badger"
	"github.com/storytrail/storytrail/ingestion"
	"github.com/storytrail/storytrail/media"
	"github.com/storytrail/storytrail/media/ffmpeg"
	"github.com/storytrail/storytrail/reindex"
	"github.com/storytrail/storytrail/search"
)

// Library wires the vector index, media store, frame sampler, and AI provider
// into one handle the API server and CLI build their services from.
type Library struct {
	index    *badger.Index
	store    *media.Store
	sampler  *media.FrameSampler
	provider ai.Provider
	cfg      *config.Config
	logger   *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	provider ai.Provider
	decoder  media.Decoder
}

// WithAIProvider injects an AI provider, replacing the default Ollama one.
func WithAIProvider(provider ai.Provider) LibraryOption {
	return func(o *libraryOptions) {
		o.provider = provider
	}
}

// WithDecoder injects a video decoder, replacing the default ffmpeg one.
func WithDecoder(decoder media.Decoder) LibraryOption {
	return func(o *libraryOptions) {
		o.decoder = decoder
	}
}

// Open creates a Library from configuration. The index directory is created
// if it does not exist; the uploads tree is created lazily on first ingest.
func Open(cfg *config.Config, opts ...LibraryOption) (*Library, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	options := &libraryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	idx, err := badger.Open(cfg.Storage.IndexDir)
	if err != nil {
		return nil, err
	}

	store := media.NewStore(cfg.Storage.UploadsDir)

	decoder := options.decoder
	if decoder == nil {
		decoder = ffmpeg.NewDecoder()
	}

	sampler, err := media.NewFrameSampler(decoder)
	if err != nil {
		idx.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = ollama.NewProvider(ai.NewConfig(
			ai.WithHost(cfg.AI.Host),
			ai.WithEmbeddingModel(cfg.AI.EmbeddingModel),
			ai.WithVisionModel(cfg.AI.VisionModel),
		))
		if err != nil {
			idx.Close()
			return nil, err
		}
	}

	return &Library{
		index:    idx,
		store:    store,
		sampler:  sampler,
		provider: provider,
		cfg:      cfg,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider and the index.
func (l *Library) Close() error {
	if err := l.provider.Close(); err != nil {
		l.logger.Error("error closing AI provider", "err", err)
	}
	if err := l.index.Close(); err != nil {
		l.logger.Error("error closing index", "err", err)
		return err
	}
	return nil
}

// Index returns the vector index.
func (l *Library) Index() *badger.Index {
	return l.index
}

// Store returns the media store.
func (l *Library) Store() *media.Store {
	return l.store
}

// NewPipeline builds an ingestion pipeline over the library's components.
// The configured sampling defaults apply unless the options override them.
func (l *Library) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	all := append([]ingestion.Option{
		ingestion.WithFrameDefaults(l.cfg.Sampling.FrameCadence(), l.cfg.Sampling.MaxFrames),
	}, opts...)
	return ingestion.NewPipeline(l.store, l.sampler, l.provider, l.index, all...)
}

// NewSearcher builds a searcher over the library's embedder and index.
func (l *Library) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(l.provider.Embedder(), l.index, opts...)
}

// NewReindexer builds a reindexer over the library's embedder and index.
// progress: where to write progress output (typically os.Stderr)
func (l *Library) NewReindexer(cfg *reindex.Config, progress io.Writer) *reindex.Reindexer {
	return reindex.NewReindexer(l.index, l.provider.Embedder(), cfg, progress)
}
