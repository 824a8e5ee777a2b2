package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/storytrail/storytrail/ai"
	"github.com/storytrail/storytrail/core"
	"github.com/storytrail/storytrail/index"
	"github.com/storytrail/storytrail/media"
)

// snippetLength is the number of characters of a text document stored as its
// retrievable snippet.
const snippetLength = 200

// Default frame sampling parameters, used when a request does not override them.
const (
	DefaultFrameCadence = 2 * time.Second
	DefaultMaxFrames    = 40
)

// Pipeline orchestrates ingestion of media into a session: persisting files,
// sampling video frames, captioning and embedding visuals, and writing vectors
// into the per-modality collections.
type Pipeline struct {
	store     *media.Store
	sampler   *media.FrameSampler
	provider  ai.Provider
	index     index.VectorIndex
	pool      *ants.Pool
	cadence   time.Duration
	maxFrames int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent captioning and
// embedding. Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithFrameDefaults sets the frame sampling cadence and per-video frame cap.
func WithFrameDefaults(cadence time.Duration, maxFrames int) Option {
	return func(p *Pipeline) error {
		if cadence <= 0 {
			return fmt.Errorf("%w: %s", media.ErrInvalidCadence, cadence)
		}
		if maxFrames < 1 {
			maxFrames = 1
		}
		p.cadence = cadence
		p.maxFrames = maxFrames
		return nil
	}
}

// NewPipeline creates an ingestion pipeline over the given store, sampler,
// AI provider, and vector index.
func NewPipeline(
	store *media.Store,
	sampler *media.FrameSampler,
	provider ai.Provider,
	idx index.VectorIndex,
	opts ...Option,
) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if sampler == nil {
		return nil, ErrSamplerRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:     store,
		sampler:   sampler,
		provider:  provider,
		index:     idx,
		pool:      pool,
		cadence:   DefaultFrameCadence,
		maxFrames: DefaultMaxFrames,
		logger:    slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Request describes one ingestion call. All slices may be empty; an empty
// request yields a summary with zero counts.
type Request struct {
	SessionID  string
	Images     []string // image file paths
	Videos     []string // video file paths
	TextFiles  []string // text file paths
	DirectText string   // pasted text, ignored when blank

	// Frame sampling overrides for this call; the pipeline defaults apply
	// when zero.
	Cadence   time.Duration
	MaxFrames int
}

// Ingest processes all inputs in the request under one session and returns a
// summary of what was indexed. Individual items that fail are recorded in the
// summary's Failures and do not abort the call; only structural failures
// (empty session, cancelled context, unavailable decoder) surface as an error.
func (p *Pipeline) Ingest(ctx context.Context, req *Request) (*core.IngestionSummary, error) {
	if !core.HasContent(req.SessionID) {
		return nil, core.ErrEmptySessionID
	}

	summary := core.NewIngestionSummary(req.SessionID)

	if err := p.ingestImages(ctx, req.SessionID, req.Images, summary); err != nil {
		return nil, err
	}
	if err := p.ingestVideos(ctx, req, summary); err != nil {
		return nil, err
	}
	if err := p.ingestTextFiles(ctx, req.SessionID, req.TextFiles, summary); err != nil {
		return nil, err
	}
	if err := p.ingestDirectText(ctx, req.SessionID, req.DirectText, summary); err != nil {
		return nil, err
	}

	p.logger.Info("ingestion complete",
		"session_id", req.SessionID,
		"images", summary.IndexedCounts["images"],
		"videos", summary.IndexedCounts["videos"],
		"texts", summary.IndexedCounts["texts"],
		"failures", len(summary.Failures))
	return summary, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

func (p *Pipeline) ingestImages(ctx context.Context, sessionID string, paths []string, summary *core.IngestionSummary) error {
	if len(paths) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	destDir := p.store.ImagesDir(sessionID)
	persisted := make([]string, 0, len(paths))
	for _, path := range paths {
		dest, err := p.store.Persist(media.FileRef(path), destDir)
		if err != nil {
			summary.Failures = append(summary.Failures, core.ItemFailure{
				Stage: "persist", Input: path, Err: err.Error(),
			})
			continue
		}
		persisted = append(persisted, dest)
	}

	results := p.processVisuals(ctx, persisted, core.MediaTypeImage, sessionID, "")
	p.collectVisuals(ctx, results, summary)
	return nil
}

func (p *Pipeline) ingestVideos(ctx context.Context, req *Request, summary *core.IngestionSummary) error {
	sessionID := req.SessionID
	cadence := req.Cadence
	if cadence == 0 {
		cadence = p.cadence
	}
	maxFrames := req.MaxFrames
	if maxFrames == 0 {
		maxFrames = p.maxFrames
	}

	destDir := p.store.VideosDir(sessionID)
	for _, path := range req.Videos {
		if err := ctx.Err(); err != nil {
			return err
		}

		dest, err := p.store.Persist(media.FileRef(path), destDir)
		if err != nil {
			summary.Failures = append(summary.Failures, core.ItemFailure{
				Stage: "persist", Input: path, Err: err.Error(),
			})
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(dest), filepath.Ext(dest))
		framesDir := p.store.FramesDir(sessionID, stem)
		frames, err := p.sampler.Extract(ctx, dest, framesDir, cadence, maxFrames)
		if err != nil {
			if errors.Is(err, media.ErrDecoderUnavailable) ||
				errors.Is(err, media.ErrProbe) ||
				errors.Is(err, media.ErrInvalidCadence) ||
				errors.Is(err, context.Canceled) {
				return err
			}
			summary.Failures = append(summary.Failures, core.ItemFailure{
				Stage: "sample", Input: dest, Err: err.Error(),
			})
			continue
		}

		results := p.processVisuals(ctx, frames, core.MediaTypeVideoFrame, sessionID, dest)
		p.collectVisuals(ctx, results, summary)
	}
	return nil
}

func (p *Pipeline) ingestTextFiles(ctx context.Context, sessionID string, paths []string, summary *core.IngestionSummary) error {
	destDir := p.store.TextsDir(sessionID)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		dest, err := p.store.Persist(media.FileRef(path), destDir)
		if err != nil {
			summary.Failures = append(summary.Failures, core.ItemFailure{
				Stage: "persist", Input: path, Err: err.Error(),
			})
			continue
		}

		data, err := os.ReadFile(dest)
		if err != nil {
			summary.Failures = append(summary.Failures, core.ItemFailure{
				Stage: "persist", Input: dest, Err: err.Error(),
			})
			continue
		}

		content := string(data)
		if !core.HasContent(content) {
			p.logger.Debug("skipping empty text file", "path", dest)
			continue
		}

		p.indexText(ctx, content, dest, sessionID, "", summary)
	}
	return nil
}

func (p *Pipeline) ingestDirectText(ctx context.Context, sessionID, text string, summary *core.IngestionSummary) error {
	if !core.HasContent(text) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	content := strings.TrimSpace(text)
	dest, err := p.store.Persist(media.Text(content), p.store.TextsDir(sessionID))
	if err != nil {
		summary.Failures = append(summary.Failures, core.ItemFailure{
			Stage: "persist", Input: core.Snippet(content, 40), Err: err.Error(),
		})
		return nil
	}

	p.indexText(ctx, content, dest, sessionID, core.SourceDirectInput, summary)
	return nil
}

// indexText embeds one text document and writes it into the texts collection.
func (p *Pipeline) indexText(ctx context.Context, content, path, sessionID, source string, summary *core.IngestionSummary) {
	vector, err := p.provider.Embedder().EmbedText(ctx, content)
	if err != nil {
		summary.Failures = append(summary.Failures, core.ItemFailure{
			Stage: "embed", Input: path, Err: err.Error(),
		})
		return
	}

	item := core.MediaItem{
		ID:          core.NewItemID(core.MediaTypeText),
		Type:        core.MediaTypeText,
		Filepath:    path,
		SessionID:   sessionID,
		Source:      source,
		ContentHash: core.ContentHash([]byte(content)),
	}

	entry := &index.Entry{
		ID:       item.ID,
		Vector:   vector,
		Metadata: item.Metadata(),
		Document: core.Snippet(content, snippetLength),
	}
	if err := p.index.Add(ctx, core.CollectionTexts, entry); err != nil {
		summary.Failures = append(summary.Failures, core.ItemFailure{
			Stage: "store", Input: path, Err: err.Error(),
		})
		return
	}

	summary.Details.Texts = append(summary.Details.Texts, item)
	summary.IndexedCounts["texts"]++
}

// visualResult carries the outcome of captioning and embedding one image or
// frame. Exactly one of item or failure is set.
type visualResult struct {
	item    *core.MediaItem
	vector  []float32
	failure *core.ItemFailure
}

// processVisuals captions and embeds the given image paths concurrently,
// preserving input order in the returned slice.
func (p *Pipeline) processVisuals(ctx context.Context, paths []string, mediaType core.MediaType, sessionID, sourceVideo string) []visualResult {
	results := make([]visualResult, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			results[i] = p.processVisual(ctx, path, mediaType, sessionID, sourceVideo)
		}); err != nil {
			wg.Done()
			results[i] = visualResult{failure: &core.ItemFailure{
				Stage: "embed", Input: path, Err: err.Error(),
			}}
		}
	}
	wg.Wait()

	return results
}

func (p *Pipeline) processVisual(ctx context.Context, path string, mediaType core.MediaType, sessionID, sourceVideo string) visualResult {
	caption, err := p.provider.Captioner().Caption(ctx, path)
	if err != nil {
		return visualResult{failure: &core.ItemFailure{
			Stage: "caption", Input: path, Err: err.Error(),
		}}
	}

	vector, err := p.provider.Embedder().EmbedImage(ctx, path)
	if err != nil {
		return visualResult{failure: &core.ItemFailure{
			Stage: "embed", Input: path, Err: err.Error(),
		}}
	}

	item := &core.MediaItem{
		ID:          core.NewItemID(mediaType),
		Type:        mediaType,
		Filepath:    path,
		SessionID:   sessionID,
		Caption:     caption,
		SourceVideo: sourceVideo,
	}
	if data, readErr := os.ReadFile(path); readErr == nil {
		item.ContentHash = core.ContentHash(data)
	} else {
		p.logger.Debug("skipping content hash", "path", path, "error", readErr)
	}

	return visualResult{item: item, vector: vector}
}

// collectVisuals writes processed visuals into the index in input order and
// folds the outcomes into the summary.
func (p *Pipeline) collectVisuals(ctx context.Context, results []visualResult, summary *core.IngestionSummary) {
	for _, res := range results {
		if res.failure != nil {
			summary.Failures = append(summary.Failures, *res.failure)
			continue
		}

		entry := &index.Entry{
			ID:       res.item.ID,
			Vector:   res.vector,
			Metadata: res.item.Metadata(),
			Document: res.item.Caption,
		}
		if err := p.index.Add(ctx, res.item.Type.Collection(), entry); err != nil {
			summary.Failures = append(summary.Failures, core.ItemFailure{
				Stage: "store", Input: res.item.Filepath, Err: err.Error(),
			})
			continue
		}

		switch res.item.Type {
		case core.MediaTypeImage:
			summary.Details.Images = append(summary.Details.Images, *res.item)
			summary.IndexedCounts["images"]++
		case core.MediaTypeVideoFrame:
			summary.Details.Videos = append(summary.Details.Videos, *res.item)
			summary.IndexedCounts["videos"]++
		}
	}
}
