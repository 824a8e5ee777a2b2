package core

import (
	"encoding/hex"
	"strings"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// MediaType identifies the modality of an ingested artifact.
type MediaType string

const (
	// MediaTypeText is a text document, uploaded or pasted.
	MediaTypeText MediaType = "text"
	// MediaTypeImage is a still image.
	MediaTypeImage MediaType = "image"
	// MediaTypeVideoFrame is a single frame extracted from a video.
	MediaTypeVideoFrame MediaType = "video_frame"
)

// Collection names, one per modality.
const (
	CollectionTexts  = "texts"
	CollectionPhotos = "photos"
	CollectionVideos = "videos"
)

// SourceDirectInput marks text items that were pasted rather than uploaded.
const SourceDirectInput = "direct_input"

// Metadata envelope keys as stored in the vector index.
const (
	MetaType        = "type"
	MetaFilepath    = "filepath"
	MetaSessionID   = "session_id"
	MetaCaption     = "caption"
	MetaVideoSource = "video_source"
	MetaSource      = "source"
	MetaContentHash = "content_hash"
)

// IDPrefix returns the modality prefix used in generated item IDs.
func (t MediaType) IDPrefix() string {
	switch t {
	case MediaTypeText:
		return "txt-"
	case MediaTypeImage:
		return "img-"
	case MediaTypeVideoFrame:
		return "vidframe-"
	}
	return ""
}

// Collection returns the index collection holding vectors of this modality.
func (t MediaType) Collection() string {
	switch t {
	case MediaTypeText:
		return CollectionTexts
	case MediaTypeImage:
		return CollectionPhotos
	case MediaTypeVideoFrame:
		return CollectionVideos
	}
	return ""
}

// KnownCollections returns the fixed set of collection names.
func KnownCollections() []string {
	return []string{CollectionTexts, CollectionPhotos, CollectionVideos}
}

// IsKnownCollection reports whether name is one of the fixed collections.
func IsKnownCollection(name string) bool {
	switch name {
	case CollectionTexts, CollectionPhotos, CollectionVideos:
		return true
	}
	return false
}

// NewItemID generates a fresh, modality-prefixed item ID.
// IDs are unique per process lifetime; ingesting the same content twice
// always yields distinct IDs.
func NewItemID(t MediaType) string {
	return t.IDPrefix() + uuid.NewString()[:8]
}

// ContentHash computes a short hex digest of artifact content using BLAKE2b.
// Stored in the metadata envelope so a future content-addressed lookup can be
// layered on without rewriting entries.
func ContentHash(data []byte) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// MediaItem represents one indexed unit: a text document, an image, or a
// single extracted video frame. Items are immutable after creation.
type MediaItem struct {
	ID          string    `json:"id"`
	Type        MediaType `json:"type"`
	Filepath    string    `json:"filepath"`
	SessionID   string    `json:"session_id"`
	Caption     string    `json:"caption,omitempty"`      // image and video_frame only
	SourceVideo string    `json:"source_video,omitempty"` // video_frame only; back-reference, not ownership
	Source      string    `json:"source,omitempty"`       // "direct_input" for pasted text
	ContentHash string    `json:"content_hash,omitempty"`
}

// Metadata builds the envelope stored alongside the item's vector.
// Optional fields are omitted when empty.
func (m *MediaItem) Metadata() map[string]string {
	meta := map[string]string{
		MetaType:      string(m.Type),
		MetaFilepath:  m.Filepath,
		MetaSessionID: m.SessionID,
	}
	if m.Caption != "" {
		meta[MetaCaption] = m.Caption
	}
	if m.SourceVideo != "" {
		meta[MetaVideoSource] = m.SourceVideo
	}
	if m.Source != "" {
		meta[MetaSource] = m.Source
	}
	if m.ContentHash != "" {
		meta[MetaContentHash] = m.ContentHash
	}
	return meta
}

// Snippet returns the first n characters of s.
// Truncation is character-based, not word-boundary aware, and never splits a
// UTF-8 sequence.
func Snippet(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// ItemFailure records a per-item ingestion failure. Failures do not abort the
// call; they are reported in the summary alongside successful items.
type ItemFailure struct {
	Stage string `json:"stage"` // "persist", "embed", "caption", "store", "sample"
	Input string `json:"input"` // path or snippet identifying the failed item
	Err   string `json:"error"`
}

// IngestionDetails lists created items per modality, preserving input order
// within each branch.
type IngestionDetails struct {
	Images []MediaItem `json:"images"`
	Videos []MediaItem `json:"videos"`
	Texts  []MediaItem `json:"texts"`
}

// IngestionSummary is the aggregate result of one ingestion call.
// It is derived, never persisted, and rebuilt fresh on each call.
type IngestionSummary struct {
	SessionID     string           `json:"session_id"`
	IndexedCounts map[string]int   `json:"indexed_counts"`
	Details       IngestionDetails `json:"details"`
	Failures      []ItemFailure    `json:"failures,omitempty"`
}

// NewIngestionSummary creates an empty summary for a session with all
// modality counts present and zeroed.
func NewIngestionSummary(sessionID string) *IngestionSummary {
	return &IngestionSummary{
		SessionID: sessionID,
		IndexedCounts: map[string]int{
			"images": 0,
			"videos": 0,
			"texts":  0,
		},
		Details: IngestionDetails{
			Images: []MediaItem{},
			Videos: []MediaItem{},
			Texts:  []MediaItem{},
		},
	}
}

// SearchResult is one ranked hit from a similarity query.
// Distance is nil when the index does not report one; lower is closer.
type SearchResult struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
	Document string            `json:"document"`
	Distance *float32          `json:"distance"`
}

// HasContent reports whether s contains any non-whitespace content.
func HasContent(s string) bool {
	return strings.TrimSpace(s) != ""
}
