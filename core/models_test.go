package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemID_Prefixes(t *testing.T) {
	tests := []struct {
		mediaType MediaType
		prefix    string
	}{
		{MediaTypeText, "txt-"},
		{MediaTypeImage, "img-"},
		{MediaTypeVideoFrame, "vidframe-"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mediaType), func(t *testing.T) {
			id := NewItemID(tt.mediaType)
			assert.True(t, strings.HasPrefix(id, tt.prefix), "id %q should carry prefix %q", id, tt.prefix)
			assert.Len(t, id, len(tt.prefix)+8)
		})
	}
}

func TestNewItemID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewItemID(MediaTypeImage)
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestMediaType_Collection(t *testing.T) {
	assert.Equal(t, CollectionTexts, MediaTypeText.Collection())
	assert.Equal(t, CollectionPhotos, MediaTypeImage.Collection())
	assert.Equal(t, CollectionVideos, MediaTypeVideoFrame.Collection())
}

func TestIsKnownCollection(t *testing.T) {
	for _, name := range KnownCollections() {
		assert.True(t, IsKnownCollection(name))
	}
	assert.False(t, IsKnownCollection("notes"))
	assert.False(t, IsKnownCollection(""))
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"shorter than limit", "hello world", 200, "hello world"},
		{"exactly at limit", "abc", 3, "abc"},
		{"truncated", "abcdef", 3, "abc"},
		{"zero limit", "abc", 0, ""},
		{"multibyte preserved", "héllo wörld", 6, "héllo "},
		{"empty input", "", 200, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Snippet(tt.input, tt.n))
		})
	}
}

func TestSnippet_LongContent(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := Snippet(long, 200)
	assert.Len(t, got, 200)
	assert.Equal(t, long[:200], got)
}

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("hello world"))
	b := ContentHash([]byte("hello world"))
	c := ContentHash([]byte("hello worlds"))

	assert.Equal(t, a, b, "identical content must produce identical hashes")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16) // 8 bytes hex-encoded
}

func TestMediaItem_Metadata(t *testing.T) {
	t.Run("text item", func(t *testing.T) {
		item := &MediaItem{
			ID:        "txt-12345678",
			Type:      MediaTypeText,
			Filepath:  "/data/uploads/s1/texts/note.txt",
			SessionID: "s1",
			Source:    SourceDirectInput,
		}
		meta := item.Metadata()
		assert.Equal(t, "text", meta[MetaType])
		assert.Equal(t, "/data/uploads/s1/texts/note.txt", meta[MetaFilepath])
		assert.Equal(t, "s1", meta[MetaSessionID])
		assert.Equal(t, SourceDirectInput, meta[MetaSource])
		assert.NotContains(t, meta, MetaCaption)
		assert.NotContains(t, meta, MetaVideoSource)
	})

	t.Run("video frame item", func(t *testing.T) {
		item := &MediaItem{
			ID:          "vidframe-deadbeef",
			Type:        MediaTypeVideoFrame,
			Filepath:    "/data/uploads/s1/frames/clip/frame_0000.jpg",
			SessionID:   "s1",
			Caption:     "a dog on a beach",
			SourceVideo: "/data/uploads/s1/videos/clip.mp4",
		}
		meta := item.Metadata()
		assert.Equal(t, "video_frame", meta[MetaType])
		assert.Equal(t, "a dog on a beach", meta[MetaCaption])
		assert.Equal(t, "/data/uploads/s1/videos/clip.mp4", meta[MetaVideoSource])
		assert.NotContains(t, meta, MetaSource)
	})
}

func TestHasContent(t *testing.T) {
	assert.True(t, HasContent("hello"))
	assert.True(t, HasContent("  x  "))
	assert.False(t, HasContent(""))
	assert.False(t, HasContent("   \t\n"))
}
