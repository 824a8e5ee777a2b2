package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMediaType(t *testing.T) {
	tests := []struct {
		name      string
		mediaType MediaType
		wantErr   error
	}{
		{"text", MediaTypeText, nil},
		{"image", MediaTypeImage, nil},
		{"video frame", MediaTypeVideoFrame, nil},
		{"unknown", MediaType("audio"), ErrInvalidMediaType},
		{"empty", MediaType(""), ErrInvalidMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMediaType(tt.mediaType)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMediaItem(t *testing.T) {
	valid := func() *MediaItem {
		return &MediaItem{
			ID:        NewItemID(MediaTypeImage),
			Type:      MediaTypeImage,
			Filepath:  "/data/uploads/s1/images/pic.jpg",
			SessionID: "s1",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*MediaItem)
		wantErr error
	}{
		{"valid item", func(*MediaItem) {}, nil},
		{"empty id", func(m *MediaItem) { m.ID = "" }, ErrEmptyItemID},
		{"prefix mismatch", func(m *MediaItem) { m.ID = "txt-12345678" }, ErrIDPrefixMismatch},
		{"unknown type", func(m *MediaItem) { m.Type = "audio" }, ErrInvalidMediaType},
		{"empty filepath", func(m *MediaItem) { m.Filepath = "" }, ErrEmptyFilepath},
		{"empty session", func(m *MediaItem) { m.SessionID = "" }, ErrEmptySessionID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid()
			tt.mutate(item)
			err := ValidateMediaItem(item)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidMediaItem)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateMediaItem_Nil(t *testing.T) {
	assert.ErrorIs(t, ValidateMediaItem(nil), ErrInvalidMediaItem)
}
