package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SessionLayout(t *testing.T) {
	s := NewStore("/data/uploads")

	assert.Equal(t, filepath.Join("/data/uploads", "sess-1"), s.SessionDir("sess-1"))
	assert.Equal(t, filepath.Join("/data/uploads", "sess-1", "texts"), s.TextsDir("sess-1"))
	assert.Equal(t, filepath.Join("/data/uploads", "sess-1", "images"), s.ImagesDir("sess-1"))
	assert.Equal(t, filepath.Join("/data/uploads", "sess-1", "videos"), s.VideosDir("sess-1"))
	assert.Equal(t, filepath.Join("/data/uploads", "sess-1", "frames", "clip"), s.FramesDir("sess-1", "clip"))
}

func TestStore_PersistFile(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)

	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "photo.jpg")
	require.NoError(t, os.WriteFile(srcPath, []byte("jpeg-bytes"), 0o644))

	destDir := s.ImagesDir("sess-1")
	got, err := s.Persist(FileRef(srcPath), destDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(destDir, "photo.jpg"), got)
	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestStore_PersistFile_NameCollision(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	destDir := s.ImagesDir("sess-1")

	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "photo.jpg")
	require.NoError(t, os.WriteFile(srcPath, []byte("first"), 0o644))

	first, err := s.Persist(FileRef(srcPath), destDir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(srcPath, []byte("second"), 0o644))
	second, err := s.Persist(FileRef(srcPath), destDir)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(filepath.Base(second), "photo-"))
	assert.Equal(t, ".jpg", filepath.Ext(second))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data, "existing file must not be overwritten")

	data, err = os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestStore_PersistFile_MissingSource(t *testing.T) {
	s := NewStore(t.TempDir())

	_, err := s.Persist(FileRef("/does/not/exist.jpg"), s.ImagesDir("sess-1"))
	assert.Error(t, err)
}

func TestStore_PersistText(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	destDir := s.TextsDir("sess-1")

	got, err := s.Persist(Text("remember the llama"), destDir)
	require.NoError(t, err)

	base := filepath.Base(got)
	assert.True(t, strings.HasPrefix(base, "text_input_"))
	assert.True(t, strings.HasSuffix(base, ".txt"))

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "remember the llama", string(data))
}

func TestStore_PersistText_UniqueNames(t *testing.T) {
	s := NewStore(t.TempDir())
	destDir := s.TextsDir("sess-1")

	first, err := s.Persist(Text("one"), destDir)
	require.NoError(t, err)
	second, err := s.Persist(Text("two"), destDir)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStore_PersistUnsupportedInput(t *testing.T) {
	s := NewStore(t.TempDir())

	_, err := s.Persist(nil, s.TextsDir("sess-1"))
	assert.ErrorIs(t, err, ErrUnsupportedInput)
}
