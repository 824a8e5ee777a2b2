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


package media

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Input is a payload to be persisted into a session's media tree. The two
// concrete kinds are FileRef for files already on disk and Text for inline
// text content.
type Input interface {
	isInput()
}

// FileRef references an existing file by path.
type FileRef string

func (FileRef) isInput() {}

// Text carries inline text content with no backing file.
type Text string

func (Text) isInput() {}

// Store lays out persisted media under a root directory, one subtree per
// session:
//
//	{root}/{session}/texts
//	{root}/{session}/images
//	{root}/{session}/videos
//	{root}/{session}/frames/{video}
type Store struct {
	root   string
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used by the store.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a media store rooted at the given directory. The root is
// created lazily on first persist.
func NewStore(root string, opts ...StoreOption) *Store {
	s := &Store{
		root:   root,
		logger: slog.Default().With("component", "media_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// SessionDir returns the directory holding all media for a session.
func (s *Store) SessionDir(sessionID string) string {
	return filepath.Join(s.root, sessionID)
}

// TextsDir returns the session directory for persisted text files.
func (s *Store) TextsDir(sessionID string) string {
	return filepath.Join(s.root, sessionID, "texts")
}

// ImagesDir returns the session directory for persisted images.
func (s *Store) ImagesDir(sessionID string) string {
	return filepath.Join(s.root, sessionID, "images")
}

// VideosDir returns the session directory for persisted videos.
func (s *Store) VideosDir(sessionID string) string {
	return filepath.Join(s.root, sessionID, "videos")
}

// FramesDir returns the directory holding frames sampled from one video,
// keyed by the video filename without its extension.
func (s *Store) FramesDir(sessionID, videoStem string) string {
	return filepath.Join(s.root, sessionID, "frames", videoStem)
}

// Persist writes the input into destDir and returns the absolute path of the
// persisted file. File inputs keep their original basename; on a name
// collision a short random suffix is inserted before the extension so an
// existing file is never overwritten. Text inputs get a generated unique
// filename.
func (s *Store) Persist(input Input, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	switch in := input.(type) {
	case FileRef:
		return s.persistFile(string(in), destDir)
	case Text:
		return s.persistText(string(in), destDir)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
	}
}

func (s *Store) persistFile(srcPath, destDir string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	destPath := filepath.Join(destDir, filepath.Base(srcPath))
	if _, err := os.Stat(destPath); err == nil {
		destPath = uniquePath(destPath)
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy %s: %w", srcPath, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to flush destination file: %w", err)
	}

	s.logger.Debug("persisted file", "source", srcPath, "dest", destPath)
	return destPath, nil
}

func (s *Store) persistText(content, destDir string) (string, error) {
	name := fmt.Sprintf("text_input_%s.txt", uuid.NewString()[:8])
	destPath := filepath.Join(destDir, name)

	if err := os.WriteFile(destPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	s.logger.Debug("persisted text input", "dest", destPath, "bytes", len(content))
	return destPath, nil
}

// uniquePath derives a sibling path that does not exist yet by inserting a
// random suffix before the extension.
func uniquePath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for {
		candidate := fmt.Sprintf("%s-%s%s", stem, uuid.NewString()[:8], ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
