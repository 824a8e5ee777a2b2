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


package core

import (
	"fmt"
	"strings"
)

// ValidateMediaType validates a MediaType value.
func ValidateMediaType(t MediaType) error {
	switch t {
	case MediaTypeText, MediaTypeImage, MediaTypeVideoFrame:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidMediaType, t)
}

// ValidateMediaItem validates a MediaItem according to domain rules.
//
// Validation rules:
//   - Type must be a known modality
//   - ID must be non-empty and carry the modality's prefix
//   - Filepath and SessionID must be non-empty
//
// NOT validated:
//   - Caption (empty until the caption provider runs; never set for text)
//   - SourceVideo (only meaningful for video frames)
func ValidateMediaItem(item *MediaItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidMediaItem)
	}

	if err := ValidateMediaType(item.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMediaItem, err)
	}

	if item.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMediaItem, ErrEmptyItemID)
	}

	if !strings.HasPrefix(item.ID, item.Type.IDPrefix()) {
		return fmt.Errorf("%w: %w", ErrInvalidMediaItem, ErrIDPrefixMismatch)
	}

	if item.Filepath == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMediaItem, ErrEmptyFilepath)
	}

	if item.SessionID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMediaItem, ErrEmptySessionID)
	}

	return nil
}
