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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMediaItem indicates a MediaItem failed validation.
	ErrInvalidMediaItem = errors.New("invalid media item")

	// ErrInvalidMediaType indicates an unrecognized MediaType value.
	ErrInvalidMediaType = errors.New("invalid media type")

	// ErrEmptyItemID indicates the ID field is empty.
	ErrEmptyItemID = errors.New("item id cannot be empty")

	// ErrIDPrefixMismatch indicates an item ID that does not carry its
	// modality's prefix.
	ErrIDPrefixMismatch = errors.New("item id prefix does not match media type")

	// ErrEmptyFilepath indicates the Filepath field is empty.
	ErrEmptyFilepath = errors.New("filepath cannot be empty")

	// ErrEmptySessionID indicates the SessionID field is empty.
	ErrEmptySessionID = errors.New("session id cannot be empty")
)
