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


package index

import "errors"

var (
	// ErrNilEntry indicates a nil entry was passed to Add.
	ErrNilEntry = errors.New("entry cannot be nil")

	// ErrEmptyEntryID indicates an entry without an ID.
	ErrEmptyEntryID = errors.New("entry id cannot be empty")

	// ErrEmptyVector indicates an entry without a vector.
	ErrEmptyVector = errors.New("entry vector cannot be empty")

	// ErrEmptyCollectionName indicates an empty collection name.
	ErrEmptyCollectionName = errors.New("collection name cannot be empty")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
