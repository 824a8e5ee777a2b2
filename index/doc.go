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


// Package index defines the vector index abstraction: per-collection storage
// of (id, vector, metadata, document) entries and top-k similarity queries
// returning parallel result arrays.
//
// The ingestion and search layers depend only on the VectorIndex interface.
// The index/badger subpackage provides the persistent implementation; the
// interface allows other backends (a remote vector database, an in-memory
// fake) to be swapped in without touching callers.
//
// Query results are parallel arrays (ids, metadatas, documents, distances)
// rather than a struct-per-hit because that is the shape vector index
// backends commonly return; the search layer zips them defensively.
package index
