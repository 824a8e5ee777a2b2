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


// Package ai provides abstractions for the model services used by StoryTrail.
//
// The package defines interfaces for embedding generation (text and image,
// sharing one vector space) and image captioning. The ingestion and search
// layers depend only on these abstractions, never on a concrete model client.
//
// # Implementation Packages
//
//   - ai/ollama: production implementation backed by an Ollama server
//   - ai/mock: deterministic test doubles for unit testing without a model
//     server
//
// Public constructors in implementation packages return the interface types
// (ai.Provider, ai.Embedder, ai.Captioner) to enforce abstraction; mock
// constructors return concrete types so tests can inject behavior and assert
// call counts.
//
// # Usage
//
//	provider, err := ollama.NewProvider(ai.NewConfig(ai.WithVisionModel("llava")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "a dog on a beach")
//	caption, err := provider.Captioner().Caption(ctx, "/tmp/dog.jpg")
package ai
