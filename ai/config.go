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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL of the model server.
	// Example: "http://localhost:11434" for a local Ollama instance.
	Host string

	// EmbeddingModel is the model identifier used for text and image
	// embeddings. Example: "nomic-embed-text", "clip-vit-b-32".
	EmbeddingModel string

	// VisionModel is the multimodal model identifier used for captioning.
	// Example: "llava", "gemma3".
	VisionModel string

	// CaptionPrompt is the instruction sent alongside an image when
	// requesting a caption. A default is applied when empty.
	CaptionPrompt string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the model server base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithVisionModel sets the captioning model identifier.
func WithVisionModel(model string) ConfigOption {
	return func(c *Config) {
		c.VisionModel = model
	}
}

// WithCaptionPrompt overrides the captioning instruction.
func WithCaptionPrompt(prompt string) ConfigOption {
	return func(c *Config) {
		c.CaptionPrompt = prompt
	}
}

// DefaultConfig returns a Config with sensible defaults for a local Ollama
// server.
func DefaultConfig() *Config {
	return &Config{
		Host:           "http://localhost:11434",
		EmbeddingModel: "nomic-embed-text",
		VisionModel:    "llava",
		CaptionPrompt:  defaultCaptionPrompt,
	}
}

const defaultCaptionPrompt = "Describe this image in one short sentence. " +
	"Respond with the description only, no preamble."

// NewConfig creates a Config with default values and applies the provided
// options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithVisionModel("gemma3"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Trailing slashes are stripped from the host so paths can be appended
// uniformly.
func (c *Config) Normalize() {
	c.Host = strings.TrimSuffix(c.Host, "/")
	if c.CaptionPrompt == "" {
		c.CaptionPrompt = defaultCaptionPrompt
	}
}

// Validate checks the configuration and normalizes it.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	c.Normalize()
	if c.Host == "" {
		return errors.New("host is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("embedding model is required")
	}
	if c.VisionModel == "" {
		return errors.New("vision model is required")
	}
	return nil
}
