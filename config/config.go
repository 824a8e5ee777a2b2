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


// Package config loads application configuration from a YAML file, falling
// back to built-in defaults when the file or individual keys are absent.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	AI       AIConfig       `yaml:"ai"`
	Sampling SamplingConfig `yaml:"sampling"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig configures on-disk locations.
type StorageConfig struct {
	UploadsDir string `yaml:"uploads_dir"`
	IndexDir   string `yaml:"index_dir"`
}

// AIConfig configures the Ollama connection and models.
type AIConfig struct {
	Host           string `yaml:"host"`
	EmbeddingModel string `yaml:"embedding_model"`
	VisionModel    string `yaml:"vision_model"`
}

// SamplingConfig configures video frame sampling.
type SamplingConfig struct {
	FrameCadenceSeconds float64 `yaml:"frame_cadence_seconds"`
	MaxFrames           int     `yaml:"max_frames"`
}

// FrameCadence returns the sampling cadence as a duration.
func (s SamplingConfig) FrameCadence() time.Duration {
	return time.Duration(s.FrameCadenceSeconds * float64(time.Second))
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			UploadsDir: "data/uploads",
			IndexDir:   "data/index",
		},
		AI: AIConfig{
			Host:           "http://localhost:11434",
			EmbeddingModel: "nomic-embed-text",
			VisionModel:    "llava",
		},
		Sampling: SamplingConfig{
			FrameCadenceSeconds: 2,
			MaxFrames:           40,
		},
	}
}

// Load reads the configuration file at path, layered over the defaults.
// A missing file is not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Storage.UploadsDir == "" {
		return errors.New("storage.uploads_dir must not be empty")
	}
	if c.Storage.IndexDir == "" {
		return errors.New("storage.index_dir must not be empty")
	}
	if c.AI.Host == "" {
		return errors.New("ai.host must not be empty")
	}
	if c.Sampling.FrameCadenceSeconds <= 0 {
		return errors.New("sampling.frame_cadence_seconds must be positive")
	}
	if c.Sampling.MaxFrames < 1 {
		return errors.New("sampling.max_frames must be at least 1")
	}
	return nil
}
