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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Decoder abstracts the video decoding backend used for frame sampling.
type Decoder interface {
	// Duration reports the playable duration of the video at path.
	Duration(ctx context.Context, path string) (time.Duration, error)

	// ExtractFrame decodes a single frame at the given offset and writes it
	// to outPath. A failure for one offset does not imply the decoder is
	// broken; implementations return ErrDecoderUnavailable when it is.
	ExtractFrame(ctx context.Context, path string, offset time.Duration, outPath string) error
}

// FrameSampler extracts still frames from videos at a fixed cadence.
type FrameSampler struct {
	decoder Decoder
	logger  *slog.Logger
}

// SamplerOption configures a FrameSampler.
type SamplerOption func(*FrameSampler)

// WithSamplerLogger sets the logger used by the sampler.
func WithSamplerLogger(logger *slog.Logger) SamplerOption {
	return func(s *FrameSampler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFrameSampler creates a frame sampler over the given decoder.
func NewFrameSampler(decoder Decoder, opts ...SamplerOption) (*FrameSampler, error) {
	if decoder == nil {
		return nil, ErrDecoderRequired
	}
	s := &FrameSampler{
		decoder: decoder,
		logger:  slog.Default().With("component", "frame_sampler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Extract samples frames from videoPath every cadence seconds starting at
// offset zero, writing at most maxFrames JPEG files into outDir, and returns
// the written paths in timestamp order. Frames are numbered densely
// (frame_0000.jpg, frame_0001.jpg, ...) so a failed timestamp leaves no gap.
// A timestamp whose decode fails is skipped and does not count against
// maxFrames; only ErrDecoderUnavailable aborts sampling.
func (s *FrameSampler) Extract(ctx context.Context, videoPath, outDir string, cadence time.Duration, maxFrames int) ([]string, error) {
	if cadence <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCadence, cadence)
	}

	duration, err := s.decoder.Duration(ctx, videoPath)
	if err != nil {
		if errors.Is(err, ErrDecoderUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrProbe, videoPath, err)
	}

	if maxFrames <= 0 || duration <= 0 {
		return []string{}, nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create frame directory %s: %w", outDir, err)
	}

	frames := make([]string, 0, maxFrames)
	produced := 0
	for t := time.Duration(0); t < duration && produced < maxFrames; t += cadence {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outPath := filepath.Join(outDir, fmt.Sprintf("frame_%04d.jpg", produced))
		if err := s.decoder.ExtractFrame(ctx, videoPath, t, outPath); err != nil {
			if errors.Is(err, ErrDecoderUnavailable) {
				return nil, err
			}
			s.logger.Debug("skipping frame",
				"video", videoPath,
				"offset", t,
				"error", err)
			continue
		}

		frames = append(frames, outPath)
		produced++
	}

	s.logger.Debug("sampled frames",
		"video", videoPath,
		"duration", duration,
		"cadence", cadence,
		"frames", len(frames))
	return frames, nil
}
