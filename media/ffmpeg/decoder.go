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


// Package ffmpeg implements media.Decoder on top of the ffmpeg and ffprobe
// binaries.
package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"github.com/storytrail/storytrail/media"
)

const defaultScaleWidth = 640

// Decoder probes and decodes videos by shelling out to ffmpeg. Extracted
// frames are scaled to a fixed width with the aspect ratio preserved.
type Decoder struct {
	scaleWidth int
}

var _ media.Decoder = (*Decoder)(nil)

// Option configures a Decoder.
type Option func(*Decoder)

// WithScaleWidth sets the output frame width in pixels.
func WithScaleWidth(width int) Option {
	return func(d *Decoder) {
		if width > 0 {
			d.scaleWidth = width
		}
	}
}

// NewDecoder creates an ffmpeg-backed decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{scaleWidth: defaultScaleWidth}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type probeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration reports the container duration from ffprobe.
func (d *Decoder) Duration(ctx context.Context, path string) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	out, err := ffmpeggo.Probe(path)
	if err != nil {
		return 0, mapExecErr(err, "ffprobe")
	}

	var probed probeFormat
	if err := json.Unmarshal([]byte(out), &probed); err != nil {
		return 0, fmt.Errorf("failed to parse probe output for %s: %w", path, err)
	}

	secs, err := strconv.ParseFloat(probed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q for %s: %w", probed.Format.Duration, path, err)
	}

	return time.Duration(secs * float64(time.Second)), nil
}

// ExtractFrame decodes exactly one frame at the given offset into outPath.
func (d *Decoder) ExtractFrame(ctx context.Context, path string, offset time.Duration, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out := ffmpeggo.Input(path, ffmpeggo.KwArgs{"ss": offset.Seconds()}).
		Filter("scale", ffmpeggo.Args{strconv.Itoa(d.scaleWidth), "-1"}).
		Output(outPath, ffmpeggo.KwArgs{"vframes": 1})
	err := out.OverwriteOutput(out).
		Silent(true).
		Run()
	if err != nil {
		return mapExecErr(err, "ffmpeg")
	}
	return nil
}

// mapExecErr distinguishes a missing binary from a per-invocation failure.
func mapExecErr(err error, binary string) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s not found in PATH", media.ErrDecoderUnavailable, binary)
	}
	return err
}
