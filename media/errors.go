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

import "errors"

var (
	// ErrUnsupportedInput indicates an upload payload of an unrecognized kind.
	ErrUnsupportedInput = errors.New("unsupported input kind")

	// ErrInvalidCadence indicates a non-positive frame sampling cadence.
	ErrInvalidCadence = errors.New("cadence must be positive")

	// ErrProbe indicates the video's duration could not be determined.
	ErrProbe = errors.New("failed to probe video")

	// ErrDecoderUnavailable indicates the decoder cannot be invoked at all,
	// as opposed to a single timestamp failing to decode.
	ErrDecoderUnavailable = errors.New("decoder unavailable")

	// ErrDecoderRequired is returned when a sampler is built without a decoder.
	ErrDecoderRequired = errors.New("decoder required")
)
