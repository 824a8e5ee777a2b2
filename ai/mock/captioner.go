package mock

import (
	"context"
	"path/filepath"
)

// MockCaptioner is a test double for ai.Captioner.
// It allows custom behavior injection via a function field.
type MockCaptioner struct {
	// CaptionFunc is called by Caption if set.
	// If nil, uses default deterministic behavior.
	CaptionFunc func(ctx context.Context, imagePath string) (string, error)

	callCount int
}

// NewMockCaptioner creates a mock captioner with default deterministic
// behavior. Note: Returns concrete type to allow test assertions.
func NewMockCaptioner() *MockCaptioner {
	return &MockCaptioner{}
}

// Caption returns a deterministic caption derived from the file name.
// The file does not need to exist.
func (m *MockCaptioner) Caption(ctx context.Context, imagePath string) (string, error) {
	m.callCount++

	if m.CaptionFunc != nil {
		return m.CaptionFunc(ctx, imagePath)
	}

	return "a picture of " + filepath.Base(imagePath), nil
}

// CallCount returns the number of Caption calls.
func (m *MockCaptioner) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockCaptioner) Reset() {
	m.callCount = 0
	m.CaptionFunc = nil
}
