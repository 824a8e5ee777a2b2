package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedImageFunc is called by EmbedImage if set.
	// If nil, uses default deterministic behavior keyed on the path.
	EmbedImageFunc func(ctx context.Context, imagePath string) ([]float32, error)

	textCalls  int
	imageCalls int
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText generates a deterministic embedding based on the text hash.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.textCalls++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}

	return generateDeterministicVector(text, 384), nil
}

// EmbedImage generates a deterministic embedding based on the path hash.
// The file does not need to exist.
func (m *MockEmbedder) EmbedImage(ctx context.Context, imagePath string) ([]float32, error) {
	m.imageCalls++

	if m.EmbedImageFunc != nil {
		return m.EmbedImageFunc(ctx, imagePath)
	}

	return generateDeterministicVector(imagePath, 384), nil
}

// CallCount returns the total number of embedding calls.
func (m *MockEmbedder) CallCount() int {
	return m.textCalls + m.imageCalls
}

// TextCallCount returns the number of EmbedText calls.
func (m *MockEmbedder) TextCallCount() int {
	return m.textCalls
}

// ImageCallCount returns the number of EmbedImage calls.
func (m *MockEmbedder) ImageCallCount() int {
	return m.imageCalls
}

// Reset clears call counts and injected behavior.
func (m *MockEmbedder) Reset() {
	m.textCalls = 0
	m.imageCalls = 0
	m.EmbedTextFunc = nil
	m.EmbedImageFunc = nil
}

// generateDeterministicVector creates a deterministic embedding vector from a
// seed string, so the same input always produces the same vector.
func generateDeterministicVector(seedText string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(seedText))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000) / 1000.0
	}

	// Normalize to unit length
	var sumSquares float32
	for _, v := range vector {
		sumSquares += v * v
	}
	if sumSquares > 0 {
		norm := float32(1.0) / float32(math.Sqrt(float64(sumSquares)))
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
