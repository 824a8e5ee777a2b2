package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/storytrail/storytrail/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Embedder implements ai.Embedder against an Ollama server.
// Text goes through the langchaingo embedder; images go through the Ollama
// embeddings API directly, since the langchaingo embedding surface is
// text-only.
type Embedder struct {
	embedder embeddings.Embedder
	client   *http.Client
	host     string
	model    string
	logger   *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// embeddingRequest is the Ollama embeddings API request body.
type embeddingRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images,omitempty"`
}

// embeddingResponse is the Ollama embeddings API response body.
type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	llm, err := ollama.New(
		ollama.WithServerURL(config.Host),
		ollama.WithModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(llm, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		client:   http.DefaultClient,
		host:     config.Host,
		model:    config.EmbeddingModel,
		logger:   slog.Default().With("component", "ollama-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("generating embedding for text", "length", len(text))

	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate text embedding", "err", err)
		return nil, err
	}

	if len(vectors) == 0 {
		e.logger.Warn("embedder returned empty result")
		return []float32{}, nil
	}

	return vectors[0], nil
}

// EmbedImage generates a vector embedding for the image at imagePath by
// posting its base64 content to the embeddings API.
func (e *Embedder) EmbedImage(ctx context.Context, imagePath string) ([]float32, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("generating embedding for image", "path", imagePath, "bytes", len(data))

	body, err := json.Marshal(embeddingRequest{
		Model:  e.model,
		Images: []string{base64.StdEncoding.EncodeToString(data)},
	})
	if err != nil {
		return nil, err
	}

	url := e.host + "/api/embeddings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call embeddings API at %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embeddings API at %s returned status %d", url, resp.StatusCode)
	}

	var result embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse embeddings response: %w", err)
	}

	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("embeddings API returned no vector for %s", imagePath)
	}

	return result.Embedding, nil
}
