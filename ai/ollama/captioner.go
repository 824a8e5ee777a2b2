package ollama

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/storytrail/storytrail/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Captioner implements ai.Captioner using a multimodal Ollama model.
type Captioner struct {
	client llms.Model
	prompt string
	logger *slog.Logger
}

var _ ai.Captioner = (*Captioner)(nil)

// newCaptioner is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCaptioner(config *ai.Config) (*Captioner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := ollama.New(
		ollama.WithServerURL(config.Host),
		ollama.WithModel(config.VisionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Captioner{
		client: client,
		prompt: config.CaptionPrompt,
		logger: slog.Default().With("component", "ollama-captioner"),
	}, nil
}

// NewCaptioner creates a new captioner using the provided configuration.
//
// Returns ai.Captioner interface to enforce abstraction.
func NewCaptioner(config *ai.Config) (ai.Captioner, error) {
	return newCaptioner(config)
}

// Caption describes the image at imagePath in one short sentence.
func (c *Captioner) Caption(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(imageMIMEType(imagePath), data),
				llms.TextPart(c.prompt),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("failed to generate caption", "path", imagePath, "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", fmt.Errorf("vision model returned no choices for %s", imagePath)
	}

	caption := strings.TrimSpace(response.Choices[0].Content)
	c.logger.Debug("generated caption", "path", imagePath, "caption", caption)
	return caption, nil
}

// imageMIMEType maps a file extension to an image MIME type.
// Extracted frames are always JPEG; uploads are usually JPEG or PNG.
func imageMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
