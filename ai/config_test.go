package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:11434", cfg.Host)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.NotEmpty(t, cfg.VisionModel)
	assert.NotEmpty(t, cfg.CaptionPrompt)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://models.internal:11434"),
		WithEmbeddingModel("clip-vit-b-32"),
		WithVisionModel("gemma3"),
		WithCaptionPrompt("describe"),
	)
	assert.Equal(t, "http://models.internal:11434", cfg.Host)
	assert.Equal(t, "clip-vit-b-32", cfg.EmbeddingModel)
	assert.Equal(t, "gemma3", cfg.VisionModel)
	assert.Equal(t, "describe", cfg.CaptionPrompt)
}

func TestConfig_Normalize(t *testing.T) {
	cfg := NewConfig(WithHost("http://localhost:11434/"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434", cfg.Host)

	cfg.CaptionPrompt = ""
	cfg.Normalize()
	assert.NotEmpty(t, cfg.CaptionPrompt)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing host", func(c *Config) { c.Host = "" }, true},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }, true},
		{"missing vision model", func(c *Config) { c.VisionModel = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_Nil(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}
