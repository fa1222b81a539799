package embedder

import (
	"context"
	"fmt"
)

// Client is the embedding collaborator of the retrieval engine. One client
// instance is created at startup and shared read-only across concurrent
// requests.
type Client interface {
	// Embed generates embeddings for the given texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedSingle generates an embedding for a single text.
	EmbedSingle(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the dimensionality of produced embeddings.
	Dimensions() int

	// Close cleans up any resources.
	Close() error
}

// Provider selects an embedding backend.
type Provider string

const (
	// ProviderEmbedEverything runs a local multilingual model in-process.
	ProviderEmbedEverything Provider = "embedeverything"

	// ProviderOpenAI calls an OpenAI-compatible embeddings API.
	ProviderOpenAI Provider = "openai"

	// ProviderMock is deterministic and used in tests.
	ProviderMock Provider = "mock"
)

// Config holds configuration for embedding clients.
type Config struct {
	Provider   Provider `json:"provider" mapstructure:"provider"`
	Model      string   `json:"model" mapstructure:"model"`
	APIKey     string   `json:"api_key" mapstructure:"api_key"`
	BaseURL    string   `json:"base_url" mapstructure:"base_url"`
	Dimensions int      `json:"dimensions" mapstructure:"dimensions"`
	BatchSize  int      `json:"batch_size" mapstructure:"batch_size"`
}

// NewClient creates an embedding client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderEmbedEverything:
		return NewEmbedEverythingClient(cfg)
	case ProviderOpenAI:
		return NewOpenAIClient(cfg)
	case ProviderMock:
		return NewMockClient(cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", cfg.Provider)
	}
}
