/*
Package crossencoder provides cross-encoder functionality for ranking
passages based on their relevance to a query.

Cross-encoders score query/passage pairs jointly, which makes them the
second stage of the retrieval pipeline: fast dense/lexical retrieval
over-supplies candidates, the cross-encoder reorders them. This package
provides a local go-embedeverything reranker, an OpenAI-based boolean
classifier reranker, a dependency-free term-frequency reranker, and a
deterministic mock for testing.
*/
package crossencoder

import (
	"context"
	"fmt"
)

// RankedPassage pairs a passage with its relevance score.
type RankedPassage struct {
	Passage string  `json:"passage"`
	Score   float64 `json:"score"`
}

// Client scores passages against a query. Implementations return passages
// ordered by score descending. Clients are process-wide singletons shared
// read-only across concurrent requests.
type Client interface {
	// Rank ranks the given passages based on their relevance to the query.
	Rank(ctx context.Context, query string, passages []string) ([]RankedPassage, error)

	// Close cleans up any resources.
	Close() error
}

// Provider represents the type of cross-encoder provider.
type Provider string

const (
	// ProviderEmbedEverything uses go-embedeverything for local reranking.
	ProviderEmbedEverything Provider = "embedeverything"

	// ProviderOpenAI uses an OpenAI-compatible API for reranking.
	ProviderOpenAI Provider = "openai"

	// ProviderLocal uses local term-frequency similarity.
	ProviderLocal Provider = "local"

	// ProviderMock uses a deterministic mock for testing.
	ProviderMock Provider = "mock"
)

// Config holds configuration for cross-encoder clients.
type Config struct {
	Provider       Provider `json:"provider" mapstructure:"provider"`
	Model          string   `json:"model" mapstructure:"model"`
	APIKey         string   `json:"api_key" mapstructure:"api_key"`
	BaseURL        string   `json:"base_url" mapstructure:"base_url"`
	MaxConcurrency int      `json:"max_concurrency" mapstructure:"max_concurrency"`
}

// NewClient creates a cross-encoder client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderEmbedEverything:
		return NewEmbedEverythingClient(cfg)
	case ProviderOpenAI:
		return NewOpenAIRerankerClient(cfg)
	case ProviderLocal:
		return NewLocalRerankerClient(cfg), nil
	case ProviderMock:
		return NewMockRerankerClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported cross-encoder provider: %s", cfg.Provider)
	}
}

// DefaultConfig returns a default configuration for the given provider.
func DefaultConfig(provider Provider) Config {
	switch provider {
	case ProviderEmbedEverything:
		return Config{
			Provider: provider,
			Model:    "BAAI/bge-reranker-base",
			// Local inference is single-threaded.
			MaxConcurrency: 1,
		}
	case ProviderOpenAI:
		return Config{
			Provider:       provider,
			Model:          "gpt-4o-mini",
			MaxConcurrency: 5,
		}
	default:
		return Config{Provider: provider}
	}
}
