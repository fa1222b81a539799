package embedder

import (
	"context"
	"fmt"

	"github.com/soundprediction/go-embedeverything/pkg/embedder"
)

// DefaultLocalModel is a multilingual model that handles Arabic, French,
// and English queries in one shared vector space.
const DefaultLocalModel = "intfloat/multilingual-e5-small"

// EmbedEverythingClient implements Client over a local embedding model.
// The underlying runtime is safe for concurrent inference, so a single
// instance serves all requests.
type EmbedEverythingClient struct {
	client *embedder.Embedder
	config Config
}

// NewEmbedEverythingClient loads the local model named by cfg.Model.
func NewEmbedEverythingClient(cfg Config) (*EmbedEverythingClient, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultLocalModel
	}

	client, err := embedder.NewEmbedder(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &EmbedEverythingClient{client: client, config: cfg}, nil
}

// Embed generates embeddings for the given texts.
func (e *EmbedEverythingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	// go-embedeverything does not support context yet
	embeddings, err := e.client.Embed(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	return embeddings, nil
}

// EmbedSingle generates an embedding for a single text.
func (e *EmbedEverythingClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}
	return embeddings[0], nil
}

// Dimensions returns the number of dimensions in the embeddings.
func (e *EmbedEverythingClient) Dimensions() int {
	return e.config.Dimensions
}

// Close cleans up any resources.
func (e *EmbedEverythingClient) Close() error {
	e.client.Close()
	return nil
}
