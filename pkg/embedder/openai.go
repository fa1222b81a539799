package embedder

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client over the OpenAI embeddings API. Custom
// BaseURL configuration supports OpenAI-compatible services.
type OpenAIClient struct {
	client *openai.Client
	config Config
}

// NewOpenAIClient creates a new OpenAI embeddings client.
func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("openai embedder requires an api key")
	}
	if cfg.Model == "" {
		cfg.Model = string(openai.SmallEmbedding3)
	}

	var client *openai.Client
	if cfg.BaseURL != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		clientConfig.BaseURL = cfg.BaseURL
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		client = openai.NewClient(cfg.APIKey)
	}

	return &OpenAIClient{client: client, config: cfg}, nil
}

// Embed generates embeddings for the given texts.
func (o *OpenAIClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(o.config.Model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d texts", len(resp.Data), len(texts))
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		embeddings[i] = d.Embedding
	}
	return embeddings, nil
}

// EmbedSingle generates an embedding for a single text.
func (o *OpenAIClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := o.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// Dimensions returns the configured embedding dimensionality.
func (o *OpenAIClient) Dimensions() int {
	return o.config.Dimensions
}

// Close implements Client. The HTTP client holds no resources to release.
func (o *OpenAIClient) Close() error {
	return nil
}
