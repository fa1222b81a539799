package crossencoder

import (
	"context"
	"fmt"
	"sort"

	"github.com/soundprediction/go-embedeverything/pkg/embedder"
)

// EmbedEverythingClient implements the Client interface over a local
// go-embedeverything reranker model.
type EmbedEverythingClient struct {
	reranker *embedder.Reranker
	config   Config
}

// NewEmbedEverythingClient loads the local reranker model named by
// cfg.Model.
func NewEmbedEverythingClient(cfg Config) (*EmbedEverythingClient, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultConfig(ProviderEmbedEverything).Model
	}

	reranker, err := embedder.NewReranker(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create reranker: %w", err)
	}

	return &EmbedEverythingClient{reranker: reranker, config: cfg}, nil
}

// Rank ranks the given passages based on their relevance to the query.
func (e *EmbedEverythingClient) Rank(ctx context.Context, query string, passages []string) ([]RankedPassage, error) {
	if len(passages) == 0 {
		return []RankedPassage{}, nil
	}

	// go-embedeverything does not support context yet
	results, err := e.reranker.Rerank(query, passages)
	if err != nil {
		return nil, fmt.Errorf("failed to rerank passages: %w", err)
	}

	rankedPassages := make([]RankedPassage, len(results))
	for i, result := range results {
		rankedPassages[i] = RankedPassage{
			Passage: result.Text,
			Score:   float64(result.Score),
		}
	}

	sort.Slice(rankedPassages, func(i, j int) bool {
		return rankedPassages[i].Score > rankedPassages[j].Score
	})

	return rankedPassages, nil
}

// Close cleans up any resources.
func (e *EmbedEverythingClient) Close() error {
	e.reranker.Close()
	return nil
}
