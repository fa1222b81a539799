package crossencoder

import (
	"context"
	"math"
	"sort"
	"strings"
)

// LocalRerankerClient scores passages with term-frequency cosine similarity
// against the query. It has no external dependencies and serves as a
// degraded-mode reranker when no model backend is configured.
type LocalRerankerClient struct{}

// NewLocalRerankerClient creates a new local term-frequency reranker.
func NewLocalRerankerClient(_ Config) *LocalRerankerClient {
	return &LocalRerankerClient{}
}

// Rank ranks passages by cosine similarity of their term-frequency vectors
// with the query's.
func (c *LocalRerankerClient) Rank(_ context.Context, query string, passages []string) ([]RankedPassage, error) {
	if len(passages) == 0 {
		return []RankedPassage{}, nil
	}

	queryTF := termFrequencies(query)

	ranked := make([]RankedPassage, 0, len(passages))
	for _, passage := range passages {
		ranked = append(ranked, RankedPassage{
			Passage: passage,
			Score:   cosineTF(queryTF, termFrequencies(passage)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked, nil
}

// Close releases resources. A no-op for the local client.
func (c *LocalRerankerClient) Close() error {
	return nil
}

func termFrequencies(text string) map[string]float64 {
	tf := make(map[string]float64)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		tf[token]++
	}
	return tf
}

func cosineTF(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for token, weight := range a {
		normA += weight * weight
		if other, ok := b[token]; ok {
			dot += weight * other
		}
	}
	for _, weight := range b {
		normB += weight * weight
	}
	if dot == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
