package crossencoder

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"sort"
)

// MockRerankerClient produces deterministic scores derived from hashing the
// query and passage together. Useful for tests that need stable ordering
// without any model backend.
type MockRerankerClient struct{}

// NewMockRerankerClient creates a new deterministic mock reranker.
func NewMockRerankerClient(_ Config) *MockRerankerClient {
	return &MockRerankerClient{}
}

// Rank scores each passage with a hash of (query, passage). Identical inputs
// always produce identical scores and ordering.
func (c *MockRerankerClient) Rank(_ context.Context, query string, passages []string) ([]RankedPassage, error) {
	ranked := make([]RankedPassage, 0, len(passages))
	for _, passage := range passages {
		sum := sha256.Sum256([]byte(query + "\x00" + passage))
		raw := binary.BigEndian.Uint64(sum[:8])
		ranked = append(ranked, RankedPassage{
			Passage: passage,
			Score:   float64(raw%10000) / 10000,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked, nil
}

// Close releases resources. A no-op for the mock client.
func (c *MockRerankerClient) Close() error {
	return nil
}
