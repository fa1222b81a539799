package embedder

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"strings"
)

// MockClient produces deterministic embeddings derived from token hashes.
// Texts sharing tokens get nearby vectors, which is enough structure for
// ranking tests without a real model.
type MockClient struct {
	dims int
}

// NewMockClient returns a MockClient with the given dimensionality
// (default 64).
func NewMockClient(dims int) *MockClient {
	if dims <= 0 {
		dims = 64
	}
	return &MockClient{dims: dims}
}

// Embed generates embeddings for the given texts.
func (m *MockClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.embedOne(t)
	}
	return out, nil
}

// EmbedSingle generates an embedding for a single text.
func (m *MockClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return m.embedOne(text), nil
}

// Dimensions returns the mock dimensionality.
func (m *MockClient) Dimensions() int { return m.dims }

// Close implements Client.
func (m *MockClient) Close() error { return nil }

// embedOne sums a hashed unit contribution per token and L2-normalizes.
func (m *MockClient) embedOne(text string) []float32 {
	vec := make([]float32, m.dims)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := sha256.Sum256([]byte(tok))
		for d := 0; d < m.dims; d++ {
			bits := binary.BigEndian.Uint32(h[(d*4)%28 : (d*4)%28+4])
			// Map to [-1, 1), varied per dimension by reusing hash bytes.
			vec[d] += float32(int32(bits^uint32(d)*2654435761)) / float32(math.MaxInt32)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		vec[0] = 1
		return vec
	}
	n := float32(math.Sqrt(norm))
	for i := range vec {
		vec[i] /= n
	}
	return vec
}
