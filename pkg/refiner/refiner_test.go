package refiner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// stubRefiner returns a fixed refinement or error.
type stubRefiner struct {
	refinement *Refinement
	err        error
	calls      int
}

func (s *stubRefiner) Refine(context.Context, string) (*Refinement, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.refinement, nil
}

func (s *stubRefiner) Close() error { return nil }

func TestParseRefinement(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "valid json",
			raw:  `{"refined_query": "دراسة تغيرات الدالة", "keywords": ["دالة"]}`,
			want: "دراسة تغيرات الدالة",
		},
		{
			name: "repairable json with trailing comma",
			raw:  `{"refined_query": "limites et continuité", "keywords": ["limites",]}`,
			want: "limites et continuité",
		},
		{
			name: "repairable json in code fence",
			raw:  "```json\n{\"refined_query\": \"suites numériques\", \"keywords\": []}\n```",
			want: "suites numériques",
		},
		{
			name:    "empty refined query",
			raw:     `{"refined_query": "", "keywords": []}`,
			wantErr: true,
		},
		{
			name:    "not json at all",
			raw:     "sorry, I cannot help with that",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refinement, err := parseRefinement(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, types.ErrRefinementFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, refinement.RefinedQuery)
		})
	}
}

func TestNewOpenAIRefinerRequiresCredentials(t *testing.T) {
	_, err := NewOpenAIRefiner(OpenAIConfig{})
	assert.Error(t, err)

	r, err := NewOpenAIRefiner(OpenAIConfig{BaseURL: "http://localhost:11434/v1"})
	require.NoError(t, err)
	assert.NoError(t, r.Close())
}

func TestFailOpenWithNilInner(t *testing.T) {
	f := NewFailOpen(nil, nil)
	defer f.Close()

	refinement, refined := f.Refine(context.Background(), "شنو هي النهايات")
	assert.False(t, refined)
	assert.Equal(t, "شنو هي النهايات", refinement.RefinedQuery)
}

func TestFailOpenFallsBackOnError(t *testing.T) {
	inner := &stubRefiner{err: errors.New("rate limited")}
	f := NewFailOpen(inner, nil)

	refinement, refined := f.Refine(context.Background(), "original")
	assert.False(t, refined)
	assert.Equal(t, "original", refinement.RefinedQuery)
	assert.Equal(t, 1, inner.calls)
}

func TestFailOpenPassesThroughSuccess(t *testing.T) {
	inner := &stubRefiner{refinement: &Refinement{RefinedQuery: "refined", Keywords: []string{"k"}}}
	f := NewFailOpen(inner, nil)

	refinement, refined := f.Refine(context.Background(), "original")
	assert.True(t, refined)
	assert.Equal(t, "refined", refinement.RefinedQuery)
	assert.Equal(t, []string{"k"}, refinement.Keywords)
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	inner := &stubRefiner{err: errors.New("upstream down")}
	cfg := DefaultBreakerConfig()
	b := NewBreakerRefiner(inner, cfg, nil)
	defer b.Close()

	for i := 0; i < 5; i++ {
		_, err := b.Refine(context.Background(), "query")
		require.Error(t, err)
	}

	// Breaker now open: inner is no longer called.
	callsBefore := inner.calls
	_, err := b.Refine(context.Background(), "query")
	require.Error(t, err)
	assert.Equal(t, callsBefore, inner.calls)
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	inner := &stubRefiner{refinement: &Refinement{RefinedQuery: "refined"}}
	b := NewBreakerRefiner(inner, DefaultBreakerConfig(), nil)
	defer b.Close()

	refinement, err := b.Refine(context.Background(), "query")
	require.NoError(t, err)
	assert.Equal(t, "refined", refinement.RefinedQuery)
}
