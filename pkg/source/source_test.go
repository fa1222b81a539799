package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/contentstore"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/embedder"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/vectorindex"
)

// failingSource always reports unavailability.
type failingSource struct{ name string }

func (f *failingSource) Name() string        { return f.name }
func (f *failingSource) candidateSource()    {}
func (f *failingSource) Retrieve(context.Context, string, types.Filters, int) ([]types.Candidate, error) {
	return nil, types.NewSourceError(f.name, errors.New("backend down"))
}

// staticSource returns fixed candidates.
type staticSource struct {
	name       string
	candidates []types.Candidate
}

func (s *staticSource) Name() string     { return s.name }
func (s *staticSource) candidateSource() {}
func (s *staticSource) Retrieve(context.Context, string, types.Filters, int) ([]types.Candidate, error) {
	return s.candidates, nil
}

func TestDenseSourceRetrieve(t *testing.T) {
	ctx := context.Background()

	emb, err := embedder.NewClient(embedder.Config{Provider: embedder.ProviderMock, Dimensions: 64})
	require.NoError(t, err)

	idx := vectorindex.NewMemoryIndex()
	mathVec, err := emb.EmbedSingle(ctx, "تغيرات الدالة العددية")
	require.NoError(t, err)
	relatedVec, err := emb.EmbedSingle(ctx, "دراسة تغيرات الدالة الاسية")
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(ctx, []vectorindex.Entry{
		{ID: "math", Title: "math doc", Vector: mathVec, Metadata: types.Metadata{Subject: "math"}},
		{ID: "related", Title: "related doc", Vector: relatedVec, Metadata: types.Metadata{Subject: "math"}},
	}))

	src := NewDenseSource(emb, idx, 0)

	candidates, err := src.Retrieve(ctx, "تغيرات الدالة العددية", types.Filters{}, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "math", candidates[0].ID)
	require.NotNil(t, candidates[0].DenseScore)
	assert.InDelta(t, 1.0, *candidates[0].DenseScore, 1e-6)

	filtered, err := src.Retrieve(ctx, "دراسة تغيرات الدالة الاسية", types.Filters{Subject: "math"}, 1)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "related", filtered[0].ID)
}

func TestLexicalSourceRetrieve(t *testing.T) {
	ctx := context.Background()

	store := contentstore.NewMemoryStore()
	require.NoError(t, store.PutDocuments(ctx, []types.Document{
		{ID: "math", Title: "دراسة الدالة", MarkdownBody: "تغيرات الدالة العددية", Metadata: types.Metadata{Subject: "math"}},
	}))

	src := NewLexicalSource(store)
	candidates, err := src.Retrieve(ctx, "تغيرات الدالة", types.Filters{}, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "math", candidates[0].ID)
	require.NotNil(t, candidates[0].SparseScore)
	assert.NotEmpty(t, candidates[0].Body)
}

func TestFuseWeightsAndNormalization(t *testing.T) {
	dense := []types.Candidate{
		{ID: "a", DenseScore: types.Float(0.9)},
		{ID: "b", DenseScore: types.Float(0.5)},
	}
	sparse := []types.Candidate{
		{ID: "b", SparseScore: types.Float(4.0), Body: "body b"},
		{ID: "c", SparseScore: types.Float(2.0)},
	}

	fused := Fuse(dense, sparse)
	require.Len(t, fused, 3)

	byID := map[string]types.Candidate{}
	for _, c := range fused {
		byID[c.ID] = c
	}

	// a: dense only -> 0.7*0.9
	assert.InDelta(t, 0.63, *byID["a"].HybridScore, 1e-9)
	// b: 0.7*0.5 + 0.3*1.0 (max sparse normalizes to 1)
	assert.InDelta(t, 0.65, *byID["b"].HybridScore, 1e-9)
	// c: sparse min normalizes to 0
	assert.InDelta(t, 0.0, *byID["c"].HybridScore, 1e-9)

	// merged candidate keeps the lexical body
	assert.Equal(t, "body b", byID["b"].Body)

	// ordered by hybrid score descending
	assert.Equal(t, "b", fused[0].ID)
	assert.Equal(t, "a", fused[1].ID)
}

func TestFuseSingleSparseHitGetsFullWeight(t *testing.T) {
	fused := Fuse(nil, []types.Candidate{{ID: "only", SparseScore: types.Float(0.001)}})
	require.Len(t, fused, 1)
	assert.InDelta(t, 0.3, *fused[0].HybridScore, 1e-9)
}

func TestHybridDegradesOnSingleFailure(t *testing.T) {
	healthy := &staticSource{name: "lexical", candidates: []types.Candidate{
		{ID: "x", SparseScore: types.Float(1.0)},
	}}

	h := NewHybrid(&failingSource{name: "dense"}, healthy, nil)
	candidates, err := h.Retrieve(context.Background(), "query", types.Filters{}, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "x", candidates[0].ID)
}

func TestHybridFailsWhenBothSourcesFail(t *testing.T) {
	h := NewHybrid(&failingSource{name: "dense"}, &failingSource{name: "lexical"}, nil)
	_, err := h.Retrieve(context.Background(), "query", types.Filters{}, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSourceUnavailable)
}

func TestHybridRespectsLimit(t *testing.T) {
	many := make([]types.Candidate, 0, 5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		many = append(many, types.Candidate{ID: id, DenseScore: types.Float(0.5)})
	}
	h := NewHybrid(&staticSource{name: "dense", candidates: many}, nil, nil)

	candidates, err := h.Retrieve(context.Background(), "query", types.Filters{}, 2)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}
