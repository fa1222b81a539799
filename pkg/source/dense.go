package source

import (
	"context"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/embedder"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/vectorindex"
)

// overSupplyFactor widens the vector query so that metadata filtering and
// downstream dedup still leave enough candidates.
const overSupplyFactor = 3

// DefaultMinDenseScore is the cosine similarity below which a vector match
// is noise rather than a candidate.
const DefaultMinDenseScore = 0.25

// DenseSource retrieves candidates by embedding the query and scanning the
// vector index.
type DenseSource struct {
	embedder embedder.Client
	index    vectorindex.Index
	minScore float64
}

var _ CandidateSource = (*DenseSource)(nil)

// NewDenseSource creates a dense source over the given embedder and index.
// minScore <= 0 selects DefaultMinDenseScore.
func NewDenseSource(emb embedder.Client, index vectorindex.Index, minScore float64) *DenseSource {
	if minScore <= 0 {
		minScore = DefaultMinDenseScore
	}
	return &DenseSource{embedder: emb, index: index, minScore: minScore}
}

// Name identifies the source.
func (s *DenseSource) Name() string { return "dense" }

func (s *DenseSource) candidateSource() {}

// Retrieve embeds the query and returns the nearest entries as candidates
// with DenseScore set to cosine similarity.
func (s *DenseSource) Retrieve(ctx context.Context, query string, filter types.Filters, limit int) ([]types.Candidate, error) {
	if limit <= 0 {
		return nil, nil
	}

	vector, err := s.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, types.NewSourceError(s.Name(), err)
	}

	// Query wide, then re-check the filter client side. Index
	// implementations may filter approximately.
	matches, err := s.index.Query(ctx, vector, filter, limit*overSupplyFactor)
	if err != nil {
		return nil, types.NewSourceError(s.Name(), err)
	}

	candidates := make([]types.Candidate, 0, len(matches))
	for _, match := range matches {
		if match.Score < s.minScore {
			continue
		}
		if !filter.Match(match.Entry.Metadata) {
			continue
		}
		candidates = append(candidates, types.Candidate{
			ID:         match.Entry.ID,
			Title:      match.Entry.Title,
			Metadata:   match.Entry.Metadata,
			DenseScore: types.Float(match.Score),
		})
		if len(candidates) == limit {
			break
		}
	}
	return candidates, nil
}
