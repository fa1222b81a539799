package source

import (
	"context"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/contentstore"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// LexicalSource retrieves candidates from the content store's sparse search.
type LexicalSource struct {
	store contentstore.Store
}

var _ CandidateSource = (*LexicalSource)(nil)

// NewLexicalSource creates a lexical source over the given store.
func NewLexicalSource(store contentstore.Store) *LexicalSource {
	return &LexicalSource{store: store}
}

// Name identifies the source.
func (s *LexicalSource) Name() string { return "lexical" }

func (s *LexicalSource) candidateSource() {}

// Retrieve runs a lexical query and returns candidates with SparseScore set
// to the store's raw relevance score. Bodies come along for free, so they
// are kept for downstream reranking and excerpting.
func (s *LexicalSource) Retrieve(ctx context.Context, query string, filter types.Filters, limit int) ([]types.Candidate, error) {
	if limit <= 0 {
		return nil, nil
	}

	hits, err := s.store.LexicalQuery(ctx, query, filter, limit)
	if err != nil {
		return nil, types.NewSourceError(s.Name(), err)
	}

	candidates := make([]types.Candidate, 0, len(hits))
	for _, hit := range hits {
		candidates = append(candidates, types.Candidate{
			ID:          hit.Document.ID,
			Title:       hit.Document.Title,
			Metadata:    hit.Document.Metadata,
			Body:        hit.Document.MarkdownBody,
			SparseScore: types.Float(hit.Score),
		})
	}
	return candidates, nil
}
