package source

import (
	"context"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// CandidateSource retrieves scored candidates for one query string. The
// interface is closed: the engine's ranking math assumes the score semantics
// of the implementations in this package.
type CandidateSource interface {
	// Name identifies the source in logs and error wrapping.
	Name() string

	// Retrieve returns up to limit candidates for the query, restricted by
	// filter, ordered by descending source-native score. A source that is
	// unavailable returns a *types.SourceError.
	Retrieve(ctx context.Context, query string, filter types.Filters, limit int) ([]types.Candidate, error)

	candidateSource()
}
