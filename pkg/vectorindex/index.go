package vectorindex

import (
	"context"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// Entry is one indexed document embedding with the metadata needed for
// filtered retrieval.
type Entry struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Vector   []float32      `json:"vector"`
	Metadata types.Metadata `json:"metadata"`
}

// Match is a query hit. Score is cosine similarity in [-1, 1].
type Match struct {
	Entry Entry
	Score float64
}

// Index answers filtered nearest-neighbour queries over document embeddings.
type Index interface {
	// Upsert inserts or replaces entries by ID.
	Upsert(ctx context.Context, entries []Entry) error

	// Query returns up to k entries most similar to vector, restricted to
	// entries whose metadata satisfies filter. Results are ordered by
	// descending similarity.
	Query(ctx context.Context, vector []float32, filter types.Filters, k int) ([]Match, error)

	// Delete removes the entry with the given ID. Missing IDs are not an
	// error.
	Delete(ctx context.Context, id string) error

	// Count returns the number of indexed entries.
	Count(ctx context.Context) (int, error)

	// Close releases underlying resources.
	Close() error
}
