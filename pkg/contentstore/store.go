package contentstore

import (
	"context"
	"errors"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// LexicalHit is one sparse-retrieval match with its raw relevance score.
// Scores are only comparable within a single query's result set.
type LexicalHit struct {
	Document types.Document
	Score    float64
}

// Store owns document persistence and lexical retrieval.
type Store interface {
	// PutDocuments inserts or replaces documents by ID.
	PutDocuments(ctx context.Context, docs []types.Document) error

	// GetDocument fetches one document by ID. Returns ErrNotFound when the
	// ID is unknown.
	GetDocument(ctx context.Context, id string) (*types.Document, error)

	// LexicalQuery returns up to limit documents matching the query text,
	// restricted to documents whose metadata satisfies filter, ordered by
	// descending relevance.
	LexicalQuery(ctx context.Context, query string, filter types.Filters, limit int) ([]LexicalHit, error)

	// Close releases underlying resources.
	Close() error
}
