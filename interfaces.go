package daleel

import (
	"context"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// This file defines focused interfaces; the main Daleel interface is composed
// from them. Consumers should depend on the smallest interface that meets
// their needs.

// Searcher provides read-only retrieval over the corpus.
type Searcher interface {
	// Search runs the full retrieval waterfall for one request. An empty
	// result slice is a valid outcome, not an error.
	Search(ctx context.Context, req types.SearchRequest) ([]types.SearchResult, error)
}

// Indexer provides write operations on the corpus.
type Indexer interface {
	// IndexDocuments stores the documents and indexes their embeddings.
	// Existing documents with the same ID are replaced.
	IndexDocuments(ctx context.Context, docs []types.Document) error

	// DeleteDocument removes a document from the vector index. Missing IDs
	// are not an error.
	DeleteDocument(ctx context.Context, id string) error
}

// Daleel is the complete engine surface.
type Daleel interface {
	Searcher
	Indexer

	// HealthCheck verifies the storage backends are reachable.
	HealthCheck(ctx context.Context) error

	// Close releases all underlying resources.
	Close() error
}
