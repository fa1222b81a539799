package contentstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/normalizer"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// MemoryStore is an in-memory Store for tests and demo deployments. Lexical
// scoring is the fraction of folded query tokens present in the folded title
// and body.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]types.Document
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]types.Document)}
}

// PutDocuments inserts or replaces documents by ID.
func (m *MemoryStore) PutDocuments(_ context.Context, docs []types.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range docs {
		if doc.ID == "" {
			continue
		}
		m.docs[doc.ID] = doc
	}
	return nil
}

// GetDocument fetches one document by ID.
func (m *MemoryStore) GetDocument(_ context.Context, id string) (*types.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

// LexicalQuery scores documents by folded token overlap with the query.
func (m *MemoryStore) LexicalQuery(_ context.Context, query string, filter types.Filters, limit int) ([]LexicalHit, error) {
	tokens := strings.Fields(normalizer.Fold(query))
	if len(tokens) == 0 || limit <= 0 {
		return []LexicalHit{}, nil
	}

	m.mu.RLock()
	var hits []LexicalHit
	for _, doc := range m.docs {
		if !filter.Match(doc.Metadata) {
			continue
		}
		haystack := normalizer.Fold(doc.Title + " " + doc.MarkdownBody)
		matched := 0
		for _, token := range tokens {
			if strings.Contains(haystack, token) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		hits = append(hits, LexicalHit{
			Document: doc,
			Score:    float64(matched) / float64(len(tokens)),
		})
	}
	m.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
