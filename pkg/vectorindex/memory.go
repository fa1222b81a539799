package vectorindex

import (
	"context"
	"sync"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/utils"
)

// MemoryIndex is an in-memory Index for tests and small corpora.
type MemoryIndex struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

var _ Index = (*MemoryIndex)(nil)

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{entries: make(map[string]Entry)}
}

// Upsert inserts or replaces entries by ID.
func (m *MemoryIndex) Upsert(_ context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range entries {
		if entry.ID == "" {
			continue
		}
		m.entries[entry.ID] = entry
	}
	return nil
}

// Query returns the top k entries by cosine similarity that satisfy filter.
func (m *MemoryIndex) Query(_ context.Context, vector []float32, filter types.Filters, k int) ([]Match, error) {
	if k <= 0 || len(vector) == 0 {
		return nil, nil
	}

	m.mu.RLock()
	scored := make([]utils.ScoredItem[Entry], 0, len(m.entries))
	for _, entry := range m.entries {
		if len(entry.Vector) == 0 || !filter.Match(entry.Metadata) {
			continue
		}
		scored = append(scored, utils.ScoredItem[Entry]{
			Item:  entry,
			Score: utils.CosineSimilarity(vector, entry.Vector),
		})
	}
	m.mu.RUnlock()

	top := utils.TopKByScore(scored, k)
	matches := make([]Match, 0, len(top))
	for _, item := range top {
		matches = append(matches, Match{Entry: item.Item, Score: item.Score})
	}
	return matches, nil
}

// Delete removes the entry with the given ID.
func (m *MemoryIndex) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Count returns the number of indexed entries.
func (m *MemoryIndex) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Close is a no-op for the in-memory index.
func (m *MemoryIndex) Close() error {
	return nil
}
