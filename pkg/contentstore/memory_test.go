package contentstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

func seedStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	err := store.PutDocuments(context.Background(), []types.Document{
		{
			ID:           "bac-math-2024",
			Title:        "امتحان الرياضيات الوطني 2024",
			MarkdownBody: "## التمرين 1\nادرس تغيرات الدالة العددية f",
			Metadata:     types.Metadata{Subject: "math", Level: "2bac", Year: 2024, Lang: "ar"},
		},
		{
			ID:           "bac-math-2023",
			Title:        "امتحان الرياضيات الوطني 2023",
			MarkdownBody: "## التمرين 1\nاحسب النهايات التالية",
			Metadata:     types.Metadata{Subject: "math", Level: "2bac", Year: 2023, Lang: "ar"},
		},
		{
			ID:           "bac-physics-2024",
			Title:        "امتحان الفيزياء الوطني 2024",
			MarkdownBody: "## التمرين 1\nالموجات الميكانيكية المتوالية",
			Metadata:     types.Metadata{Subject: "physics", Level: "2bac", Year: 2024, Lang: "ar"},
		},
	})
	require.NoError(t, err)
	return store
}

func TestMemoryStoreGetDocument(t *testing.T) {
	store := seedStore(t)
	defer store.Close()

	doc, err := store.GetDocument(context.Background(), "bac-math-2024")
	require.NoError(t, err)
	assert.Equal(t, "امتحان الرياضيات الوطني 2024", doc.Title)

	_, err = store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreLexicalQuery(t *testing.T) {
	store := seedStore(t)
	defer store.Close()

	hits, err := store.LexicalQuery(context.Background(), "تغيرات الدالة", types.Filters{}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "bac-math-2024", hits[0].Document.ID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
}

func TestMemoryStoreLexicalQueryFilters(t *testing.T) {
	store := seedStore(t)
	defer store.Close()

	hits, err := store.LexicalQuery(context.Background(), "امتحان الوطني", types.Filters{Subject: "math", Year: 2023}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "bac-math-2023", hits[0].Document.ID)
}

func TestMemoryStoreLexicalQueryFoldsArabic(t *testing.T) {
	store := seedStore(t)
	defer store.Close()

	// Alef variants and taa marbuta fold to the stored forms.
	hits, err := store.LexicalQuery(context.Background(), "الدالهِ", types.Filters{}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "bac-math-2024", hits[0].Document.ID)
}

func TestMemoryStoreLexicalQueryNoMatch(t *testing.T) {
	store := seedStore(t)
	defer store.Close()

	hits, err := store.LexicalQuery(context.Background(), "photosynthesis chlorophyll", types.Filters{}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestMemoryStoreLexicalQueryLimit(t *testing.T) {
	store := seedStore(t)
	defer store.Close()

	hits, err := store.LexicalQuery(context.Background(), "امتحان", types.Filters{}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestMemoryStorePutReplaces(t *testing.T) {
	store := seedStore(t)
	defer store.Close()

	err := store.PutDocuments(context.Background(), []types.Document{
		{ID: "bac-math-2024", Title: "updated title"},
	})
	require.NoError(t, err)

	doc, err := store.GetDocument(context.Background(), "bac-math-2024")
	require.NoError(t, err)
	assert.Equal(t, "updated title", doc.Title)
}
