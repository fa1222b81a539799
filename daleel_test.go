package daleel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/config"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Search: config.SearchConfig{
			StrictMinResults: 3,
			RetrieveLimit:    20,
			TierTimeoutSec:   5,
			DeadlineSec:      20,
			RerankPoolSize:   2,
		},
		Storage:   config.StorageConfig{Driver: "memory"},
		Embedding: config.EmbeddingConfig{Provider: "mock", Dimensions: 64},
		Reranker:  config.RerankerConfig{Provider: "local"},
	}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

var seedDocs = []types.Document{
	{
		ID:    "bac-math-2024",
		Title: "امتحان الرياضيات الوطني 2024",
		MarkdownBody: "## التمرين 1\nتمارين الدوال ودراسة التغيرات\n" +
			"## التمرين 2\nالاعداد العقدية",
		Metadata: types.Metadata{Subject: "math", Level: "2bac", Year: 2024, Lang: "ar"},
	},
	{
		ID:           "bac-math-2023",
		Title:        "امتحان الرياضيات الوطني 2023",
		MarkdownBody: "## التمرين 1\nتمارين الدوال اللوغاريتمية والنهايات",
		Metadata:     types.Metadata{Subject: "math", Level: "2bac", Year: 2023, Lang: "ar"},
	},
	{
		ID:           "bac-math-2022",
		Title:        "امتحان الرياضيات الوطني 2022",
		MarkdownBody: "## التمرين 1\nتمارين الدوال الاسية والمتتاليات",
		Metadata:     types.Metadata{Subject: "math", Level: "2bac", Year: 2022, Lang: "ar"},
	},
	{
		ID:           "bac-physics-2024",
		Title:        "امتحان الفيزياء الوطني 2024",
		MarkdownBody: "## التمرين 1\nالموجات الميكانيكية المتوالية",
		Metadata:     types.Metadata{Subject: "physics", Level: "2bac", Year: 2024, Lang: "ar"},
	},
}

func TestClientIndexAndSearch(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.IndexDocuments(ctx, seedDocs))

	results, err := client.Search(ctx, types.SearchRequest{
		Query: "تمارين الدوال",
		Limit: 10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	ids := make(map[string]bool)
	for _, r := range results {
		assert.False(t, ids[r.ID], "duplicate id %s", r.ID)
		ids[r.ID] = true
	}
	assert.True(t, ids["bac-math-2024"])
}

func TestClientSearchHonorsFilters(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.IndexDocuments(ctx, seedDocs))

	results, err := client.Search(ctx, types.SearchRequest{
		Query:   "الامتحان الوطني",
		Filters: types.Filters{Subject: "physics"},
		Limit:   10,
	})
	require.NoError(t, err)

	for _, r := range results {
		assert.Equal(t, "physics", r.Metadata.Subject)
	}
}

func TestClientDeleteDocument(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.IndexDocuments(ctx, seedDocs))
	require.NoError(t, client.DeleteDocument(ctx, "bac-physics-2024"))

	count, err := client.index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(seedDocs)-1, count)

	assert.ErrorIs(t, client.DeleteDocument(ctx, ""), types.ErrEmptyID)
}

func TestClientHealthCheck(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, client.HealthCheck(context.Background()))
}

func TestNewClientRejectsNilConfig(t *testing.T) {
	_, err := NewClient(nil, nil)
	require.Error(t, err)
}

func TestNewClientRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Driver = "cassandra"
	_, err := NewClient(cfg, nil)
	require.Error(t, err)
}
