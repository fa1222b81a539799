package crossencoder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "local provider",
			config:  Config{Provider: ProviderLocal},
			wantErr: false,
		},
		{
			name:    "mock provider",
			config:  Config{Provider: ProviderMock},
			wantErr: false,
		},
		{
			name:    "openai without credentials",
			config:  Config{Provider: ProviderOpenAI},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: Provider("bogus")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, client)
			assert.NoError(t, client.Close())
		})
	}
}

func TestLocalRerankerOrdering(t *testing.T) {
	client := NewLocalRerankerClient(Config{})
	defer client.Close()

	query := "derivative of a polynomial function"
	passages := []string{
		"the weather in Casablanca is sunny today",
		"compute the derivative of the polynomial function f",
		"a polynomial has real coefficients",
	}

	ranked, err := client.Rank(context.Background(), query, passages)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "compute the derivative of the polynomial function f", ranked[0].Passage)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestLocalRerankerEmptyInput(t *testing.T) {
	client := NewLocalRerankerClient(Config{})
	defer client.Close()

	ranked, err := client.Rank(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestLocalRerankerNoOverlap(t *testing.T) {
	client := NewLocalRerankerClient(Config{})
	defer client.Close()

	ranked, err := client.Rank(context.Background(), "alpha beta", []string{"gamma delta"})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Zero(t, ranked[0].Score)
}

func TestMockRerankerDeterminism(t *testing.T) {
	client := NewMockRerankerClient(Config{})
	defer client.Close()

	passages := []string{"first passage", "second passage", "third passage"}

	a, err := client.Rank(context.Background(), "query", passages)
	require.NoError(t, err)
	b, err := client.Rank(context.Background(), "query", passages)
	require.NoError(t, err)

	require.Equal(t, a, b)
	for i := 1; i < len(a); i++ {
		assert.GreaterOrEqual(t, a[i-1].Score, a[i].Score)
	}
}

func TestDefaultConfig(t *testing.T) {
	local := DefaultConfig(ProviderEmbedEverything)
	assert.Equal(t, ProviderEmbedEverything, local.Provider)
	assert.NotEmpty(t, local.Model)
	assert.Equal(t, 1, local.MaxConcurrency)

	api := DefaultConfig(ProviderOpenAI)
	assert.Equal(t, ProviderOpenAI, api.Provider)
	assert.NotEmpty(t, api.Model)
	assert.Greater(t, api.MaxConcurrency, 1)
}
