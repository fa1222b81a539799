package crossencoder

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// OpenAIRerankerClient implements cross-encoder functionality using an
// OpenAI-compatible API. It runs a boolean relevance classifier prompt
// concurrently for each passage and uses the answer's log-probability as the
// relevance score.
type OpenAIRerankerClient struct {
	client    *openai.Client
	config    Config
	semaphore chan struct{} // Controls concurrency
}

// NewOpenAIRerankerClient creates a new OpenAI-based reranker client.
func NewOpenAIRerankerClient(cfg Config) (*OpenAIRerankerClient, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("openai reranker requires an api key")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultConfig(ProviderOpenAI).Model
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 5
	}

	var client *openai.Client
	if cfg.BaseURL != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		clientConfig.BaseURL = cfg.BaseURL
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		client = openai.NewClient(cfg.APIKey)
	}

	return &OpenAIRerankerClient{
		client:    client,
		config:    cfg,
		semaphore: make(chan struct{}, cfg.MaxConcurrency),
	}, nil
}

// Rank ranks the given passages based on their relevance to the query.
func (c *OpenAIRerankerClient) Rank(ctx context.Context, query string, passages []string) ([]RankedPassage, error) {
	if len(passages) == 0 {
		return []RankedPassage{}, nil
	}

	type passageResult struct {
		score float64
		err   error
	}

	results := make([]passageResult, len(passages))
	var wg sync.WaitGroup

	for i, passage := range passages {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()

			c.semaphore <- struct{}{}
			defer func() { <-c.semaphore }()

			score, err := c.scorePassage(ctx, query, p)
			results[idx] = passageResult{score: score, err: err}
		}(i, passage)
	}

	wg.Wait()

	rankedPassages := make([]RankedPassage, 0, len(passages))
	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("error scoring passage %d: %w", i, result.err)
		}
		rankedPassages = append(rankedPassages, RankedPassage{
			Passage: passages[i],
			Score:   result.score,
		})
	}

	sort.Slice(rankedPassages, func(i, j int) bool {
		return rankedPassages[i].Score > rankedPassages[j].Score
	})

	return rankedPassages, nil
}

// scorePassage scores a single passage against the query. The top
// logprob of the first generated token yields a confidence in [0, 1];
// "False" answers are mapped below 0.5 and "True" answers above.
func (c *OpenAIRerankerClient) scorePassage(ctx context.Context, query, passage string) (float64, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert tasked with determining whether the passage is relevant to the query",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(`Respond with "True" if PASSAGE is relevant to QUERY and "False" otherwise.
<PASSAGE>
%s
</PASSAGE>
<QUERY>
%s
</QUERY>`, passage, query),
			},
		},
		Temperature: 0,
		MaxTokens:   1,
		LogProbs:    true,
		TopLogProbs: 2,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("no choices returned")
	}

	choice := resp.Choices[0]
	answer := strings.TrimSpace(choice.Message.Content)
	isTrue := strings.EqualFold(answer, "true")

	confidence := 0.5
	if choice.LogProbs != nil && len(choice.LogProbs.Content) > 0 {
		lp := choice.LogProbs.Content[0].LogProb
		// logprob of the emitted token, converted to probability
		confidence = clamp01(math.Exp(lp))
	}

	if isTrue {
		return 0.5 + confidence/2, nil
	}
	return 0.5 - confidence/2, nil
}

// Close releases resources. A no-op for the API-backed client.
func (c *OpenAIRerankerClient) Close() error {
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
