package refiner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/kaptinlin/jsonrepair"
	"github.com/sashabaranov/go-openai"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

const refinerSystemPrompt = `You rewrite search queries for an educational content library covering Arabic, French and English curricula.
Rewrite the user's query into formal academic phrasing in the SAME language as the input. Fix spelling, expand dialect words, keep subject terms intact.
If the query names an exam year, a subject or a branch, extract them too.
Respond with JSON only: {"refined_query": "...", "keywords": ["..."], "year": 0, "subject": "", "branch": ""}`

// OpenAIConfig configures the OpenAI-backed refiner.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
}

// OpenAIRefiner rewrites queries with a chat model. Malformed JSON output is
// repaired before parsing; output that still does not parse is an
// ErrRefinementFailed.
type OpenAIRefiner struct {
	client *openai.Client
	config OpenAIConfig
}

var _ Refiner = (*OpenAIRefiner)(nil)

// NewOpenAIRefiner creates a refiner. An empty API key with no BaseURL is an
// error; callers that want to skip refinement silently use NewFailOpen with
// a nil inner refiner instead.
func NewOpenAIRefiner(cfg OpenAIConfig) (*OpenAIRefiner, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("refiner requires an api key")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}

	var client *openai.Client
	if cfg.BaseURL != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		clientConfig.BaseURL = cfg.BaseURL
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		client = openai.NewClient(cfg.APIKey)
	}

	return &OpenAIRefiner{client: client, config: cfg}, nil
}

// Refine asks the model to rewrite the query and parses the JSON answer.
func (r *OpenAIRefiner) Refine(ctx context.Context, query string) (*Refinement, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.config.Model,
		Temperature: r.config.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: refinerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrRefinementFailed, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", types.ErrRefinementFailed)
	}

	refinement, err := parseRefinement(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return refinement, nil
}

// parseRefinement unmarshals the model output, running it through jsonrepair
// when it is not valid JSON as returned.
func parseRefinement(raw string) (*Refinement, error) {
	raw = strings.TrimSpace(raw)

	var refinement Refinement
	if err := json.Unmarshal([]byte(raw), &refinement); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return nil, fmt.Errorf("%w: unparseable output: %v", types.ErrRefinementFailed, err)
		}
		if err := json.Unmarshal([]byte(repaired), &refinement); err != nil {
			return nil, fmt.Errorf("%w: unparseable output after repair: %v", types.ErrRefinementFailed, err)
		}
	}

	if strings.TrimSpace(refinement.RefinedQuery) == "" {
		return nil, fmt.Errorf("%w: empty refined query", types.ErrRefinementFailed)
	}
	return &refinement, nil
}

// Close implements Refiner.
func (r *OpenAIRefiner) Close() error {
	return nil
}
