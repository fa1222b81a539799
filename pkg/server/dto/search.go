// Package dto defines the HTTP request and response shapes of the API.
package dto

import (
	"strings"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// Field limits to prevent abuse.
const (
	MaxQueryLength = 2048
	MaxLimit       = 100
	DefaultLimit   = 10
)

// SearchQuery represents a search request.
type SearchQuery struct {
	Query   string        `json:"query" binding:"required"`
	Filters types.Filters `json:"filters"`
	Limit   int           `json:"limit"`
}

// Validate performs validation on SearchQuery and fills defaults.
func (q *SearchQuery) Validate() error {
	if strings.TrimSpace(q.Query) == "" {
		return types.ErrEmptyQuery
	}
	if len(q.Query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return nil
}

// ToRequest converts the query to the engine request type.
func (q *SearchQuery) ToRequest() types.SearchRequest {
	return types.SearchRequest{
		Query:   q.Query,
		Filters: q.Filters,
		Limit:   q.Limit,
	}
}

// SearchResponse represents a search response.
type SearchResponse struct {
	Results  []types.SearchResult `json:"results"`
	Strategy types.Strategy       `json:"strategy,omitempty"`
	Note     string               `json:"note,omitempty"`
}

// NewSearchResponse builds a response from engine results. When the
// producing strategy is not strict it carries an honesty note so the UI can
// tell the user the exact request could not be satisfied.
func NewSearchResponse(results []types.SearchResult) SearchResponse {
	resp := SearchResponse{Results: results}
	if len(results) == 0 {
		return resp
	}
	resp.Strategy = results[0].Strategy
	if resp.Strategy != types.StrategyStrict {
		resp.Note = "no exact match for the requested filters; showing closest results"
	}
	return resp
}
