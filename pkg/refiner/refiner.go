package refiner

import (
	"context"
)

// Refinement is the refiner's reading of a raw query.
type Refinement struct {
	// RefinedQuery is the query rewritten in formal academic register, in
	// the same language as the input.
	RefinedQuery string `json:"refined_query"`

	// Keywords are salient subject terms extracted from the query.
	Keywords []string `json:"keywords"`

	// Year, Subject and Branch are filter values the model read out of the
	// query, if any. They only ever tighten a request that arrived without
	// the corresponding explicit filter.
	Year    int    `json:"year,omitempty"`
	Subject string `json:"subject,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

// Refiner rewrites a raw user query.
type Refiner interface {
	Refine(ctx context.Context, query string) (*Refinement, error)
	Close() error
}
