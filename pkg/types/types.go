package types

import (
	"errors"
	"strings"
)

// Validation errors
var (
	ErrEmptyQuery   = errors.New("query cannot be empty")
	ErrEmptyID      = errors.New("id cannot be empty")
	ErrInvalidLimit = errors.New("limit must be positive")
)

// Strategy identifies the waterfall tier that produced a result. Callers use
// it to render an honesty note when the strict tier could not satisfy the
// request ("no exact 2024 match; showing 2023").
type Strategy string

const (
	StrategyStrict     Strategy = "strict"
	StrategyRelaxed    Strategy = "relaxed"
	StrategyKeyword    Strategy = "keyword"
	StrategyAggressive Strategy = "aggressive"
	StrategyLastResort Strategy = "last_resort"
)

// Filters holds the optional structured constraints of a search request.
// The zero value means "no constraint" for every field.
type Filters struct {
	Level       string `json:"level,omitempty" mapstructure:"level"`
	Subject     string `json:"subject,omitempty" mapstructure:"subject"`
	Branch      string `json:"branch,omitempty" mapstructure:"branch"`
	SetName     string `json:"set_name,omitempty" mapstructure:"set_name"`
	Year        int    `json:"year,omitempty" mapstructure:"year"`
	ContentType string `json:"content_type,omitempty" mapstructure:"content_type"`
	Lang        string `json:"lang,omitempty" mapstructure:"lang"`
}

// IsZero reports whether no filter field is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Match reports whether the candidate metadata satisfies every set field
// exactly. Unset fields match anything.
func (f Filters) Match(m Metadata) bool {
	if f.Level != "" && !equalFold(f.Level, m.Level) {
		return false
	}
	if f.Subject != "" && !equalFold(f.Subject, m.Subject) {
		return false
	}
	if f.Branch != "" && !equalFold(f.Branch, m.Branch) {
		return false
	}
	if f.SetName != "" && !equalFold(f.SetName, m.SetName) {
		return false
	}
	if f.Year != 0 && f.Year != m.Year {
		return false
	}
	if f.ContentType != "" && !equalFold(f.ContentType, m.ContentType) {
		return false
	}
	if f.Lang != "" && !equalFold(f.Lang, m.Lang) {
		return false
	}
	return true
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Metadata describes a stored content item. It mirrors the filterable
// fields of Filters.
type Metadata struct {
	Level       string `json:"level,omitempty" mapstructure:"level"`
	Subject     string `json:"subject,omitempty" mapstructure:"subject"`
	Branch      string `json:"branch,omitempty" mapstructure:"branch"`
	SetName     string `json:"set_name,omitempty" mapstructure:"set_name"`
	Year        int    `json:"year,omitempty" mapstructure:"year"`
	ContentType string `json:"content_type,omitempty" mapstructure:"content_type"`
	Lang        string `json:"lang,omitempty" mapstructure:"lang"`
}

// SearchRequest is the inbound contract of the engine. It is immutable for
// the duration of one orchestration run; tiers that relax filters work on
// copies and tag their results with the producing Strategy instead of
// mutating the request.
type SearchRequest struct {
	Query     string  `json:"query"`
	Filters   Filters `json:"filters"`
	Limit     int     `json:"limit"`
	DebugMode bool    `json:"debug_mode,omitempty"`
}

// Validate checks the request invariants.
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	if r.Limit <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// QueryVariant is one normalized rendition of the raw query. Variants are
// ordered: earlier variants stay closer to user intent, later ones are more
// aggressively cleaned and only used as fallback for keyword search.
type QueryVariant struct {
	Text  string `json:"text"`
	Stage string `json:"stage"` // which normalization stage produced it
}

// Candidate is an intermediate retrieval hit. Scores are pointers because
// not every source populates every score.
type Candidate struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Metadata Metadata `json:"metadata"`
	Body     string   `json:"body,omitempty"`

	DenseScore  *float64 `json:"dense_score,omitempty"`
	SparseScore *float64 `json:"sparse_score,omitempty"`
	HybridScore *float64 `json:"hybrid_score,omitempty"`
	RerankScore *float64 `json:"rerank_score,omitempty"`
}

// Validate checks the candidate invariants.
func (c *Candidate) Validate() error {
	if c.ID == "" {
		return ErrEmptyID
	}
	return nil
}

// BestScore returns the strongest available ranking signal, preferring the
// rerank score over the hybrid score over the raw dense/sparse scores.
func (c *Candidate) BestScore() float64 {
	switch {
	case c.RerankScore != nil:
		return *c.RerankScore
	case c.HybridScore != nil:
		return *c.HybridScore
	case c.DenseScore != nil:
		return *c.DenseScore
	case c.SparseScore != nil:
		return *c.SparseScore
	default:
		return 0
	}
}

// Text returns the candidate text used for reranking and excerpting.
func (c *Candidate) Text() string {
	if c.Body != "" {
		return c.Body
	}
	return c.Title
}

// Document is a stored content item as owned by the content store. The
// engine only ever reads it.
type Document struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	MarkdownBody string   `json:"markdown_body"`
	SolutionBody string   `json:"solution_body,omitempty"`
	Metadata     Metadata `json:"metadata"`
}

// SearchResult is the externally visible unit. Within one response IDs are
// unique (post-deduplication invariant) and results are ordered by the
// engine's ranking rule.
type SearchResult struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Metadata Metadata `json:"metadata"`
	Score    float64  `json:"score"`
	Strategy Strategy `json:"strategy"`
	Excerpt  string   `json:"excerpt,omitempty"`
}

// Float pointer helpers used at source boundaries.

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
