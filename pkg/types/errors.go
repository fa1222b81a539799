package types

import (
	"errors"
	"fmt"
)

// Fault taxonomy of the engine. Data and network faults are recovered
// locally: a failing source degrades to zero candidates, a failing refiner
// falls back to the original query, a failing reranker falls back to the
// pre-rerank ordering. Only programming errors (nil configuration and the
// like) propagate to the caller.
var (
	// ErrSourceUnavailable marks a network, database, or model-load
	// failure of a candidate source.
	ErrSourceUnavailable = errors.New("candidate source unavailable")

	// ErrRefinementFailed marks a refiner error or malformed refiner
	// output. It never escapes the refiner's fail-open wrapper.
	ErrRefinementFailed = errors.New("query refinement failed")

	// ErrRerankFailed marks a cross-encoder inference failure.
	ErrRerankFailed = errors.New("rerank failed")
)

// SourceError carries the failing source's name alongside the cause so the
// orchestrator can log which backend degraded.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Is makes SourceError match ErrSourceUnavailable.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewSourceError wraps err with the source name.
func NewSourceError(source string, err error) *SourceError {
	return &SourceError{Source: source, Err: err}
}
