package refiner

import (
	"context"
	"log/slog"
	"strings"
)

// FailOpen guards the engine against refiner faults. Every error, and the
// unconfigured case (nil inner refiner), falls back to a Refinement carrying
// the original query untouched.
type FailOpen struct {
	inner  Refiner
	logger *slog.Logger
}

// NewFailOpen wraps inner. A nil inner is valid and means refinement is
// skipped entirely.
func NewFailOpen(inner Refiner, logger *slog.Logger) *FailOpen {
	if logger == nil {
		logger = slog.Default()
	}
	return &FailOpen{inner: inner, logger: logger}
}

// Refine never returns an error. The second return reports whether the
// refinement actually came from the inner refiner.
func (f *FailOpen) Refine(ctx context.Context, query string) (*Refinement, bool) {
	fallback := &Refinement{RefinedQuery: query}
	if f.inner == nil {
		return fallback, false
	}

	refinement, err := f.inner.Refine(ctx, query)
	if err != nil {
		f.logger.Warn("query refinement failed, using original query", "error", err)
		return fallback, false
	}
	if strings.TrimSpace(refinement.RefinedQuery) == "" {
		return fallback, false
	}
	return refinement, true
}

// Close closes the inner refiner if one is configured.
func (f *FailOpen) Close() error {
	if f.inner == nil {
		return nil
	}
	return f.inner.Close()
}
