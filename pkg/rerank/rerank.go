// Package rerank reorders retrieval candidates with a cross-encoder and
// applies granularity boosting for queries that name a specific exercise.
//
// Cross-encoder inference is the slowest stage of a search, so candidates are
// scored in batches on a bounded worker pool. A failing cross-encoder
// degrades to the pre-rerank ordering rather than failing the search.
package rerank

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/crossencoder"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/excerpt"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

const (
	// GranularityBoost is added to the rerank score of candidates whose
	// body carries the exercise number the query explicitly names. It is
	// additive so boosted candidates outrank unboosted ones with equal
	// base scores without erasing the cross-encoder's ordering among
	// boosted candidates.
	GranularityBoost = 2.0

	// batchSize is the number of passages scored per worker task.
	batchSize = 8

	defaultPoolSize = 4
)

// Reranker scores candidates against the query with a cross-encoder.
type Reranker struct {
	client crossencoder.Client
	pool   *ants.Pool
	logger *slog.Logger
}

// New creates a Reranker with a worker pool of poolSize goroutines.
func New(client crossencoder.Client, poolSize int, logger *slog.Logger) (*Reranker, error) {
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Reranker{client: client, pool: pool, logger: logger}, nil
}

// Rerank scores every candidate against the query, applies the granularity
// boost, and returns the candidates ordered by descending rerank score. On
// cross-encoder failure the input ordering is returned unchanged.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []types.Candidate) []types.Candidate {
	if len(candidates) <= 1 {
		return r.boostOnly(query, candidates)
	}

	scores, err := r.scoreAll(ctx, query, candidates)
	if err != nil {
		r.logger.Warn("cross-encoder failed, keeping pre-rerank order",
			"error", err, "candidates", len(candidates))
		return r.boostOnly(query, candidates)
	}

	out := make([]types.Candidate, len(candidates))
	copy(out, candidates)

	number := excerpt.ExerciseNumber(query)
	for i := range out {
		score := scores[i]
		if number > 0 && excerpt.HasExercise(out[i].Text(), number) {
			score += GranularityBoost
		}
		out[i].RerankScore = types.Float(score)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].RerankScore > *out[j].RerankScore
	})
	return out
}

// scoreAll runs the cross-encoder over candidate batches on the worker pool
// and maps scores back to candidate positions.
func (r *Reranker) scoreAll(ctx context.Context, query string, candidates []types.Candidate) ([]float64, error) {
	scores := make([]float64, len(candidates))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(candidates); start += batchSize {
		end := start + batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		start, end := start, end

		wg.Add(1)
		submitErr := r.pool.Submit(func() {
			defer wg.Done()

			passages := make([]string, 0, end-start)
			for _, c := range candidates[start:end] {
				passages = append(passages, c.Text())
			}

			ranked, err := r.client.Rank(ctx, query, passages)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			// Rank returns passages sorted by score; map scores back
			// to their batch positions by passage text.
			byText := make(map[string]float64, len(ranked))
			for _, rp := range ranked {
				byText[rp.Passage] = rp.Score
			}
			for i := start; i < end; i++ {
				scores[i] = byText[candidates[i].Text()]
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrRerankFailed, firstErr)
	}
	return scores, nil
}

// boostOnly applies the granularity boost without cross-encoder scores,
// using each candidate's best available score as the base.
func (r *Reranker) boostOnly(query string, candidates []types.Candidate) []types.Candidate {
	out := make([]types.Candidate, len(candidates))
	copy(out, candidates)

	number := excerpt.ExerciseNumber(query)
	boosted := false
	for i := range out {
		if number > 0 && excerpt.HasExercise(out[i].Text(), number) {
			out[i].RerankScore = types.Float(out[i].BestScore() + GranularityBoost)
			boosted = true
		}
	}
	if boosted {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].BestScore() > out[j].BestScore()
		})
	}
	return out
}

// Close releases the worker pool.
func (r *Reranker) Close() error {
	r.pool.Release()
	return nil
}
