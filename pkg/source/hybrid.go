package source

import (
	"context"
	"log/slog"
	"sort"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// Fusion weights. Dense similarity carries most of the signal; the sparse
// score keeps exact lexical matches from drowning.
const (
	denseWeight  = 0.7
	sparseWeight = 0.3
)

// Hybrid fans a query out to the dense and lexical sources concurrently and
// fuses their results into one hybrid-scored candidate list.
type Hybrid struct {
	dense   CandidateSource
	lexical CandidateSource
	logger  *slog.Logger
}

var _ CandidateSource = (*Hybrid)(nil)

// NewHybrid creates a hybrid source. Either inner source may be nil, in
// which case only the other is queried.
func NewHybrid(dense, lexical CandidateSource, logger *slog.Logger) *Hybrid {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hybrid{dense: dense, lexical: lexical, logger: logger}
}

// Name identifies the source.
func (h *Hybrid) Name() string { return "hybrid" }

func (h *Hybrid) candidateSource() {}

// Retrieve queries both sources concurrently. A failing source degrades to
// an empty list; the error is only returned when both sources fail.
func (h *Hybrid) Retrieve(ctx context.Context, query string, filter types.Filters, limit int) ([]types.Candidate, error) {
	if limit <= 0 {
		return nil, nil
	}

	type retrieval struct {
		candidates []types.Candidate
		err        error
	}

	run := func(src CandidateSource, out chan<- retrieval) {
		if src == nil {
			out <- retrieval{}
			return
		}
		candidates, err := src.Retrieve(ctx, query, filter, limit)
		out <- retrieval{candidates: candidates, err: err}
	}

	denseCh := make(chan retrieval, 1)
	lexicalCh := make(chan retrieval, 1)
	go run(h.dense, denseCh)
	go run(h.lexical, lexicalCh)

	denseRes := <-denseCh
	lexicalRes := <-lexicalCh

	if denseRes.err != nil {
		h.logger.Warn("dense source degraded", "error", denseRes.err)
	}
	if lexicalRes.err != nil {
		h.logger.Warn("lexical source degraded", "error", lexicalRes.err)
	}
	if denseRes.err != nil && lexicalRes.err != nil {
		return nil, types.NewSourceError(h.Name(), denseRes.err)
	}

	fused := Fuse(denseRes.candidates, lexicalRes.candidates)
	if len(fused) > limit {
		fused = fused[:limit]
	}
	return fused, nil
}

// Fuse merges dense and sparse candidates by ID and computes the hybrid
// score. Sparse scores are max-min normalized within the result set first,
// because ts_rank values are only comparable within one query. Dense cosine
// similarity is used as is.
func Fuse(dense, sparse []types.Candidate) []types.Candidate {
	merged := make(map[string]*types.Candidate)
	order := make([]string, 0, len(dense)+len(sparse))

	for _, c := range dense {
		c := c
		if _, ok := merged[c.ID]; !ok {
			merged[c.ID] = &c
			order = append(order, c.ID)
		}
	}
	for _, c := range sparse {
		if existing, ok := merged[c.ID]; ok {
			existing.SparseScore = c.SparseScore
			if existing.Body == "" {
				existing.Body = c.Body
			}
			continue
		}
		c := c
		merged[c.ID] = &c
		order = append(order, c.ID)
	}

	sparseMin, sparseMax := sparseRange(merged)

	fused := make([]types.Candidate, 0, len(order))
	for _, id := range order {
		c := merged[id]

		var denseScore float64
		if c.DenseScore != nil {
			denseScore = *c.DenseScore
		}
		var sparseNorm float64
		if c.SparseScore != nil {
			sparseNorm = normalize(*c.SparseScore, sparseMin, sparseMax)
		}

		c.HybridScore = types.Float(denseWeight*denseScore + sparseWeight*sparseNorm)
		fused = append(fused, *c)
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return *fused[i].HybridScore > *fused[j].HybridScore
	})
	return fused
}

func sparseRange(merged map[string]*types.Candidate) (min, max float64) {
	first := true
	for _, c := range merged {
		if c.SparseScore == nil {
			continue
		}
		v := *c.SparseScore
		if first {
			min, max = v, v
			first = false
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// normalize maps v from [min, max] to [0, 1]. A degenerate range maps every
// value to 1 so a lone sparse hit still gets full sparse weight.
func normalize(v, min, max float64) float64 {
	if max <= min {
		return 1
	}
	return (v - min) / (max - min)
}
