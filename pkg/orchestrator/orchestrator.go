package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/contentstore"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/dedup"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/excerpt"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/keywords"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/normalizer"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/refiner"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/rerank"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/source"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// Config tunes the waterfall.
type Config struct {
	// StrictMinResults is the candidate count at which the strict tier
	// short-circuits the waterfall. Relaxation tiers short-circuit at one.
	StrictMinResults int

	// RetrieveLimit is the per-tier candidate budget handed to the sources.
	RetrieveLimit int

	// TierTimeout bounds each tier's retrieval.
	TierTimeout time.Duration

	// Deadline bounds the whole search. When it expires the best tier so
	// far is post-processed and returned.
	Deadline time.Duration
}

// DefaultConfig returns the default waterfall configuration.
func DefaultConfig() Config {
	return Config{
		StrictMinResults: 3,
		RetrieveLimit:    20,
		TierTimeout:      5 * time.Second,
		Deadline:         20 * time.Second,
	}
}

// Orchestrator runs searches end to end: refine, expand, retrieve through
// the tier waterfall, rerank, dedup, excerpt.
type Orchestrator struct {
	normalizer *normalizer.Normalizer
	refiner    *refiner.FailOpen
	src        source.CandidateSource
	reranker   *rerank.Reranker
	store      contentstore.Store
	dedup      *dedup.Deduplicator
	extractor  *excerpt.Extractor
	keywords   keywords.Extractor
	config     Config
	logger     *slog.Logger
}

// Options carries the orchestrator's collaborators. Normalizer, Source and
// Reranker are required; the rest default to no-op or stateless
// implementations.
type Options struct {
	Normalizer *normalizer.Normalizer
	Refiner    *refiner.FailOpen
	Source     source.CandidateSource
	Reranker   *rerank.Reranker
	Store      contentstore.Store
	Keywords   keywords.Extractor
	Config     Config
	Logger     *slog.Logger
}

// New creates an Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if opts.Source == nil {
		return nil, errors.New("orchestrator requires a candidate source")
	}
	if opts.Reranker == nil {
		return nil, errors.New("orchestrator requires a reranker")
	}
	if opts.Normalizer == nil {
		opts.Normalizer = normalizer.New()
	}
	if opts.Refiner == nil {
		opts.Refiner = refiner.NewFailOpen(nil, opts.Logger)
	}
	if opts.Keywords == nil {
		opts.Keywords = keywords.NewHeuristicExtractor()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	cfg := opts.Config
	if cfg.StrictMinResults <= 0 {
		cfg.StrictMinResults = DefaultConfig().StrictMinResults
	}
	if cfg.RetrieveLimit <= 0 {
		cfg.RetrieveLimit = DefaultConfig().RetrieveLimit
	}
	if cfg.TierTimeout <= 0 {
		cfg.TierTimeout = DefaultConfig().TierTimeout
	}
	if cfg.Deadline <= 0 {
		cfg.Deadline = DefaultConfig().Deadline
	}

	return &Orchestrator{
		normalizer: opts.Normalizer,
		refiner:    opts.Refiner,
		src:        opts.Source,
		reranker:   opts.Reranker,
		store:      opts.Store,
		dedup:      dedup.New(),
		extractor:  excerpt.New(),
		keywords:   opts.Keywords,
		config:     cfg,
		logger:     opts.Logger,
	}, nil
}

// tier is one waterfall step.
type tier struct {
	strategy   types.Strategy
	query      string
	filters    types.Filters
	minResults int
}

// Search runs the waterfall for req. It returns an error only for invalid
// requests; an exhausted waterfall is a valid empty result.
func (o *Orchestrator) Search(ctx context.Context, req types.SearchRequest) ([]types.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, o.config.Deadline)
	defer cancel()

	start := time.Now()

	refinement, refined := o.refiner.Refine(ctx, req.Query)
	query := refinement.RefinedQuery
	filters := mergeRefinedFilters(req.Filters, refinement)

	variants := o.normalizer.Expand(query)
	intentQuery := normalizer.IntentVariant(variants)
	keywordQuery := normalizer.KeywordVariant(variants)

	var (
		best         []types.Candidate
		bestStrategy types.Strategy
	)

	for _, t := range o.tiers(intentQuery, keywordQuery, filters) {
		if ctx.Err() != nil {
			o.logger.Warn("search deadline hit, returning best tier so far",
				"strategy", string(bestStrategy), "elapsed", time.Since(start))
			break
		}

		candidates := o.runTier(ctx, t)
		if len(candidates) == 0 {
			continue
		}
		if best == nil {
			best = candidates
			bestStrategy = t.strategy
		}
		if len(candidates) >= t.minResults {
			best = candidates
			bestStrategy = t.strategy
			break
		}
	}

	if len(best) == 0 {
		o.logger.Info("waterfall exhausted with no candidates",
			"query", req.Query, "elapsed", time.Since(start))
		return []types.SearchResult{}, nil
	}

	results := o.finalize(ctx, req, intentQuery, best, bestStrategy)
	o.logger.Info("search complete",
		"query", req.Query,
		"strategy", string(bestStrategy),
		"refined", refined,
		"candidates", len(best),
		"results", len(results),
		"elapsed", time.Since(start))
	return results, nil
}

// tiers builds the waterfall for one request. Relaxation order: drop the
// year and set constraints first, then switch to the keyword query, then
// drop all filters, and finally search on the single most salient keyword.
func (o *Orchestrator) tiers(intentQuery, keywordQuery string, filters types.Filters) []tier {
	relaxed := filters
	relaxed.Year = 0
	relaxed.SetName = ""

	lastResortQuery := o.lastResortKeyword(intentQuery)

	return []tier{
		{strategy: types.StrategyStrict, query: intentQuery, filters: filters, minResults: o.config.StrictMinResults},
		{strategy: types.StrategyRelaxed, query: intentQuery, filters: relaxed, minResults: 1},
		{strategy: types.StrategyKeyword, query: keywordQuery, filters: relaxed, minResults: 1},
		{strategy: types.StrategyAggressive, query: keywordQuery, filters: types.Filters{}, minResults: 1},
		{strategy: types.StrategyLastResort, query: lastResortQuery, filters: types.Filters{}, minResults: 1},
	}
}

// runTier retrieves candidates for one tier under the tier timeout. Source
// failures degrade to an empty tier.
func (o *Orchestrator) runTier(ctx context.Context, t tier) []types.Candidate {
	if t.query == "" {
		return nil
	}

	tierCtx, cancel := context.WithTimeout(ctx, o.config.TierTimeout)
	defer cancel()

	candidates, err := o.src.Retrieve(tierCtx, t.query, t.filters, o.config.RetrieveLimit)
	if err != nil {
		o.logger.Warn("tier retrieval degraded",
			"strategy", string(t.strategy), "error", err)
		return nil
	}
	return candidates
}

// finalize hydrates bodies, reranks, dedupes, excerpts and truncates.
func (o *Orchestrator) finalize(ctx context.Context, req types.SearchRequest, query string, candidates []types.Candidate, strategy types.Strategy) []types.SearchResult {
	o.hydrate(ctx, candidates)

	ranked := o.reranker.Rerank(ctx, query, candidates)
	ranked = o.dedup.DedupeCandidates(ranked)

	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}

	results := make([]types.SearchResult, 0, len(ranked))
	for _, c := range ranked {
		result := types.SearchResult{
			ID:       c.ID,
			Title:    c.Title,
			Metadata: c.Metadata,
			Score:    c.BestScore(),
			Strategy: strategy,
		}
		if c.Body != "" {
			if ex, ok := o.extractor.Extract(c.Body, req.Query); ok {
				result.Excerpt = ex
			} else {
				result.Excerpt = c.Body
			}
		}
		results = append(results, result)
	}
	return results
}

// hydrate fills missing candidate bodies from the content store. Dense hits
// arrive without bodies; reranking and excerpting need them.
func (o *Orchestrator) hydrate(ctx context.Context, candidates []types.Candidate) {
	if o.store == nil {
		return
	}
	for i := range candidates {
		if candidates[i].Body != "" {
			continue
		}
		doc, err := o.store.GetDocument(ctx, candidates[i].ID)
		if err != nil {
			if !errors.Is(err, contentstore.ErrNotFound) {
				o.logger.Warn("body hydration failed", "id", candidates[i].ID, "error", err)
			}
			continue
		}
		candidates[i].Body = doc.MarkdownBody
		if candidates[i].Title == "" {
			candidates[i].Title = doc.Title
		}
	}
}

// lastResortKeyword picks the longest salient keyword of the query.
func (o *Orchestrator) lastResortKeyword(query string) string {
	var longest string
	for _, kw := range o.keywords.Extract(query) {
		if len([]rune(kw)) > len([]rune(longest)) {
			longest = kw
		}
	}
	return longest
}

// mergeRefinedFilters tightens the request filters with values the refiner
// read out of the query text, without ever overriding an explicit filter.
func mergeRefinedFilters(filters types.Filters, refinement *refiner.Refinement) types.Filters {
	if refinement == nil {
		return filters
	}
	if filters.Year == 0 && refinement.Year != 0 {
		filters.Year = refinement.Year
	}
	if filters.Subject == "" && refinement.Subject != "" {
		filters.Subject = refinement.Subject
	}
	if filters.Branch == "" && refinement.Branch != "" {
		filters.Branch = refinement.Branch
	}
	return filters
}
