package daleel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/config"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/contentstore"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/crossencoder"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/embedder"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/keywords"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/normalizer"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/orchestrator"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/refiner"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/rerank"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/source"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/vectorindex"
)

// Client is the default Daleel implementation. It owns the storage backends,
// the embedding and reranking models, and the orchestrator, and is safe for
// concurrent use.
type Client struct {
	config *config.Config
	logger *slog.Logger

	embedder embedder.Client
	store    contentstore.Store
	index    vectorindex.Index
	refiner  *refiner.FailOpen
	keywords keywords.Extractor
	reranker *rerank.Reranker

	orchestrator *orchestrator.Orchestrator
}

var _ Daleel = (*Client)(nil)

// NewClient wires an engine from configuration. The caller owns the returned
// client and must Close it.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{config: cfg, logger: logger}

	emb, err := embedder.NewClient(embedder.Config{
		Provider:   embedder.Provider(cfg.Embedding.Provider),
		Model:      cfg.Embedding.Model,
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Dimensions: cfg.Embedding.Dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	c.embedder = emb

	if err := c.openStorage(); err != nil {
		c.Close()
		return nil, err
	}

	ce, err := crossencoder.NewClient(crossencoder.Config{
		Provider:       crossencoder.Provider(cfg.Reranker.Provider),
		Model:          cfg.Reranker.Model,
		APIKey:         cfg.Reranker.APIKey,
		BaseURL:        cfg.Reranker.BaseURL,
		MaxConcurrency: cfg.Reranker.MaxConcurrency,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create cross-encoder: %w", err)
	}

	c.reranker, err = rerank.New(ce, cfg.Search.RerankPoolSize, logger)
	if err != nil {
		ce.Close()
		c.Close()
		return nil, fmt.Errorf("failed to create reranker: %w", err)
	}

	c.refiner = buildRefiner(cfg, logger)
	c.keywords = buildKeywords(cfg, logger)

	dense := source.NewDenseSource(c.embedder, c.index, cfg.Search.MinDenseScore)
	lexical := source.NewLexicalSource(c.store)
	hybrid := source.NewHybrid(dense, lexical, logger)

	c.orchestrator, err = orchestrator.New(orchestrator.Options{
		Normalizer: normalizer.New(),
		Refiner:    c.refiner,
		Source:     hybrid,
		Reranker:   c.reranker,
		Store:      c.store,
		Keywords:   c.keywords,
		Config:     searchConfig(cfg),
		Logger:     logger,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	return c, nil
}

// openStorage opens the content store and vector index pair selected by the
// storage driver.
func (c *Client) openStorage() error {
	switch strings.ToLower(c.config.Storage.Driver) {
	case "", "memory":
		c.store = contentstore.NewMemoryStore()
		c.index = vectorindex.NewMemoryIndex()
		return nil

	case "postgres":
		store, err := contentstore.NewPostgresStore(c.config.Storage.DSN, contentstore.DefaultPostgresConfig())
		if err != nil {
			return fmt.Errorf("failed to open content store: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := store.Initialize(ctx); err != nil {
			store.Close()
			return fmt.Errorf("failed to initialize content store: %w", err)
		}
		c.store = store

		index, err := vectorindex.OpenBadgerIndex(c.config.Storage.BadgerPath, false, c.logger)
		if err != nil {
			return fmt.Errorf("failed to open vector index: %w", err)
		}
		c.index = index
		return nil

	default:
		return fmt.Errorf("unsupported storage driver: %s", c.config.Storage.Driver)
	}
}

func buildRefiner(cfg *config.Config, logger *slog.Logger) *refiner.FailOpen {
	if cfg.Refiner.APIKey == "" && cfg.Refiner.BaseURL == "" {
		// No endpoint configured; refinement is skipped silently.
		return refiner.NewFailOpen(nil, logger)
	}

	inner, err := refiner.NewOpenAIRefiner(refiner.OpenAIConfig{
		APIKey:      cfg.Refiner.APIKey,
		BaseURL:     cfg.Refiner.BaseURL,
		Model:       cfg.Refiner.Model,
		Temperature: cfg.Refiner.Temperature,
	})
	if err != nil {
		logger.Warn("refiner disabled", "error", err)
		return refiner.NewFailOpen(nil, logger)
	}

	var wrapped refiner.Refiner = inner
	if cfg.CircuitBreaker.Enabled {
		wrapped = refiner.NewBreakerRefiner(inner, refiner.BreakerConfig{
			MaxRequests:      cfg.CircuitBreaker.MaxRequests,
			Interval:         cfg.CircuitBreaker.Interval,
			Timeout:          cfg.CircuitBreaker.Timeout,
			ReadyToTripRatio: cfg.CircuitBreaker.ReadyToTripRatio,
		}, logger)
	}
	return refiner.NewFailOpen(wrapped, logger)
}

func buildKeywords(cfg *config.Config, logger *slog.Logger) keywords.Extractor {
	if cfg.Keywords.UseNER {
		return keywords.NewNERExtractor(cfg.Keywords.NERModelID, logger)
	}
	return keywords.NewHeuristicExtractor()
}

func searchConfig(cfg *config.Config) orchestrator.Config {
	sc := orchestrator.DefaultConfig()
	if cfg.Search.StrictMinResults > 0 {
		sc.StrictMinResults = cfg.Search.StrictMinResults
	}
	if cfg.Search.RetrieveLimit > 0 {
		sc.RetrieveLimit = cfg.Search.RetrieveLimit
	}
	if cfg.Search.TierTimeoutSec > 0 {
		sc.TierTimeout = time.Duration(cfg.Search.TierTimeoutSec) * time.Second
	}
	if cfg.Search.DeadlineSec > 0 {
		sc.Deadline = time.Duration(cfg.Search.DeadlineSec) * time.Second
	}
	return sc
}

// Search runs the retrieval waterfall for one request.
func (c *Client) Search(ctx context.Context, req types.SearchRequest) ([]types.SearchResult, error) {
	return c.orchestrator.Search(ctx, req)
}

// IndexDocuments stores the documents and indexes their embeddings. The
// embedded text is the title concatenated with the markdown body.
func (c *Client) IndexDocuments(ctx context.Context, docs []types.Document) error {
	if len(docs) == 0 {
		return nil
	}

	if err := c.store.PutDocuments(ctx, docs); err != nil {
		return fmt.Errorf("failed to store documents: %w", err)
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = embeddingText(doc)
	}
	vectors, err := c.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}

	entries := make([]vectorindex.Entry, len(docs))
	for i, doc := range docs {
		entries[i] = vectorindex.Entry{
			ID:       doc.ID,
			Title:    doc.Title,
			Vector:   vectors[i],
			Metadata: doc.Metadata,
		}
	}
	if err := c.index.Upsert(ctx, entries); err != nil {
		return fmt.Errorf("failed to index embeddings: %w", err)
	}

	c.logger.Info("indexed documents", "count", len(docs))
	return nil
}

// DeleteDocument removes a document from the vector index so it stops
// appearing in dense results. The content store row is left in place for
// lexical history until the next PutDocuments overwrites it.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrEmptyID
	}
	return c.index.Delete(ctx, id)
}

// HealthCheck verifies the storage backends are reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.index.Count(ctx); err != nil {
		return fmt.Errorf("vector index unavailable: %w", err)
	}
	if _, err := c.store.GetDocument(ctx, "healthcheck"); err != nil && !errors.Is(err, contentstore.ErrNotFound) {
		return fmt.Errorf("content store unavailable: %w", err)
	}
	return nil
}

// Close releases all underlying resources. It is safe to call on a partially
// constructed client.
func (c *Client) Close() error {
	var firstErr error
	closers := []func() error{}
	if c.reranker != nil {
		closers = append(closers, c.reranker.Close)
	}
	if c.refiner != nil {
		closers = append(closers, c.refiner.Close)
	}
	if c.keywords != nil {
		closers = append(closers, c.keywords.Close)
	}
	if c.index != nil {
		closers = append(closers, c.index.Close)
	}
	if c.store != nil {
		closers = append(closers, c.store.Close)
	}
	if c.embedder != nil {
		closers = append(closers, c.embedder.Close)
	}
	for _, close := range closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func embeddingText(doc types.Document) string {
	if doc.MarkdownBody == "" {
		return doc.Title
	}
	return doc.Title + "\n" + doc.MarkdownBody
}
