package keywords

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/soundprediction/go-rust-bert/pkg/rustbert"
)

// minEntityScore filters low-confidence NER predictions.
const minEntityScore = 0.5

// NERExtractor extracts keywords with a local rust-bert token classification
// model. The model is loaded lazily on first use; every failure falls back
// to the heuristic extractor so the last-resort tier always has keywords to
// work with.
type NERExtractor struct {
	modelID  string
	fallback *HeuristicExtractor
	logger   *slog.Logger

	mu    sync.Mutex
	model *rustbert.NERModel
}

var _ Extractor = (*NERExtractor)(nil)

// NewNERExtractor creates a NER extractor. modelID may be empty to use the
// library's default BERT NER model.
func NewNERExtractor(modelID string, logger *slog.Logger) *NERExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &NERExtractor{
		modelID:  modelID,
		fallback: NewHeuristicExtractor(),
		logger:   logger,
	}
}

// Extract runs NER over the query and returns the entity texts, merged with
// the heuristic tokens so subject terms the model misses still surface.
func (n *NERExtractor) Extract(query string) []string {
	words, err := n.predict(query)
	if err != nil {
		n.logger.Warn("ner extraction failed, using heuristic keywords", "error", err)
		return n.fallback.Extract(query)
	}

	seen := make(map[string]bool)
	var out []string
	add := func(kw string) {
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		out = append(out, kw)
	}

	for _, w := range words {
		add(w)
	}
	for _, kw := range n.fallback.Extract(query) {
		add(kw)
	}
	return out
}

func (n *NERExtractor) predict(query string) ([]string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.model == nil {
		if err := n.loadModel(); err != nil {
			return nil, err
		}
	}

	results, err := n.model.Predict(query)
	if err != nil {
		return nil, fmt.Errorf("NER prediction failed: %w", err)
	}

	var words []string
	for _, r := range results {
		if r.Score < minEntityScore {
			continue
		}
		words = append(words, r.Word)
	}
	return words, nil
}

// loadModel loads the NER model. Callers hold n.mu.
func (n *NERExtractor) loadModel() error {
	if n.modelID == "" {
		m, err := rustbert.NewNERModel()
		if err != nil {
			return fmt.Errorf("failed to create NER model: %w", err)
		}
		n.model = m
		return nil
	}

	modelPath, configPath, vocabPath, mergesPath, err := rustbert.DownloadArtifacts(n.modelID, "")
	if err != nil {
		return fmt.Errorf("failed to download artifacts for %s: %w", n.modelID, err)
	}
	m, err := rustbert.NewNERModelFromFiles(modelPath, configPath, vocabPath, mergesPath, rustbert.ModelTypeBert)
	if err != nil {
		return fmt.Errorf("failed to create NER model %s: %w", n.modelID, err)
	}
	n.model = m
	return nil
}

// Close unloads the model.
func (n *NERExtractor) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.model != nil {
		n.model.Close()
		n.model = nil
	}
	return nil
}
