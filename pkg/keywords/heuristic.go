package keywords

import (
	"strings"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/normalizer"
)

// Extractor pulls salient keywords from a raw query.
type Extractor interface {
	Extract(query string) []string
	Close() error
}

// HeuristicExtractor keeps the folded content tokens of a query: anything
// that survives stop-word and metadata stripping and is at least three runes
// long.
type HeuristicExtractor struct {
	normalizer *normalizer.Normalizer
}

var _ Extractor = (*HeuristicExtractor)(nil)

// NewHeuristicExtractor creates a heuristic extractor.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{normalizer: normalizer.New()}
}

// Extract returns the deduplicated salient tokens of query in input order.
func (h *HeuristicExtractor) Extract(query string) []string {
	folded := normalizer.Fold(query)

	seen := make(map[string]bool)
	var out []string
	for _, tok := range strings.Fields(folded) {
		if len([]rune(tok)) < 3 {
			continue
		}
		if h.normalizer.IsStopword(tok) {
			continue
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// Close implements Extractor.
func (h *HeuristicExtractor) Close() error {
	return nil
}
