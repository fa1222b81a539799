package normalizer

import (
	"regexp"
	"strings"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// Stage names recorded on each variant.
const (
	StageOriginal   = "original"
	StageFolded     = "folded"
	StageTranslated = "translated"
	StageTypoFixed  = "typo_fixed"
	StageStemmed    = "stemmed"
	StageStripped   = "stripped"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Normalizer expands raw queries into normalized variants. The zero-cost
// New constructor exists so callers can inject alternative tables in tests.
type Normalizer struct {
	tables    *tables
	stopwords map[string]bool
}

// New returns a Normalizer backed by the embedded dictionaries.
func New() *Normalizer {
	return &Normalizer{
		tables:    defaultTables,
		stopwords: defaultTables.stopwordSet(),
	}
}

// Expand produces the ordered, deduplicated variant list for raw. It is
// pure and never fails; the worst case is a single variant holding the raw
// query. Earlier variants stay closer to user intent.
func (n *Normalizer) Expand(raw string) []types.QueryVariant {
	raw = strings.TrimSpace(raw)
	variants := []types.QueryVariant{{Text: raw, Stage: StageOriginal}}
	if raw == "" {
		return variants
	}

	appendIfNew := func(text, stage string) string {
		text = strings.TrimSpace(text)
		if text == "" {
			return current(variants)
		}
		for _, v := range variants {
			if v.Text == text {
				return current(variants)
			}
		}
		variants = append(variants, types.QueryVariant{Text: text, Stage: stage})
		return text
	}

	q := appendIfNew(Fold(raw), StageFolded)
	q = appendIfNew(n.mapTokens(q, n.tables.Translations), StageTranslated)
	q = appendIfNew(n.mapTokens(q, n.tables.Typos), StageTypoFixed)
	q = appendIfNew(n.mapTokens(q, n.tables.Stems), StageStemmed)
	appendIfNew(n.strip(q), StageStripped)

	return variants
}

func current(variants []types.QueryVariant) string {
	return variants[len(variants)-1].Text
}

// mapTokens replaces each token that has an exact dictionary entry and
// leaves everything else untouched.
func (n *Normalizer) mapTokens(q string, dict map[string]string) string {
	fields := strings.Fields(q)
	for i, f := range fields {
		if repl, ok := dict[f]; ok {
			fields[i] = repl
		}
	}
	return strings.Join(fields, " ")
}

// strip removes stop-words, politeness filler, metadata words expected to
// arrive as explicit filters, and 4-digit years.
func (n *Normalizer) strip(q string) string {
	q = yearPattern.ReplaceAllString(q, " ")
	var kept []string
	for _, f := range strings.Fields(q) {
		if n.stopwords[f] {
			continue
		}
		kept = append(kept, f)
	}
	// Stripping everything would leave nothing to search with.
	if len(kept) == 0 {
		return q
	}
	return strings.Join(kept, " ")
}

// IsStopword reports whether the folded token is a stop-word or a metadata
// word stripped during normalization.
func (n *Normalizer) IsStopword(token string) bool {
	return n.stopwords[Fold(token)]
}

// KeywordVariant returns the most aggressively cleaned variant, preferred
// for literal keyword search.
func KeywordVariant(variants []types.QueryVariant) string {
	if len(variants) == 0 {
		return ""
	}
	return variants[len(variants)-1].Text
}

// IntentVariant returns the variant closest to user intent, preferred for
// dense semantic search.
func IntentVariant(variants []types.QueryVariant) string {
	if len(variants) == 0 {
		return ""
	}
	return variants[0].Text
}
