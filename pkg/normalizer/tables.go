package normalizer

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

// tables holds the normalization dictionaries parsed from tables.yaml.
type tables struct {
	Translations  map[string]string `yaml:"translations"`
	Typos         map[string]string `yaml:"typos"`
	Stems         map[string]string `yaml:"stems"`
	Stopwords     []string          `yaml:"stopwords"`
	MetadataWords []string          `yaml:"metadata_words"`
}

// defaultTables is parsed once at package init. The YAML is embedded, so a
// parse failure is a programming error, not a runtime condition.
var defaultTables = mustLoadTables(tablesYAML)

func mustLoadTables(raw []byte) *tables {
	t, err := loadTables(raw)
	if err != nil {
		panic(fmt.Sprintf("normalizer: embedded tables are invalid: %v", err))
	}
	return t
}

// loadTables parses the dictionaries and folds every key so lookups can run
// on folded input.
func loadTables(raw []byte) (*tables, error) {
	var t tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse normalization tables: %w", err)
	}

	folded := &tables{
		Translations: foldKeys(t.Translations),
		Typos:        foldKeys(t.Typos),
		Stems:        foldKeys(t.Stems),
	}
	for _, w := range t.Stopwords {
		folded.Stopwords = append(folded.Stopwords, Fold(w))
	}
	for _, w := range t.MetadataWords {
		folded.MetadataWords = append(folded.MetadataWords, Fold(w))
	}
	return folded, nil
}

func foldKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[Fold(k)] = Fold(v)
	}
	return out
}

func (t *tables) stopwordSet() map[string]bool {
	set := make(map[string]bool, len(t.Stopwords)+len(t.MetadataWords))
	for _, w := range t.Stopwords {
		set[w] = true
	}
	for _, w := range t.MetadataWords {
		set[w] = true
	}
	return set
}
