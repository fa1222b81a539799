package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"arabic indic digits", "التمرين ٢ سنة ٢٠٢٤", "التمرين 2 سنه 2024"},
		{"hamza variants", "أسئلة إمتحان آداب", "اسيله امتحان اداب"},
		{"teh marbuta and alef maqsura", "دالة مستوى", "داله مستوي"},
		{"tatweel and diacritics", "تمـــرين مُهِمّ", "تمرين مهم"},
		{"latin lowercased", "EXERCICE Probabilité", "exercice probabilité"},
		{"whitespace collapsed", "  تمرين   2  ", "تمرين 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestExpandStages(t *testing.T) {
	n := New()

	variants := n.Expand("أريد exercice الاحتمالات بكالوريا 2024")
	require.NotEmpty(t, variants)

	// Original is always first and verbatim.
	assert.Equal(t, StageOriginal, variants[0].Stage)
	assert.Equal(t, "أريد exercice الاحتمالات بكالوريا 2024", variants[0].Text)

	// Later variants are progressively cleaned.
	last := variants[len(variants)-1]
	assert.Equal(t, StageStripped, last.Stage)
	assert.NotContains(t, last.Text, "2024")
	assert.NotContains(t, last.Text, "بكالوريا")
	assert.Contains(t, last.Text, "احتمال")
	// The French token was translated into domain vocabulary.
	assert.Contains(t, last.Text, "تمرين")
}

func TestExpandDeduplicatesVariants(t *testing.T) {
	n := New()

	// Already folded and clean: no stage changes the text, so only the
	// original variant survives.
	variants := n.Expand("تمرين احتمال")
	require.Len(t, variants, 1)
	assert.Equal(t, StageOriginal, variants[0].Stage)
}

func TestExpandNeverReturnsEmpty(t *testing.T) {
	n := New()

	for _, q := range []string{"", "   ", "من فضلك", "2024"} {
		variants := n.Expand(q)
		require.NotEmpty(t, variants, "query %q", q)
	}
}

func TestExpandStabilizes(t *testing.T) {
	n := New()

	// Expanding the most-cleaned variant of an expansion must not keep
	// producing new text: the pipeline reaches a fixed point.
	first := n.Expand("أعطني التمارين ديال الدوال باك ٢٠٢٣")
	cleaned := KeywordVariant(first)

	second := n.Expand(cleaned)
	assert.Equal(t, cleaned, KeywordVariant(second))

	third := n.Expand(KeywordVariant(second))
	assert.Equal(t, KeywordVariant(second), KeywordVariant(third))
}

func TestStripKeepsLastResortText(t *testing.T) {
	n := New()

	// A query made only of stop/metadata words must not strip to nothing.
	variants := n.Expand("بكالوريا علوم 2024")
	last := KeywordVariant(variants)
	assert.NotEmpty(t, last)
}

func TestTypoCorrection(t *testing.T) {
	n := New()

	variants := n.Expand("تمارن فيزيا")
	found := false
	for _, v := range variants {
		if v.Stage == StageTypoFixed {
			assert.Contains(t, v.Text, "تمارين")
			assert.Contains(t, v.Text, "فيزياء")
			found = true
		}
	}
	assert.True(t, found, "expected a typo_fixed variant")
}

func TestIntentAndKeywordSelectors(t *testing.T) {
	assert.Equal(t, "", IntentVariant(nil))
	assert.Equal(t, "", KeywordVariant(nil))

	n := New()
	variants := n.Expand("exercice 2 les fonctions")
	assert.Equal(t, "exercice 2 les fonctions", IntentVariant(variants))
	assert.NotEqual(t, IntentVariant(variants), KeywordVariant(variants))
}
