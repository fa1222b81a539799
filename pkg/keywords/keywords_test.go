package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicExtract(t *testing.T) {
	h := NewHeuristicExtractor()
	defer h.Close()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "arabic query drops stopwords and filler",
			query: "بغيت تمارين حول الدوال من فضلك",
			want:  []string{"تمارين", "الدوال"},
		},
		{
			name:  "french subject terms survive",
			query: "exercices sur les suites numériques",
			want:  []string{"exercices", "suites", "numériques"},
		},
		{
			name:  "short tokens dropped",
			query: "f x دالة",
			want:  []string{"داله"},
		},
		{
			name:  "duplicates collapsed",
			query: "النهايات النهايات والاتصال",
			want:  []string{"النهايات", "والاتصال"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Extract(tt.query))
		})
	}
}

func TestHeuristicExtractEmpty(t *testing.T) {
	h := NewHeuristicExtractor()
	defer h.Close()
	assert.Empty(t, h.Extract(""))
}
