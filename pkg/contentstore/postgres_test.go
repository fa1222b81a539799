package contentstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIlikeTokenForms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  [][]string
	}{
		{
			name:  "ascii token keeps single form",
			query: "suites",
			want:  [][]string{{"suites"}},
		},
		{
			name:  "teh marbuta matches folded and original",
			query: "دالة",
			want:  [][]string{{"داله", "دالة"}},
		},
		{
			name:  "already folded token is not duplicated",
			query: "داله",
			want:  [][]string{{"داله"}},
		},
		{
			name:  "mixed tokens keep per-token forms",
			query: "دالة suites",
			want:  [][]string{{"داله", "دالة"}, {"suites"}},
		},
		{
			name:  "empty query yields no tokens",
			query: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ilikeTokenForms(tt.query))
		})
	}
}
