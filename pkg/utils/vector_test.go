package utils

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1}, 0},
		{"empty", nil, nil, 0},
		{"zero magnitude", []float32{0, 0}, []float32{1, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopKByScore(t *testing.T) {
	items := []ScoredItem[string]{
		{Item: "c", Score: 0.3},
		{Item: "a", Score: 0.9},
		{Item: "d", Score: 0.1},
		{Item: "b", Score: 0.7},
	}

	top := TopKByScore(items, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 items, got %d", len(top))
	}
	if top[0].Item != "a" || top[1].Item != "b" {
		t.Errorf("unexpected order: %v", top)
	}

	all := TopKByScore(items, 10)
	if len(all) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Score > all[i-1].Score {
			t.Errorf("not sorted descending at %d: %v", i, all)
		}
	}

	if got := TopKByScore(items, 0); got != nil {
		t.Errorf("expected nil for k=0, got %v", got)
	}
	if got := TopKByScore[string](nil, 3); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}
