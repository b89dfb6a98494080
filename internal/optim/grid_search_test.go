package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGridSearchFindsMaximum(t *testing.T) {
	g := NewGridSearch([]string{"x", "y"}, [][]float64{
		Linspace(-2, 2, 5),
		Linspace(0, 4, 5),
	})

	best, score, err := g.Search(context.Background(), func(p map[string]float64) (float64, error) {
		dx, dy := p["x"]-1, p["y"]-3
		return -(dx*dx + dy*dy), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]float64{"x": 1, "y": 3}, best); diff != "" {
		t.Errorf("best point (-want +got):\n%s", diff)
	}
	if score != 0 {
		t.Errorf("best score = %g, want 0", score)
	}
	if g.Evaluated() != 25 {
		t.Errorf("evaluated %d points, want 25", g.Evaluated())
	}
}

func TestGridSearchSkipsFailures(t *testing.T) {
	g := NewGridSearch([]string{"m1", "m2"}, [][]float64{{10, 20}, {10, 20}})

	best, _, err := g.Search(context.Background(), func(p map[string]float64) (float64, error) {
		if p["m2"] > p["m1"] {
			return 0, errors.New("m2 must not exceed m1")
		}
		return p["m1"] + p["m2"], nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if best["m1"] != 20 || best["m2"] != 20 {
		t.Errorf("unexpected best %v", best)
	}
	if g.Evaluated() != 3 {
		t.Errorf("evaluated %d points, want 3", g.Evaluated())
	}
}

func TestGridSearchNothingScored(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{{1, 2}})
	best, _, err := g.Search(context.Background(), func(map[string]float64) (float64, error) {
		return 0, errors.New("no")
	})
	if err != nil || best != nil {
		t.Errorf("expected nil best and no error, got %v, %v", best, err)
	}
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch([]string{"x"}, [][]float64{{1}})
	if _, _, err := g.Search(ctx, func(map[string]float64) (float64, error) { return 1, nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLinspace(t *testing.T) {
	tests := []struct {
		lo, hi float64
		n      int
		want   []float64
	}{
		{0, 1, 0, nil},
		{5, 9, 1, []float64{5}},
		{5, 50, 10, []float64{5, 10, 15, 20, 25, 30, 35, 40, 45, 50}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Linspace(tt.lo, tt.hi, tt.n)); diff != "" {
			t.Errorf("Linspace(%g, %g, %d) (-want +got):\n%s", tt.lo, tt.hi, tt.n, diff)
		}
	}
}
