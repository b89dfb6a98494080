// Package optim searches parameter grids for the best scoring point.
package optim

import (
	"context"
	"maps"
	"math"
)

// Objective scores one grid point; higher is better. Points returning an
// error are skipped. The map is reused between calls and must not be kept.
type Objective func(params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	evaluated  int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Evaluated reports how many points the last Search scored successfully.
func (g *GridSearch) Evaluated() int { return g.evaluated }

// Search scores every point of the grid and returns the best one with its
// score. The returned params are nil when no point could be scored.
func (g *GridSearch) Search(ctx context.Context, obj Objective) (map[string]float64, float64, error) {
	g.evaluated = 0
	for _, r := range g.ranges {
		if len(r) == 0 {
			return nil, 0, nil
		}
	}

	var (
		best      = math.Inf(-1)
		bestPoint map[string]float64
		idx       = make([]int, len(g.paramNames))
		point     = make(map[string]float64, len(g.paramNames))
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		for d, name := range g.paramNames {
			point[name] = g.ranges[d][idx[d]]
		}
		if score, err := obj(point); err == nil {
			g.evaluated++
			if score > best {
				best, bestPoint = score, maps.Clone(point)
			}
		}
		if !g.next(idx) {
			break
		}
	}
	if bestPoint == nil {
		return nil, 0, nil
	}
	return bestPoint, best, nil
}

// next advances idx like an odometer, last parameter fastest. It reports
// false once every combination has been visited.
func (g *GridSearch) next(idx []int) bool {
	for d := len(idx) - 1; d >= 0; d-- {
		idx[d]++
		if idx[d] < len(g.ranges[d]) {
			return true
		}
		idx[d] = 0
	}
	return false
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
