// SPDX-License-Identifier: MIT

package grid

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/xs"
)

// Refine inserts points until lin-lin interpolation of every non-zero
// reaction reproduces each point from its neighbours within tol. Only new
// energies are passed to eval. It returns the merged grid and set plus
// human-readable messages.
func Refine(ctx context.Context, egrid []float64, set xs.Set, tol float64, eval Evaluator, opts RefineOptions) ([]float64, xs.Set, []string, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}

	var messages []string
	done := make(map[string]bool)
	iter, added := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return egrid, set, messages, gridErrorf("Refine", err)
		}
		need := make(map[float64]struct{})
		for _, name := range set.Names() {
			if done[name] || set.AllZero(name) {
				continue
			}
			mids := needed(egrid, set[name], tol)
			if len(mids) == 0 {
				done[name] = true
			}
			for _, x := range mids {
				need[x] = struct{}{}
			}
		}
		if len(need) == 0 {
			break
		}
		if iter >= opts.MaxIterations {
			messages = append(messages, iterationLimitMessage)
			log.Warn("refinement stopped at iteration limit",
				zap.Int("iterations", iter), zap.Int("pending", len(need)))
			if opts.FailOnLimit {
				return egrid, set, messages, fmt.Errorf("Refine(after %d iterations): %w", iter, ErrIterationLimit)
			}
			break
		}
		iter++

		newX := make([]float64, 0, len(need))
		for x := range need {
			newX = append(newX, x)
		}
		sort.Float64s(newX)
		newY, err := eval(ctx, newX)
		if err != nil {
			return egrid, set, messages, gridErrorf("Refine", err)
		}
		if newY.Len() != len(newX) {
			return egrid, set, messages, gridErrorf("Refine", ErrEvaluatorLength)
		}
		egrid, set = merge(egrid, set, newX, newY)
		added += len(newX)
		log.Debug("refinement pass", zap.Int("iteration", iter), zap.Int("added", len(newX)), zap.Int("points", len(egrid)))
	}

	messages = append(messages, fmt.Sprintf("%d points were added (for total of %d) to achieve tolerance of %g%%",
		added, len(egrid), tol*100))

	return egrid, set, messages, nil
}

// needed returns the interval midpoints around every point that linear
// interpolation from its neighbours misses by more than tol.
func needed(x, y []float64, tol float64) []float64 {
	n := len(x)
	if n < 3 {
		return nil
	}
	bad := make([]bool, n)
	for i := 1; i < n-1; i++ {
		interp := y[i-1] + (y[i+1]-y[i-1])/(x[i+1]-x[i-1])*(x[i]-x[i-1])
		ratio := interp / y[i]
		if !(ratio > 1+tol || ratio < 1-tol) {
			continue
		}
		nearZero := y[i-1] < smallCrossSection || y[i] < smallCrossSection || y[i+1] < smallCrossSection
		if nearZero && math.Abs(y[i]-y[i-1]) < absoluteTolerance && math.Abs(y[i+1]-y[i]) < absoluteTolerance {
			continue
		}
		bad[i] = true
	}

	var out []float64
	for j := 0; j < n-1; j++ {
		if !bad[j] && !bad[j+1] {
			continue
		}
		// Intervals too narrow to split in float64 are left alone.
		if mid := (x[j] + x[j+1]) / 2; mid > x[j] && mid < x[j+1] {
			out = append(out, mid)
		}
	}

	return out
}

// merge interleaves two ascending grids and their values.
func merge(x1 []float64, y1 xs.Set, x2 []float64, y2 xs.Set) ([]float64, xs.Set) {
	n := len(x1) + len(x2)
	x := make([]float64, 0, n)
	y := make(xs.Set, len(y1))
	for name := range y1 {
		y[name] = make([]float64, 0, n)
	}
	i, j := 0, 0
	for i < len(x1) || j < len(x2) {
		if j >= len(x2) || (i < len(x1) && x1[i] <= x2[j]) {
			x = append(x, x1[i])
			for name := range y {
				y[name] = append(y[name], y1[name][i])
			}
			i++
			continue
		}
		x = append(x, x2[j])
		for name := range y {
			y[name] = append(y[name], valueAt(y2, name, j))
		}
		j++
	}

	return x, y
}

func valueAt(s xs.Set, name string, i int) float64 {
	if v, ok := s[name]; ok {
		return v[i]
	}

	return 0
}
