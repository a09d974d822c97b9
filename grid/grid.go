// SPDX-License-Identifier: MIT

package grid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Generate returns the initial grid of a region: sorted, unique and within
// [lower, upper], which are always included. energies must be ascending;
// non-positive ones are skipped.
func Generate(energies, widths []float64, lower, upper float64, thresholds []float64) ([]float64, error) {
	if len(energies) != len(widths) {
		return nil, gridErrorf("Generate", ErrLengthMismatch)
	}
	if !(lower > 0 && upper > lower) {
		return nil, gridErrorf("Generate", ErrBounds)
	}
	first := sort.Search(len(energies), func(i int) bool { return energies[i] > 0 })
	energies, widths = energies[first:], widths[first:]

	var pts []float64
	edges := make([]float64, 0, len(energies)+1)
	edges = append(edges, lower)
	for i := 1; i < len(energies); i++ {
		edges = append(edges, (energies[i-1]+energies[i])/2)
	}
	edges = append(edges, upper)
	for i, e := range energies {
		lo, hi, w := edges[i], edges[i+1], widths[i]
		pts = append(pts, lo)
		for _, p := range ResonancePositions {
			if x := e - w*p; x > lo {
				pts = append(pts, x)
			}
		}
		for _, p := range ResonancePositions[1:] {
			if x := e + w*p; x < hi {
				pts = append(pts, x)
			}
		}
	}

	n := int(math.Ceil(math.Log10(upper)-math.Log10(lower))) * pointsPerDecade
	if n > 2 {
		coarse := make([]float64, n)
		floats.LogSpan(coarse, lower, upper)
		pts = append(pts, coarse[1:n-1]...)
	}
	pts = append(pts, lower, upper, ThermalEnergy)
	for _, t := range thresholds {
		for _, p := range ResonancePositions {
			pts = append(pts, t+p*thresholdScale)
		}
	}

	sort.Float64s(pts)
	out := pts[:0]
	for i, x := range pts {
		if x < lower || x > upper || (i > 0 && x == pts[i-1]) {
			continue
		}
		out = append(out, x)
	}

	return out, nil
}
