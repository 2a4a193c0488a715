// SPDX-License-Identifier: MIT

package dsplot

import (
	"math"
	"slices"

	"github.com/katalvlaran/dstoolbox/vertices"
)

// MeshForRegion samples the outline of a 2-D polygon. Each edge gets
// ceil(|Δ|·resolution/span) points along its longer direction, where span
// is the log10 range of that axis. It returns the sorted, unique x and y
// samples, whose product is the grid a region is evaluated on. Samples
// within rounding of each other count once.
func MeshForRegion(v *vertices.Vertices, resolution int, xSpan, ySpan float64) ([]float64, []float64) {
	var xs, ys []float64
	n := v.Len()
	for i := 0; i < n; i++ {
		x1, y1 := v.Points[i][0], v.Points[i][1]
		x2, y2 := v.Points[(i+1)%n][0], v.Points[(i+1)%n][1]
		nx := int(math.Ceil(math.Abs((x2 - x1) * float64(resolution) / xSpan)))
		ny := int(math.Ceil(math.Abs((y2 - y1) * float64(resolution) / ySpan)))
		switch {
		case x1 == x2:
			xs = append(xs, x1)
			ys = append(ys, linspace(y1, y2, ny)...)
		case y1 == y2:
			xs = append(xs, linspace(x1, x2, nx)...)
			ys = append(ys, y1)
		default:
			m := (y2 - y1) / (x2 - x1)
			c := y1 - m*x1
			for _, x := range linspace(x1, x2, nx) {
				xs = append(xs, x)
				ys = append(ys, m*x+c)
			}
		}
	}
	return unique(xs), unique(ys)
}

// linspace returns n evenly spaced values from a to b inclusive.
func linspace(a, b float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{a}
	}
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b
	return out
}

// meshTolerance merges samples closer than this (relative to magnitude,
// at least 1) into one grid line.
const meshTolerance = 1e-12

func unique(v []float64) []float64 {
	slices.Sort(v)
	return slices.CompactFunc(v, func(a, b float64) bool {
		return math.Abs(b-a) <= meshTolerance*math.Max(1, math.Abs(a))
	})
}
