// SPDX-License-Identifier: MIT

package vertices

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/dstoolbox/matrix"
)

// New returns an empty vertex set of the given dimension.
func New(dimensions int) *Vertices {
	return &Vertices{Dimensions: dimensions}
}

// Len returns the number of vertices.
func (v *Vertices) Len() int { return len(v.Points) }

// Add appends a copy of p unless an equal point is already present. It
// reports whether p was added.
func (v *Vertices) Add(p []float64) (bool, error) {
	if len(p) != v.Dimensions {
		return false, fmt.Errorf("%w: point has %d coordinates, want %d", ErrDimension, len(p), v.Dimensions)
	}
	if v.Contains(p) {
		return false, nil
	}
	v.Points = append(v.Points, append([]float64(nil), p...))
	return true, nil
}

// Contains reports whether a point equal to p within DuplicateTolerance is
// present.
func (v *Vertices) Contains(p []float64) bool {
	for _, q := range v.Points {
		if len(q) != len(p) {
			continue
		}
		same := true
		for k := range p {
			if !sameCoordinate(p[k], q[k]) {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}

// Axis returns the k-th coordinate of every vertex.
func (v *Vertices) Axis(k int) []float64 {
	out := make([]float64, len(v.Points))
	for i, p := range v.Points {
		out[i] = p[k]
	}
	return out
}

// Order2D sorts the points clockwise around their centroid, starting at the
// point with the largest first coordinate. Only the first two coordinates
// are used, so a third (steady state or flux) coordinate rides along.
func (v *Vertices) Order2D() {
	n := len(v.Points)
	if n < 3 || v.Dimensions < 2 {
		return
	}
	var cx, cy float64
	for _, p := range v.Points {
		cx += p[0]
		cy += p[1]
	}
	cx /= float64(n)
	cy /= float64(n)

	angle := func(p []float64) float64 { return math.Atan2(p[1]-cy, p[0]-cx) }
	sort.SliceStable(v.Points, func(i, j int) bool {
		return angle(v.Points[i]) > angle(v.Points[j])
	})

	start := 0
	for i, p := range v.Points {
		if q := v.Points[start]; p[0] > q[0] || (p[0] == q[0] && p[1] > q[1]) {
			start = i
		}
	}
	v.Points = append(v.Points[start:], v.Points[:start]...)
}

// ClipPolygon returns the polygon of the box xlim × ylim intersected with
// every half-plane, ordered with Order2D. An empty result means the region
// misses the box.
func ClipPolygon(xlim, ylim [2]float64, planes []HalfPlane) *Vertices {
	poly := [][2]float64{
		{xlim[0], ylim[0]},
		{xlim[1], ylim[0]},
		{xlim[1], ylim[1]},
		{xlim[0], ylim[1]},
	}
	for _, h := range planes {
		poly = clip(poly, h)
		if len(poly) == 0 {
			break
		}
	}

	out := New(2)
	for _, p := range poly {
		_, _ = out.Add([]float64{p[0], p[1]})
	}
	if out.Len() < 3 {
		return New(2)
	}
	out.Order2D()
	return out
}

// clip is one Sutherland–Hodgman pass against h.
func clip(poly [][2]float64, h HalfPlane) [][2]float64 {
	var out [][2]float64
	n := len(poly)
	for i := 0; i < n; i++ {
		cur, next := poly[i], poly[(i+1)%n]
		vc, vn := h.Eval(cur[0], cur[1]), h.Eval(next[0], next[1])
		inC, inN := vc >= -feasibilityTolerance, vn >= -feasibilityTolerance
		if inC {
			out = append(out, cur)
		}
		if inC != inN && vc != vn {
			t := vc / (vc - vn)
			p := [2]float64{cur[0] + t*(next[0]-cur[0]), cur[1] + t*(next[1]-cur[1])}
			if p != cur && p != next {
				out = append(out, p)
			}
		}
	}
	return out
}

// Enumerate3D returns the vertices of the box lim[0] × lim[1] × lim[2]
// intersected with the half-spaces. Every triple of bounding planes with a
// unique intersection point is solved and the point kept when it satisfies
// all other half-spaces.
//
// Complexity: O(k⁴) for k planes including the six box faces.
func Enumerate3D(lim [3][2]float64, spaces []HalfSpace) *Vertices {
	all := make([]HalfSpace, 0, len(spaces)+6)
	for k := 0; k < 3; k++ {
		var lo, hi HalfSpace
		lo.Normal[k], lo.Offset = 1, -lim[k][0]
		hi.Normal[k], hi.Offset = -1, lim[k][1]
		all = append(all, lo, hi)
	}
	all = append(all, spaces...)

	out := New(3)
	a, _ := matrix.NewZeros(3, 3)
	b := make([]float64, 3)
	k := len(all)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			for l := j + 1; l < k; l++ {
				for r, h := range [3]HalfSpace{all[i], all[j], all[l]} {
					for c := 0; c < 3; c++ {
						_ = a.Set(r, c, h.Normal[c])
					}
					b[r] = -h.Offset
				}
				p, err := matrix.Solve(a, b)
				if err != nil {
					continue
				}
				if feasible(p, all) {
					_, _ = out.Add(p)
				}
			}
		}
	}
	return out
}

func feasible(p []float64, spaces []HalfSpace) bool {
	for _, h := range spaces {
		if h.Eval(p) < -feasibilityTolerance {
			return false
		}
	}
	return true
}
