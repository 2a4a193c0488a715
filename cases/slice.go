// SPDX-License-Identifier: MIT

package cases

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/variables"
	"github.com/katalvlaran/dstoolbox/vertices"
)

// slice is a region with its fixed columns substituted.
type slice struct {
	axes  []int       // region columns of the slice axes
	lim   [][2]float64 // log10 limits per axis
	coef  [][]float64  // per boundary, coefficients of the axes
	konst []float64    // per boundary, ζ plus the fixed contributions
}

// slice checks that exactly the named axes are free, every other column is
// fixed, and every axis has finite bounds.
func (r *region) slice(lower, upper *variables.Pool, names []string) (*slice, error) {
	b, err := r.box(lower, upper)
	if err != nil {
		return nil, err
	}
	s := &slice{}
	isAxis := make([]bool, len(r.names))
	for _, name := range names {
		k := r.index(name)
		if k < 0 {
			return nil, fmt.Errorf("%q: %w", name, ErrVariableNotIndependent)
		}
		if math.IsInf(b.lo[k], 0) || math.IsInf(b.hi[k], 0) {
			return nil, fmt.Errorf("axis %q: %w", name, ErrNotFixed)
		}
		isAxis[k] = true
		s.axes = append(s.axes, k)
		s.lim = append(s.lim, [2]float64{b.lo[k], b.hi[k]})
	}
	free := b.free()
	if len(free) != len(names) {
		return nil, fmt.Errorf("%w: %d free, %d axes", ErrSliceDimension, len(free), len(names))
	}
	for _, k := range free {
		if !isAxis[k] {
			return nil, fmt.Errorf("%q: %w", r.names[k], ErrSliceDimension)
		}
	}

	s.coef = make([][]float64, len(r.zeta))
	s.konst = make([]float64, len(r.zeta))
	for i, row := range r.u {
		v := r.zeta[i]
		for j, a := range row {
			if !isAxis[j] {
				v += a * b.lo[j]
			}
		}
		s.konst[i] = v
		s.coef[i] = make([]float64, len(s.axes))
		for a, k := range s.axes {
			s.coef[i][a] = row[k]
		}
	}
	return s, nil
}

// vertices1D returns the end points of the closed interval, largest first.
func (r *region) vertices1D(s *slice) (*vertices.Vertices, error) {
	sub := &region{names: []string{r.names[s.axes[0]]}, u: s.coef, zeta: s.konst}
	b := box{lo: []float64{s.lim[0][0]}, hi: []float64{s.lim[0][1]}}
	v := vertices.New(1)
	lo, hi, err := sub.extent(b, 0)
	if errors.Is(err, ErrNotValid) {
		return v, nil
	}
	if err != nil {
		return nil, err
	}
	_, _ = v.Add([]float64{hi})
	_, _ = v.Add([]float64{lo})
	return v, nil
}

func (r *region) vertices2D(s *slice) *vertices.Vertices {
	planes := make([]vertices.HalfPlane, len(s.konst))
	for i := range planes {
		planes[i] = vertices.HalfPlane{A: s.coef[i][0], B: s.coef[i][1], C: s.konst[i]}
	}
	return vertices.ClipPolygon(s.lim[0], s.lim[1], planes)
}

func (r *region) vertices3D(s *slice) *vertices.Vertices {
	spaces := make([]vertices.HalfSpace, len(s.konst))
	for i := range spaces {
		spaces[i] = vertices.HalfSpace{
			Normal: [3]float64{s.coef[i][0], s.coef[i][1], s.coef[i][2]},
			Offset: s.konst[i],
		}
	}
	v := vertices.Enumerate3D([3][2]float64{s.lim[0], s.lim[1], s.lim[2]}, spaces)
	if v.Len() < 4 {
		return vertices.New(3)
	}
	return v
}

// verticesForSlice dispatches on the number of axes.
func (r *region) verticesForSlice(lower, upper *variables.Pool, names []string) (*vertices.Vertices, error) {
	if len(names) < 1 || len(names) > 3 {
		return nil, fmt.Errorf("%w: %d axes, want 1..3", ErrSliceDimension, len(names))
	}
	s, err := r.slice(lower, upper, names)
	if err != nil {
		return nil, err
	}
	switch len(names) {
	case 1:
		return r.vertices1D(s)
	case 2:
		return r.vertices2D(s), nil
	default:
		return r.vertices3D(s), nil
	}
}

// VerticesFor1DSlice returns the log10 end points of the region along x,
// largest first. All other Xi must be fixed (lower == upper).
func (c *Case) VerticesFor1DSlice(lower, upper *variables.Pool, x string) (*vertices.Vertices, error) {
	return c.VerticesForSlice(lower, upper, x)
}

// VerticesFor2DSlice returns the log10 polygon of the region in the x, y
// plane, ordered clockwise from the vertex with the largest x.
func (c *Case) VerticesFor2DSlice(lower, upper *variables.Pool, x, y string) (*vertices.Vertices, error) {
	return c.VerticesForSlice(lower, upper, x, y)
}

// VerticesForSlice returns the region's vertices in a 1-, 2- or 3-D slice.
// An empty vertex set means the region misses the slice.
//
// Errors: ErrNoSolution, ErrVariableNotIndependent, ErrSliceDimension,
// ErrNotFixed, ErrBadBounds.
func (c *Case) VerticesForSlice(lower, upper *variables.Pool, axes ...string) (*vertices.Vertices, error) {
	r, err := c.region()
	if err != nil {
		return nil, err
	}
	v, err := r.verticesForSlice(lower, upper, axes)
	if err != nil {
		return nil, caseErrorf("VerticesForSlice", err)
	}
	return v, nil
}

// VerticesFor2DSliceWithSteadyStates appends log10 of the steady state of
// the dependent variable z to every 2-D vertex.
func (c *Case) VerticesFor2DSliceWithSteadyStates(lower, upper *variables.Pool, x, y, z string) (*vertices.Vertices, error) {
	return c.verticesWithValue(lower, upper, x, y, z, func(vars expression.Lookup) ([]float64, error) {
		return c.ssys.SteadyState(vars)
	})
}

// VerticesFor2DSliceWithFluxes appends log10 of the steady-state flux of
// the equation of z to every 2-D vertex.
func (c *Case) VerticesFor2DSliceWithFluxes(lower, upper *variables.Pool, x, y, z string) (*vertices.Vertices, error) {
	return c.verticesWithValue(lower, upper, x, y, z, func(vars expression.Lookup) ([]float64, error) {
		return c.ssys.Flux(vars)
	})
}

func (c *Case) verticesWithValue(lower, upper *variables.Pool, x, y, z string,
	value func(expression.Lookup) ([]float64, error)) (*vertices.Vertices, error) {
	zi := -1
	for k, name := range c.xd {
		if name == z {
			zi = k
		}
	}
	if zi < 0 {
		return nil, fmt.Errorf("%q: %w", z, ErrVariableNotDependent)
	}
	flat, err := c.VerticesFor2DSlice(lower, upper, x, y)
	if err != nil {
		return nil, err
	}

	point := expression.MapLookup(lower.Map())
	out := vertices.New(3)
	for _, p := range flat.Points {
		point[x], point[y] = math.Pow(10, p[0]), math.Pow(10, p[1])
		v, err := value(point)
		if err != nil {
			return nil, caseErrorf("VerticesFor2DSlice", err)
		}
		out.Points = append(out.Points, []float64{p[0], p[1], v[zi]})
	}
	return out, nil
}

// TriangulatedMeshFor2DSlice samples the outline of the 2-D region,
// meshSamples evenly spaced points per edge (closing edge included), in
// log10 coordinates.
func (c *Case) TriangulatedMeshFor2DSlice(lower, upper *variables.Pool, x, y string) ([]float64, []float64, error) {
	v, err := c.VerticesFor2DSlice(lower, upper, x, y)
	if err != nil {
		return nil, nil, err
	}
	n := v.Len()
	xs := make([]float64, 0, n*meshSamples)
	ys := make([]float64, 0, n*meshSamples)
	for i := 0; i < n; i++ {
		p, q := v.Points[i], v.Points[(i+1)%n]
		for s := 0; s < meshSamples; s++ {
			t := float64(s) / float64(meshSamples-1)
			xs = append(xs, p[0]+t*(q[0]-p[0]))
			ys = append(ys, p[1]+t*(q[1]-p[1]))
		}
	}
	return xs, ys, nil
}
