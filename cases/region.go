// SPDX-License-Identifier: MIT

package cases

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/dstoolbox/lp"
	"github.com/katalvlaran/dstoolbox/variables"
)

// region is the polyhedron ζ + U·y ≥ 0 over named log10 coordinates. Cases
// and intersections of cases share it.
type region struct {
	names []string
	u     [][]float64
	zeta  []float64
}

// box holds log10 bounds per region column, ±Inf when unbounded.
type box struct {
	lo, hi []float64
}

func (c *Case) region() (*region, error) {
	if c.u == nil {
		return nil, ErrNoSolution
	}
	return &region{names: c.xi, u: c.u.RawRows(), zeta: c.zeta}, nil
}

func (c *Case) stateRegion() *region {
	cd, ci := c.cd.RawRows(), c.ci.RawRows()
	u := make([][]float64, len(c.delta))
	for k := range u {
		u[k] = append(append([]float64(nil), cd[k]...), ci[k]...)
	}
	return &region{names: append(c.Xd(), c.xi...), u: u, zeta: c.delta}
}

func (r *region) index(name string) int {
	for k, n := range r.names {
		if n == name {
			return k
		}
	}
	return -1
}

func (r *region) unbounded() box {
	b := box{lo: make([]float64, len(r.names)), hi: make([]float64, len(r.names))}
	for k := range b.lo {
		b.lo[k], b.hi[k] = math.Inf(-1), math.Inf(1)
	}
	return b
}

// box reads log10 bounds from the pools. Names missing from a pool stay
// unbounded on that side; pool entries that are not region columns are
// ignored.
func (r *region) box(lower, upper *variables.Pool) (box, error) {
	b := r.unbounded()
	for k, name := range r.names {
		if lower != nil {
			if v, ok := lower.Lookup(name); ok {
				if v <= 0 {
					return box{}, fmt.Errorf("lower %q=%g: %w", name, v, ErrBadBounds)
				}
				b.lo[k] = math.Log10(v)
			}
		}
		if upper != nil {
			if v, ok := upper.Lookup(name); ok {
				if v <= 0 {
					return box{}, fmt.Errorf("upper %q=%g: %w", name, v, ErrBadBounds)
				}
				b.hi[k] = math.Log10(v)
			}
		}
		if b.lo[k] > b.hi[k] {
			return box{}, fmt.Errorf("%q: lower > upper: %w", name, ErrBadBounds)
		}
	}
	return b, nil
}

// free returns the indices whose bounds differ.
func (b box) free() []int {
	var out []int
	for k := range b.lo {
		if b.lo[k] != b.hi[k] {
			out = append(out, k)
		}
	}
	return out
}

// interior picks a point inside the box: the midpoint, a finite side, or 0.
func (b box) interior() []float64 {
	y := make([]float64, len(b.lo))
	for k := range y {
		lo, hi := b.lo[k], b.hi[k]
		switch {
		case !math.IsInf(lo, 0) && !math.IsInf(hi, 0):
			y[k] = (lo + hi) / 2
		case !math.IsInf(lo, 0):
			y[k] = lo
		case !math.IsInf(hi, 0):
			y[k] = hi
		}
	}
	return y
}

// at returns ζ + U·y.
func (r *region) at(y []float64) []float64 {
	out := make([]float64, len(r.zeta))
	for k, row := range r.u {
		v := r.zeta[k]
		for j, a := range row {
			v += a * y[j]
		}
		out[k] = v
	}
	return out
}

// slack maximises t ≤ 1 subject to ζ + U·y ≥ t with y in the box. It
// returns t and the maximising y.
func (r *region) slack(b box) (float64, []float64, error) {
	n := len(r.names)
	if len(r.zeta) == 0 {
		return 1, b.interior(), nil
	}
	p := lp.Problem{
		Objective: make([]float64, n+1),
		G:         make([][]float64, len(r.zeta)),
		H:         make([]float64, len(r.zeta)),
		Lower:     append(append([]float64(nil), b.lo...), math.Inf(-1)),
		Upper:     append(append([]float64(nil), b.hi...), 1),
	}
	p.Objective[n] = -1
	for k, row := range r.u {
		g := make([]float64, n+1)
		for j, a := range row {
			g[j] = -a
		}
		g[n] = 1
		p.G[k], p.H[k] = g, r.zeta[k]
	}
	sol, err := lp.Solve(p)
	if err != nil {
		return math.Inf(-1), nil, err
	}
	return -sol.Value, sol.X[:n], nil
}

// valid reports whether the interior of the region meets the box.
func (r *region) valid(b box) (bool, []float64, error) {
	t, y, err := r.slack(b)
	if errors.Is(err, lp.ErrInfeasible) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return t > validityThreshold, y, nil
}

// validAtSlice is valid with a point test when every column is fixed.
func (r *region) validAtSlice(lower, upper *variables.Pool) (bool, []float64, error) {
	b, err := r.box(lower, upper)
	if err != nil {
		return false, nil, err
	}
	if len(b.free()) == 0 {
		for _, v := range r.at(b.lo) {
			if v < 0 {
				return false, nil, nil
			}
		}
		return true, b.lo, nil
	}
	return r.valid(b)
}

// extent returns the smallest and largest value of column k over the
// closed region inside the box; ±Inf when unbounded.
func (r *region) extent(b box, k int) (float64, float64, error) {
	n := len(r.names)
	p := lp.Problem{
		Objective: make([]float64, n),
		G:         make([][]float64, len(r.zeta)),
		H:         append([]float64(nil), r.zeta...),
		Lower:     b.lo,
		Upper:     b.hi,
	}
	for i, row := range r.u {
		g := make([]float64, n)
		for j, a := range row {
			g[j] = -a
		}
		p.G[i] = g
	}

	var out [2]float64
	for side, sign := range [2]float64{1, -1} {
		p.Objective[k] = sign
		sol, err := lp.Solve(p)
		switch {
		case errors.Is(err, lp.ErrUnbounded):
			out[side] = math.Inf(-int(sign))
		case errors.Is(err, lp.ErrInfeasible):
			return 0, 0, ErrNotValid
		case err != nil:
			return 0, 0, err
		default:
			out[side] = sign * sol.Value
		}
	}
	return out[0], out[1], nil
}

// pool converts a log witness back to linear values.
func (r *region) pool(y []float64, columns int) (*variables.Pool, error) {
	p, err := variables.NewPool()
	if err != nil {
		return nil, err
	}
	for k := 0; k < columns; k++ {
		if err = p.Add(r.names[k], math.Pow(10, y[k])); err != nil {
			return nil, err
		}
	}
	return p, nil
}
