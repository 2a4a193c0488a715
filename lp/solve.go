// SPDX-License-Identifier: MIT

package lp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	glp "gonum.org/v1/gonum/optimize/convex/lp"
)

// Solve minimises the problem. See the package documentation for the stages.
func Solve(p Problem) (Solution, error) {
	n := len(p.Objective)
	if err := p.validate(n); err != nil {
		return Solution{}, err
	}

	lower := bounds(p.Lower, n, math.Inf(-1))
	upper := bounds(p.Upper, n, math.Inf(1))
	x := make([]float64, n)
	fixed := make([]bool, n)
	var constant float64
	for j := 0; j < n; j++ {
		if lower[j] > upper[j] {
			return Solution{}, fmt.Errorf("lp: variable %d has lower > upper: %w", j, ErrInfeasible)
		}
		if lower[j] == upper[j] {
			fixed[j], x[j] = true, lower[j]
			constant += p.Objective[j] * x[j]
		}
	}

	// Free variables keep their original index in free[k].
	var free []int
	for j := 0; j < n; j++ {
		if !fixed[j] {
			free = append(free, j)
		}
	}

	var rows [][]float64
	var h []float64
	addRow := func(g []float64, rhs float64) error {
		row := make([]float64, len(free))
		zero := true
		for k, j := range free {
			row[k] = g[j]
			if g[j] != 0 {
				zero = false
			}
		}
		for j := 0; j < n; j++ {
			if fixed[j] {
				rhs -= g[j] * x[j]
			}
		}
		if zero {
			if rhs < -Tolerance {
				return ErrInfeasible
			}
			return nil
		}
		rows = append(rows, row)
		h = append(h, rhs)
		return nil
	}
	for i, g := range p.G {
		if err := addRow(g, p.H[i]); err != nil {
			return Solution{}, fmt.Errorf("lp: constraint %d: %w", i, err)
		}
	}
	unit := make([]float64, n)
	for _, j := range free {
		unit[j] = 1
		if !math.IsInf(upper[j], 1) {
			_ = addRow(unit, upper[j])
		}
		unit[j] = -1
		if !math.IsInf(lower[j], -1) {
			_ = addRow(unit, -lower[j])
		}
		unit[j] = 0
	}

	// Pin columns that no remaining row touches.
	var active []int
	for k, j := range free {
		used := false
		for _, r := range rows {
			if r[k] != 0 {
				used = true
				break
			}
		}
		if used {
			active = append(active, k)
			continue
		}
		if p.Objective[j] != 0 {
			return Solution{}, fmt.Errorf("lp: variable %d is unconstrained: %w", j, ErrUnbounded)
		}
	}
	if len(active) == 0 {
		return Solution{Value: constant, X: x}, nil
	}

	c := make([]float64, len(active))
	g := mat.NewDense(len(rows), len(active), nil)
	for a, k := range active {
		c[a] = p.Objective[free[k]]
		for i, r := range rows {
			g.Set(i, a, r[k])
		}
	}
	cs, as, bs := glp.Convert(c, g, h, nil, nil)
	opt, xs, err := glp.Simplex(cs, as, bs, Tolerance, nil)
	if err != nil {
		return Solution{}, translate(err)
	}
	nv := len(active)
	for a, k := range active {
		x[free[k]] = xs[a] - xs[nv+a]
	}

	return Solution{Value: opt + constant, X: x}, nil
}

func (p Problem) validate(n int) error {
	if len(p.G) != len(p.H) {
		return fmt.Errorf("%w: %d rows in G, %d entries in H", ErrBadShape, len(p.G), len(p.H))
	}
	for i, r := range p.G {
		if len(r) != n {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrBadShape, i, len(r), n)
		}
	}
	if p.Lower != nil && len(p.Lower) != n {
		return fmt.Errorf("%w: lower has %d entries, want %d", ErrBadShape, len(p.Lower), n)
	}
	if p.Upper != nil && len(p.Upper) != n {
		return fmt.Errorf("%w: upper has %d entries, want %d", ErrBadShape, len(p.Upper), n)
	}
	return nil
}

func bounds(b []float64, n int, def float64) []float64 {
	out := make([]float64, n)
	for j := range out {
		if b == nil || math.IsNaN(b[j]) {
			out[j] = def
			continue
		}
		out[j] = b[j]
	}
	return out
}

// translate maps gonum's simplex errors to this package's sentinels.
func translate(err error) error {
	switch {
	case errors.Is(err, glp.ErrInfeasible):
		return fmt.Errorf("%w: %v", ErrInfeasible, err)
	case errors.Is(err, glp.ErrUnbounded):
		return fmt.Errorf("%w: %v", ErrUnbounded, err)
	default:
		return fmt.Errorf("lp: simplex: %w", err)
	}
}
