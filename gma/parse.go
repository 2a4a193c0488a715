// SPDX-License-Identifier: MIT

package gma

import (
	"fmt"

	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/variables"
)

func equationErrorf(i int, err error) error {
	return fmt.Errorf("gma: equation %d: %w", i, err)
}

// Parse builds a System from equation strings.
//
// When xd is nil the dependent variables are the left-hand side names in
// equation order; each left side must then be a name, optionally primed
// (x1. or x1'). When xd is given, equation i belongs to xd's i-th variable and
// a left side that names a variable must name that one; a constant left side
// (0 = ...) is accepted as an algebraic constraint on that variable.
//
// Independent variables are the remaining right-hand side names in order of
// first appearance.
func Parse(equations []string, xd *variables.Pool) (*System, error) {
	return ParseWithXi(equations, xd, nil)
}

// ParseWithXi is Parse with a fixed leading Xi order. Names in xi come first,
// in xi's order; any other right-hand side name is appended after them.
func ParseWithXi(equations []string, xd, xi *variables.Pool) (*System, error) {
	if len(equations) == 0 {
		return nil, ErrNoEquations
	}
	if xd != nil && xd.Len() != len(equations) {
		return nil, fmt.Errorf("%w: %d equations, %d dependent variables", ErrEquationCount, len(equations), xd.Len())
	}

	// Stage 1: parse every equation and resolve its dependent variable.
	rel := make([]*expression.Expression, len(equations))
	algebraic := make([]bool, len(equations))
	xdNames := make([]string, len(equations))
	for i, s := range equations {
		e, err := expression.Parse(s)
		if err != nil {
			return nil, equationErrorf(i, err)
		}
		if e.Op() != expression.OpEqual {
			return nil, equationErrorf(i, ErrMissingEquals)
		}
		rel[i] = e

		lhs := e.Left()
		name := ""
		switch {
		case lhs.Op() == expression.OpPrime && lhs.Branch(0).Kind() == expression.KindVariable:
			name = lhs.Branch(0).Name()
		case lhs.Kind() == expression.KindVariable:
			name = lhs.Name()
		case lhs.IsConstant() && xd != nil:
			algebraic[i] = true
		default:
			return nil, equationErrorf(i, fmt.Errorf("%w: %s", ErrUnknownDependent, lhs))
		}
		if xd == nil {
			xdNames[i] = name
			continue
		}
		v, _ := xd.At(i)
		xdNames[i] = v.Name
		if name != "" && name != v.Name {
			return nil, equationErrorf(i, fmt.Errorf("%w: %s (expected %s)", ErrUnknownDependent, name, v.Name))
		}
	}
	dep, err := variables.NewPool(xdNames...)
	if err != nil {
		return nil, fmt.Errorf("gma: dependent variables: %w", err)
	}

	// Stage 2: independent variables in order of first appearance.
	ind, _ := variables.NewPool()
	if xi != nil {
		for _, n := range xi.Names() {
			if dep.Has(n) {
				continue
			}
			_ = ind.Add(n, 0)
		}
	}
	for _, e := range rel {
		for _, n := range e.Right().Variables() {
			if dep.Has(n) || ind.Has(n) {
				continue
			}
			if err = ind.Add(n, 0); err != nil {
				return nil, fmt.Errorf("gma: independent variables: %w", err)
			}
		}
	}

	// Stage 3: decompose every right-hand side into signed power laws.
	sys := &System{
		xd:        dep,
		xi:        ind,
		positive:  make([][]Term, len(rel)),
		negative:  make([][]Term, len(rel)),
		algebraic: algebraic,
		signature: make([]int, 2*len(rel)),
	}
	for i, e := range rel {
		for _, t := range e.Right().Terms() {
			pl, err := t.PowerLaw()
			if err != nil {
				return nil, equationErrorf(i, fmt.Errorf("%w: %v", ErrNotPowerLaw, err))
			}
			if pl.Coefficient == 0 {
				continue
			}
			term := Term{
				Kd: make([]float64, dep.Len()),
				Ki: make([]float64, ind.Len()),
			}
			for _, n := range pl.Names {
				if j := dep.IndexOf(n); j >= 0 {
					term.Kd[j] = pl.Exponent(n)
				} else {
					term.Ki[ind.IndexOf(n)] = pl.Exponent(n)
				}
			}
			if pl.Coefficient > 0 {
				term.Coefficient = pl.Coefficient
				sys.positive[i] = append(sys.positive[i], term)
			} else {
				term.Coefficient = -pl.Coefficient
				sys.negative[i] = append(sys.negative[i], term)
			}
		}
		if len(sys.positive[i]) == 0 {
			return nil, equationErrorf(i, ErrNoPositiveTerm)
		}
		if len(sys.negative[i]) == 0 {
			return nil, equationErrorf(i, ErrNoNegativeTerm)
		}
		sys.signature[2*i] = len(sys.positive[i])
		sys.signature[2*i+1] = len(sys.negative[i])
	}
	dep.SetMode(variables.ReadOnly)
	ind.SetMode(variables.ReadOnly)

	return sys, nil
}
