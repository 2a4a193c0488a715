// SPDX-License-Identifier: MIT

package designspace

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/gma"
	"github.com/katalvlaran/dstoolbox/matrix"
)

// cancelTolerance is the relative size below which a combined coefficient
// is treated as cancelled.
const cancelTolerance = 1e-12

// DesignSpace builds the internal design space of the subcase.
//
// Within each problematic group the dominant terms cancel under a weighted
// sum of the group's equations. The weights w solve E·w = 0, where E has one
// row per distinct dominant power law and one column per equation of the
// group, holding +α or −β of that equation's dominant terms. The first
// equation of the group is replaced by Σ w·(full GMA right-hand side), with
// like terms combined; the other equations keep their S-system form. The
// result carries the case's conditions, so its cases are restricted to the
// region where the parent case's dominance holds.
//
// Errors: ErrNoSubcase when some group admits no cancelling weights or its
// combined equation lacks a positive or a negative term; the parse errors of
// New.
func (s *Subcase) DesignSpace() (*DesignSpace, error) {
	parent := s.parent
	sys := parent.sys
	sig := s.Case.Signature()

	equations := make([]string, sys.NumberOfEquations())
	for i, e := range s.Case.Equations() {
		equations[i] = e.String()
	}
	for _, group := range s.Problematic {
		w, err := groupWeights(sys, sig, group)
		if err != nil {
			return nil, fmt.Errorf("subcase of case %d: %w", s.CaseNumber, err)
		}
		eq, err := combinedEquation(sys, group, w)
		if err != nil {
			return nil, fmt.Errorf("subcase of case %d: %w", s.CaseNumber, err)
		}
		equations[group[0]] = eq.String()
	}

	inner, err := New(equations, sys.XdNames(),
		WithXi(sys.XiNames()...),
		WithWorkers(parent.workers),
		WithLogger(parent.logger.With(slog.Int("subcase", s.CaseNumber))),
		func(o *Options) { o.Endianness = parent.endian },
	)
	if err != nil {
		return nil, fmt.Errorf("subcase of case %d: %w", s.CaseNumber, err)
	}
	if err = inner.AddConditions(s.Case.Cd().RawRows(), s.Case.Ci().RawRows(), s.Case.Delta()); err != nil {
		return nil, fmt.Errorf("subcase of case %d: %w", s.CaseNumber, err)
	}
	return inner, nil
}

// powerLaw is one exponent vector [Kd Ki] with the signed coefficient
// gathered on it.
type powerLaw struct {
	orders []float64
	coef   float64
	scale  float64 // largest |contribution|, for the cancellation test
}

func orders(t gma.Term) []float64 {
	return append(append([]float64(nil), t.Kd...), t.Ki...)
}

func sameOrders(a, b []float64) bool {
	for k := range a {
		if math.Abs(a[k]-b[k]) > cancelTolerance {
			return false
		}
	}
	return true
}

// indexOf returns the position of orders in laws, appending a new entry
// when absent.
func indexOf(laws *[]powerLaw, o []float64) int {
	for k, l := range *laws {
		if sameOrders(l.orders, o) {
			return k
		}
	}
	*laws = append(*laws, powerLaw{orders: o})
	return len(*laws) - 1
}

// groupWeights returns one weight per equation of group under which the
// group's dominant terms sum to zero. Weights are scaled so the smallest in
// magnitude is ±1 and the first is positive.
func groupWeights(sys *gma.System, sig []int, group []int) ([]float64, error) {
	var laws []powerLaw
	var rows [][]float64
	add := func(o []float64, col int, v float64) {
		k := indexOf(&laws, o)
		if k == len(rows) {
			rows = append(rows, make([]float64, len(group)))
		}
		rows[k][col] += v
	}
	for col, i := range group {
		p, err := sys.PositiveTerm(i, sig[2*i]-1)
		if err != nil {
			return nil, err
		}
		n, err := sys.NegativeTerm(i, sig[2*i+1]-1)
		if err != nil {
			return nil, err
		}
		add(orders(p), col, p.Coefficient)
		add(orders(n), col, -n.Coefficient)
	}

	e, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, err
	}
	ns, err := matrix.Nullspace(e)
	if err != nil {
		return nil, err
	}
	if ns.Cols() == 0 {
		return nil, fmt.Errorf("%w: dominant terms of equations %v do not cancel", ErrNoSubcase, group)
	}
	w, _ := ns.Col(0)
	smallest := math.Inf(1)
	for _, v := range w {
		if math.Abs(v) < cancelTolerance {
			return nil, fmt.Errorf("%w: equations %v cancel without every member", ErrNoSubcase, group)
		}
		smallest = math.Min(smallest, math.Abs(v))
	}
	if w[0] < 0 {
		smallest = -smallest
	}
	for k := range w {
		w[k] /= smallest
	}
	return w, nil
}

// combinedEquation returns "x. = Σ w·(positive − negative terms)" over the
// group's full GMA equations, x being the first equation's variable.
func combinedEquation(sys *gma.System, group []int, w []float64) (*expression.Expression, error) {
	var laws []powerLaw
	gather := func(t gma.Term, v float64) {
		k := indexOf(&laws, orders(t))
		laws[k].coef += v
		laws[k].scale = math.Max(laws[k].scale, math.Abs(v))
	}
	for col, i := range group {
		pos, err := sys.PositiveTerms(i)
		if err != nil {
			return nil, err
		}
		neg, err := sys.NegativeTerms(i)
		if err != nil {
			return nil, err
		}
		for _, t := range pos {
			gather(t, w[col]*t.Coefficient)
		}
		for _, t := range neg {
			gather(t, -w[col]*t.Coefficient)
		}
	}

	nd := sys.NumberOfEquations()
	var terms []*expression.Expression
	var positive, negative bool
	for _, l := range laws {
		if math.Abs(l.coef) <= cancelTolerance*l.scale {
			continue
		}
		t := gma.Term{Coefficient: math.Abs(l.coef), Kd: l.orders[:nd], Ki: l.orders[nd:]}
		terms = append(terms, sys.TermExpression(t, l.coef < 0))
		positive = positive || l.coef > 0
		negative = negative || l.coef < 0
	}
	if !positive || !negative {
		return nil, fmt.Errorf("%w: combined equation of %v needs a positive and a negative term", ErrNoSubcase, group)
	}
	lhs := expression.Prime(expression.Variable(sys.XdNames()[group[0]]))
	return expression.Relation(expression.OpEqual, lhs, expression.Sum(terms...)), nil
}
