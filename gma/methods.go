// SPDX-License-Identifier: MIT

package gma

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/matrix"
	"github.com/katalvlaran/dstoolbox/variables"
)

// NumberOfEquations returns |Xd|.
func (s *System) NumberOfEquations() int { return len(s.positive) }

// Xd returns a read-only copy of the dependent variables.
func (s *System) Xd() *variables.Pool { return s.xd.Copy() }

// Xi returns a read-only copy of the independent variables.
func (s *System) Xi() *variables.Pool { return s.xi.Copy() }

// XdNames returns the dependent variable names in equation order.
func (s *System) XdNames() []string { return s.xd.Names() }

// XiNames returns the independent variable names in column order.
func (s *System) XiNames() []string { return s.xi.Names() }

// Signature returns [p0, n0, p1, n1, ...], the term counts per equation.
func (s *System) Signature() []int { return append([]int(nil), s.signature...) }

// NumberOfCases returns the product of the signature entries.
func (s *System) NumberOfCases() int {
	n := 1
	for _, v := range s.signature {
		n *= v
	}
	return n
}

// IsAlgebraic reports whether equation i was written as an algebraic
// constraint (a constant left side such as "0 = ...").
func (s *System) IsAlgebraic(i int) bool {
	return i >= 0 && i < len(s.algebraic) && s.algebraic[i]
}

// PositiveTerms returns copies of the positive terms of equation i.
func (s *System) PositiveTerms(i int) ([]Term, error) {
	if i < 0 || i >= len(s.positive) {
		return nil, fmt.Errorf("PositiveTerms(%d): %w", i, ErrIndexOutOfRange)
	}
	return cloneTerms(s.positive[i]), nil
}

// NegativeTerms returns copies of the negative terms of equation i.
func (s *System) NegativeTerms(i int) ([]Term, error) {
	if i < 0 || i >= len(s.negative) {
		return nil, fmt.Errorf("NegativeTerms(%d): %w", i, ErrIndexOutOfRange)
	}
	return cloneTerms(s.negative[i]), nil
}

// PositiveTerm returns term p (0-based) of equation i.
func (s *System) PositiveTerm(i, p int) (Term, error) {
	if i < 0 || i >= len(s.positive) || p < 0 || p >= len(s.positive[i]) {
		return Term{}, fmt.Errorf("PositiveTerm(%d,%d): %w", i, p, ErrIndexOutOfRange)
	}
	return s.positive[i][p].clone(), nil
}

// NegativeTerm returns term n (0-based) of equation i.
func (s *System) NegativeTerm(i, n int) (Term, error) {
	if i < 0 || i >= len(s.negative) || n < 0 || n >= len(s.negative[i]) {
		return Term{}, fmt.Errorf("NegativeTerm(%d,%d): %w", i, n, ErrIndexOutOfRange)
	}
	return s.negative[i][n].clone(), nil
}

// Alpha returns α[i][p], the positive coefficients.
func (s *System) Alpha() [][]float64 { return coefficients(s.positive) }

// Beta returns β[i][n], the negative coefficients.
func (s *System) Beta() [][]float64 { return coefficients(s.negative) }

// Gd returns the Xd kinetic orders of the positive terms of equation i
// (one row per term).
func (s *System) Gd(i int) (*matrix.Dense, error) { return s.orders(s.positive, i, true) }

// Gi returns the Xi kinetic orders of the positive terms of equation i.
func (s *System) Gi(i int) (*matrix.Dense, error) { return s.orders(s.positive, i, false) }

// Hd returns the Xd kinetic orders of the negative terms of equation i.
func (s *System) Hd(i int) (*matrix.Dense, error) { return s.orders(s.negative, i, true) }

// Hi returns the Xi kinetic orders of the negative terms of equation i.
func (s *System) Hi(i int) (*matrix.Dense, error) { return s.orders(s.negative, i, false) }

func (s *System) orders(terms [][]Term, i int, dependent bool) (*matrix.Dense, error) {
	if i < 0 || i >= len(terms) {
		return nil, fmt.Errorf("gma: equation %d: %w", i, ErrIndexOutOfRange)
	}
	rows := make([][]float64, len(terms[i]))
	for k, t := range terms[i] {
		if dependent {
			rows[k] = t.Kd
		} else {
			rows[k] = t.Ki
		}
	}
	m, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, err
	}
	if m.Cols() == 0 {
		// NewFromRows cannot see the width of empty rows; keep the declared width.
		width := s.xi.Len()
		if dependent {
			width = s.xd.Len()
		}
		return matrix.NewZeros(len(rows), width)
	}
	return m, nil
}

// TermExpression renders a term with the given sign, factors ordered Xi then Xd.
func (s *System) TermExpression(t Term, negative bool) *expression.Expression {
	names := append(s.xi.Names(), s.xd.Names()...)
	exps := append(append([]float64(nil), t.Ki...), t.Kd...)
	c := t.Coefficient
	if negative {
		c = -c
	}
	return expression.PowerLawExpression(c, names, exps)
}

// Equations returns each equation as "xd. = positive terms - negative terms".
// Algebraic equations print as "0 = ...".
func (s *System) Equations() []*expression.Expression {
	out := make([]*expression.Expression, len(s.positive))
	names := s.xd.Names()
	for i := range s.positive {
		terms := make([]*expression.Expression, 0, len(s.positive[i])+len(s.negative[i]))
		for _, t := range s.positive[i] {
			terms = append(terms, s.TermExpression(t, false))
		}
		for _, t := range s.negative[i] {
			terms = append(terms, s.TermExpression(t, true))
		}
		lhs := expression.Prime(expression.Variable(names[i]))
		if s.algebraic[i] {
			lhs = expression.Constant(0)
		}
		out[i] = expression.Relation(expression.OpEqual, lhs, expression.Sum(terms...))
	}
	return out
}

// String joins Equations with newlines.
func (s *System) String() string {
	eqs := s.Equations()
	lines := make([]string, len(eqs))
	for i, e := range eqs {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

func coefficients(terms [][]Term) [][]float64 {
	out := make([][]float64, len(terms))
	for i := range terms {
		out[i] = make([]float64, len(terms[i]))
		for k, t := range terms[i] {
			out[i][k] = t.Coefficient
		}
	}
	return out
}

func (t Term) clone() Term {
	return Term{
		Coefficient: t.Coefficient,
		Kd:          append([]float64(nil), t.Kd...),
		Ki:          append([]float64(nil), t.Ki...),
	}
}

func cloneTerms(ts []Term) []Term {
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = t.clone()
	}
	return out
}
