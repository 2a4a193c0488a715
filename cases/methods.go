// SPDX-License-Identifier: MIT

package cases

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/matrix"
	"github.com/katalvlaran/dstoolbox/ssystem"
)

// Number returns the 1-based case number.
func (c *Case) Number() int { return c.number }

// Signature returns the dominant terms [p0, n0, p1, n1, ...] (1-based).
func (c *Case) Signature() []int { return append([]int(nil), c.signature...) }

// SignatureString returns the signature as digits, e.g. "2111" or "1(12)11".
func (c *Case) SignatureString() string { return formatSignature(c.signature) }

// SSystem returns the S-system of the case.
func (c *Case) SSystem() *ssystem.SSystem { return c.ssys }

// HasSolution reports whether the S-system has a steady state.
func (c *Case) HasSolution() bool { return c.ssys.HasSolution() }

// NumberOfEquations returns |Xd|.
func (c *Case) NumberOfEquations() int { return len(c.xd) }

// Xd returns the dependent variable names.
func (c *Case) Xd() []string { return append([]string(nil), c.xd...) }

// Xi returns the independent variable names.
func (c *Case) Xi() []string { return append([]string(nil), c.xi...) }

// Equations returns the S-system equations.
func (c *Case) Equations() []*expression.Expression { return c.ssys.Equations() }

// Solution returns the symbolic steady state (see ssystem.SSystem.Solution).
func (c *Case) Solution(logForm bool) ([]*expression.Expression, error) {
	return c.ssys.Solution(logForm)
}

// NumberOfConditions returns the number of dominance conditions.
func (c *Case) NumberOfConditions() int { return len(c.delta) }

// NumberOfBoundaries returns the number of boundaries, 0 without a solution.
func (c *Case) NumberOfBoundaries() int { return len(c.zeta) }

// Cd returns the Xd coefficients of the conditions.
func (c *Case) Cd() *matrix.Dense { return c.cd.Clone().(*matrix.Dense) }

// Ci returns the Xi coefficients of the conditions.
func (c *Case) Ci() *matrix.Dense { return c.ci.Clone().(*matrix.Dense) }

// Delta returns the constant terms of the conditions.
func (c *Case) Delta() []float64 { return append([]float64(nil), c.delta...) }

// U returns the Xi coefficients of the boundaries.
func (c *Case) U() (*matrix.Dense, error) {
	if c.u == nil {
		return nil, ErrNoSolution
	}
	return c.u.Clone().(*matrix.Dense), nil
}

// Zeta returns the constant terms of the boundaries.
func (c *Case) Zeta() ([]float64, error) {
	if c.u == nil {
		return nil, ErrNoSolution
	}
	return append([]float64(nil), c.zeta...), nil
}

// Conditions returns the dominance conditions as relations. In linear form
// each reads "10^δ*Π X^c > 1" with Xi factors before Xd; in log form
// "δ+Σ c*log(X) > 0".
func (c *Case) Conditions(logForm bool) []*expression.Expression {
	names := append(append([]string(nil), c.xi...), c.xd...)
	out := make([]*expression.Expression, len(c.delta))
	for k := range c.delta {
		ci, _ := c.ci.Row(k)
		cd, _ := c.cd.Row(k)
		out[k] = inequality(c.delta[k], names, append(ci, cd...), logForm)
	}
	return out
}

// Boundaries returns the boundaries as relations over Xi, in the same
// forms as Conditions.
//
// Errors: ErrNoSolution.
func (c *Case) Boundaries(logForm bool) ([]*expression.Expression, error) {
	if c.u == nil {
		return nil, ErrNoSolution
	}
	out := make([]*expression.Expression, len(c.zeta))
	for k := range c.zeta {
		row, _ := c.u.Row(k)
		out[k] = inequality(c.zeta[k], c.xi, row, logForm)
	}
	return out, nil
}

// BoundariesAt evaluates ζ + U·log10(Xi) at a point. Every entry is
// positive inside the region.
//
// Errors: ErrNoSolution, ErrNotFixed, ErrBadBounds.
func (c *Case) BoundariesAt(vars expression.Lookup) ([]float64, error) {
	if c.u == nil {
		return nil, ErrNoSolution
	}
	y, err := logPoint(c.xi, vars)
	if err != nil {
		return nil, err
	}
	v, err := matrix.MatVec(c.u, y)
	if err != nil {
		return nil, err
	}
	for k := range v {
		v[k] += c.zeta[k]
	}
	return v, nil
}

// SteadyStateAt returns the steady-state Xd values at the point.
func (c *Case) SteadyStateAt(vars expression.Lookup) ([]float64, error) {
	return c.ssys.SteadyStateValues(vars)
}

// FluxAt returns the steady-state positive fluxes at the point.
func (c *Case) FluxAt(vars expression.Lookup) ([]float64, error) {
	return c.ssys.FluxValues(vars)
}

// LogarithmicGain returns ∂log xd/∂log xi of the case's S-system.
func (c *Case) LogarithmicGain(xd, xi string) (float64, error) {
	return c.ssys.LogarithmicGain(xd, xi)
}

// String returns "Case <n>: <signature>".
func (c *Case) String() string {
	return fmt.Sprintf("Case %d: %s", c.number, c.SignatureString())
}

func inequality(constant float64, names []string, coeffs []float64, logForm bool) *expression.Expression {
	if !logForm {
		lhs := expression.PowerLawExpression(math.Pow(10, constant), names, coeffs)
		return expression.Relation(expression.OpGreater, lhs, expression.Constant(1))
	}
	terms := []*expression.Expression{expression.Constant(constant)}
	for k, name := range names {
		if coeffs[k] == 0 {
			continue
		}
		terms = append(terms, expression.Product(
			expression.Constant(coeffs[k]),
			expression.Call("log", expression.Variable(name))))
	}
	return expression.Relation(expression.OpGreater, expression.Sum(terms...), expression.Constant(0))
}

// logPoint reads log10 of every name from vars.
func logPoint(names []string, vars expression.Lookup) ([]float64, error) {
	y := make([]float64, len(names))
	for k, name := range names {
		v, ok := vars.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrNotFixed)
		}
		if v <= 0 {
			return nil, fmt.Errorf("%q=%g: %w", name, v, ErrBadBounds)
		}
		y[k] = math.Log10(v)
	}
	return y, nil
}
