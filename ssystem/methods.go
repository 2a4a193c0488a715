// SPDX-License-Identifier: MIT

package ssystem

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/matrix"
)

// NumberOfEquations returns |Xd|.
func (s *SSystem) NumberOfEquations() int { return len(s.xd) }

// Xd returns the dependent variable names.
func (s *SSystem) Xd() []string { return append([]string(nil), s.xd...) }

// Xi returns the independent variable names.
func (s *SSystem) Xi() []string { return append([]string(nil), s.xi...) }

// HasSolution reports whether Ad is invertible.
func (s *SSystem) HasSolution() bool { return s.m != nil }

// Alpha returns the positive rate constants.
func (s *SSystem) Alpha() []float64 { return append([]float64(nil), s.alpha...) }

// Beta returns the negative rate constants.
func (s *SSystem) Beta() []float64 { return append([]float64(nil), s.beta...) }

// Gd returns a copy of the positive-term Xd kinetic orders.
func (s *SSystem) Gd() *matrix.Dense { return clone(s.gd) }

// Gi returns a copy of the positive-term Xi kinetic orders.
func (s *SSystem) Gi() *matrix.Dense { return clone(s.gi) }

// Hd returns a copy of the negative-term Xd kinetic orders.
func (s *SSystem) Hd() *matrix.Dense { return clone(s.hd) }

// Hi returns a copy of the negative-term Xi kinetic orders.
func (s *SSystem) Hi() *matrix.Dense { return clone(s.hi) }

// Ad returns Gd − Hd.
func (s *SSystem) Ad() *matrix.Dense { return clone(s.ad) }

// Ai returns Gi − Hi.
func (s *SSystem) Ai() *matrix.Dense { return clone(s.ai) }

// B returns log10(β/α).
func (s *SSystem) B() []float64 { return append([]float64(nil), s.b...) }

// M returns Ad⁻¹.
func (s *SSystem) M() (*matrix.Dense, error) {
	if s.m == nil {
		return nil, ErrNoSolution
	}
	return clone(s.m), nil
}

// MB returns M·B, the log steady state when every Xi equals 1.
func (s *SSystem) MB() ([]float64, error) {
	if s.m == nil {
		return nil, ErrNoSolution
	}
	return append([]float64(nil), s.mb...), nil
}

// LogarithmicGains returns L = −M·Ai (rows Xd, columns Xi).
func (s *SSystem) LogarithmicGains() (*matrix.Dense, error) {
	if s.m == nil {
		return nil, ErrNoSolution
	}
	return clone(s.gain), nil
}

// LogarithmicGain returns ∂log Xd/∂log Xi for one pair of names.
func (s *SSystem) LogarithmicGain(xd, xi string) (float64, error) {
	if s.m == nil {
		return 0, ErrNoSolution
	}
	i, j := indexOf(s.xd, xd), indexOf(s.xi, xi)
	if i < 0 {
		return 0, fmt.Errorf("%q: %w", xd, ErrVariableNotFound)
	}
	if j < 0 {
		return 0, fmt.Errorf("%q: %w", xi, ErrVariableNotFound)
	}
	return s.gain.Get(i, j), nil
}

// Equations returns each equation as "xd. = α*Π - β*Π" with Xi factors
// before Xd factors.
func (s *SSystem) Equations() []*expression.Expression {
	names := append(append([]string(nil), s.xi...), s.xd...)
	out := make([]*expression.Expression, len(s.xd))
	for i := range s.xd {
		gi, _ := s.gi.Row(i)
		gd, _ := s.gd.Row(i)
		hi, _ := s.hi.Row(i)
		hd, _ := s.hd.Row(i)
		pos := expression.PowerLawExpression(s.alpha[i], names, append(gi, gd...))
		neg := expression.PowerLawExpression(-s.beta[i], names, append(hi, hd...))
		out[i] = expression.Relation(expression.OpEqual,
			expression.Prime(expression.Variable(s.xd[i])),
			expression.Sum(pos, neg))
	}
	return out
}

// Solution returns the steady state per Xd. In linear form each entry reads
// "x = 10^(M·B)·Π Xi^L"; in log form "log(x) = M·B + Σ L·log(Xi)".
func (s *SSystem) Solution(logForm bool) ([]*expression.Expression, error) {
	if s.m == nil {
		return nil, ErrNoSolution
	}
	out := make([]*expression.Expression, len(s.xd))
	for i, name := range s.xd {
		if logForm {
			terms := []*expression.Expression{expression.Constant(s.mb[i])}
			for j, xi := range s.xi {
				if g := s.gain.Get(i, j); g != 0 {
					terms = append(terms, expression.Product(expression.Constant(g), expression.Call("log", expression.Variable(xi))))
				}
			}
			out[i] = expression.Relation(expression.OpEqual,
				expression.Call("log", expression.Variable(name)), expression.Sum(terms...))
			continue
		}
		row, _ := s.gain.Row(i)
		rhs := expression.PowerLawExpression(math.Pow(10, s.mb[i]), s.xi, row)
		out[i] = expression.Relation(expression.OpEqual, expression.Variable(name), rhs)
	}
	return out, nil
}

// logXi reads log10 of every Xi from vars, in Xi order.
func (s *SSystem) logXi(vars expression.Lookup) ([]float64, error) {
	yi := make([]float64, len(s.xi))
	for j, name := range s.xi {
		v, ok := vars.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrVariableNotFound)
		}
		if v <= 0 {
			return nil, fmt.Errorf("%q=%g: %w", name, v, ErrNonPositive)
		}
		yi[j] = math.Log10(v)
	}
	return yi, nil
}

// SteadyState returns log10 of the steady-state Xd at the point vars:
// yd = M·B + L·yi.
func (s *SSystem) SteadyState(vars expression.Lookup) ([]float64, error) {
	if s.m == nil {
		return nil, ErrNoSolution
	}
	yi, err := s.logXi(vars)
	if err != nil {
		return nil, err
	}
	return s.steadyStateLog(yi)
}

func (s *SSystem) steadyStateLog(yi []float64) ([]float64, error) {
	ly, err := matrix.MatVec(s.gain, yi)
	if err != nil {
		return nil, err
	}
	for i := range ly {
		ly[i] += s.mb[i]
	}
	return ly, nil
}

// SteadyStateValues returns the steady-state Xd in linear scale.
func (s *SSystem) SteadyStateValues(vars expression.Lookup) ([]float64, error) {
	yd, err := s.SteadyState(vars)
	if err != nil {
		return nil, err
	}
	return pow10(yd), nil
}

// Flux returns log10 of the positive-term flux of every equation at the
// steady state: log10 α_i + Gd_i·yd + Gi_i·yi.
func (s *SSystem) Flux(vars expression.Lookup) ([]float64, error) {
	if s.m == nil {
		return nil, ErrNoSolution
	}
	yi, err := s.logXi(vars)
	if err != nil {
		return nil, err
	}
	yd, err := s.steadyStateLog(yi)
	if err != nil {
		return nil, err
	}
	return s.fluxLog(yd, yi)
}

func (s *SSystem) fluxLog(yd, yi []float64) ([]float64, error) {
	fd, err := matrix.MatVec(s.gd, yd)
	if err != nil {
		return nil, err
	}
	fi, err := matrix.MatVec(s.gi, yi)
	if err != nil {
		return nil, err
	}
	for i := range fd {
		fd[i] += math.Log10(s.alpha[i]) + fi[i]
	}
	return fd, nil
}

// FluxValues returns the steady-state fluxes in linear scale.
func (s *SSystem) FluxValues(vars expression.Lookup) ([]float64, error) {
	f, err := s.Flux(vars)
	if err != nil {
		return nil, err
	}
	return pow10(f), nil
}

// SteadyStateFunction evaluates fn at the steady state. fn may use Xi, Xd
// (at steady state) and V_<xd> (positive flux of the equation of xd).
func (s *SSystem) SteadyStateFunction(vars expression.Lookup, fn *expression.Expression) (float64, error) {
	env, err := s.SteadyStateEnvironment(vars)
	if err != nil {
		return 0, err
	}
	return fn.Eval(env)
}

// SteadyStateEnvironment returns a lookup holding the Xi values of vars,
// every Xd at steady state and V_<xd> for every flux.
func (s *SSystem) SteadyStateEnvironment(vars expression.Lookup) (expression.MapLookup, error) {
	ss, err := s.SteadyStateValues(vars)
	if err != nil {
		return nil, err
	}
	fl, err := s.FluxValues(vars)
	if err != nil {
		return nil, err
	}
	env := make(expression.MapLookup, len(s.xi)+2*len(s.xd))
	for _, name := range s.xi {
		env[name], _ = vars.Lookup(name)
	}
	for i, name := range s.xd {
		env[name] = ss[i]
		env["V_"+name] = fl[i]
	}
	return env, nil
}

func pow10(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Pow(10, x)
	}
	return out
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func clone(m *matrix.Dense) *matrix.Dense {
	if m == nil {
		return nil
	}
	return m.Clone().(*matrix.Dense)
}
