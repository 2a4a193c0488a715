// SPDX-License-Identifier: MIT

package cases

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dstoolbox/gma"
	"github.com/katalvlaran/dstoolbox/matrix"
	"github.com/katalvlaran/dstoolbox/ssystem"
)

func caseErrorf(op string, err error) error {
	return fmt.Errorf("cases: %s: %w", op, err)
}

// New builds the case with the given 1-based number.
//
// Errors: ErrCaseNumberZero, ErrCaseNumberOutOfRange, ErrSignatureMismatch.
func New(sys *gma.System, number int, opts ...Option) (*Case, error) {
	o := options(opts)
	sig, err := SignatureForNumber(number, sys.Signature(), o.Endianness)
	if err != nil {
		return nil, err
	}
	return build(sys, sig, number, o)
}

// NewFromSignature builds the case selecting the given 1-based dominant
// terms [p0, n0, p1, n1, ...].
//
// Errors: ErrSignatureMismatch.
func NewFromSignature(sys *gma.System, signature []int, opts ...Option) (*Case, error) {
	o := options(opts)
	number, err := NumberForSignature(signature, sys.Signature(), o.Endianness)
	if err != nil {
		return nil, err
	}
	return build(sys, signature, number, o)
}

func options(opts []Option) Options {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// build assembles the S-system, the conditions and, when a steady state
// exists, the boundaries.
func build(sys *gma.System, signature []int, number int, o Options) (*Case, error) {
	ss, err := ssystem.FromGMA(sys, signature)
	if err != nil {
		return nil, caseErrorf("New", fmt.Errorf("%w: %v", ErrSignatureMismatch, err))
	}
	c := &Case{
		number:    number,
		signature: append([]int(nil), signature...),
		ssys:      ss,
		xd:        sys.XdNames(),
		xi:        sys.XiNames(),
	}
	if err = c.conditions(sys, o.Extra); err != nil {
		return nil, caseErrorf("New", err)
	}
	if ss.HasSolution() {
		if err = c.boundaries(); err != nil {
			return nil, caseErrorf("New", err)
		}
	}
	return c, nil
}

// conditions fills Cd, Ci and δ: for each equation, sign and non-dominant
// term j one row comparing the dominant term with j.
func (c *Case) conditions(sys *gma.System, extra *Conditions) error {
	var cd, ci [][]float64
	var delta []float64
	n := sys.NumberOfEquations()
	for i := 0; i < n; i++ {
		for sign := 0; sign < 2; sign++ {
			terms, err := sys.PositiveTerms(i)
			if sign == 1 {
				terms, err = sys.NegativeTerms(i)
			}
			if err != nil {
				return err
			}
			dom := terms[c.signature[2*i+sign]-1]
			for j, t := range terms {
				if j == c.signature[2*i+sign]-1 {
					continue
				}
				delta = append(delta, math.Log10(dom.Coefficient/t.Coefficient))
				cd = append(cd, difference(dom.Kd, t.Kd))
				ci = append(ci, difference(dom.Ki, t.Ki))
			}
		}
	}
	if k := extra.Len(); k > 0 {
		if len(extra.Cd) != k || len(extra.Ci) != k {
			return fmt.Errorf("%w: extra conditions have %d/%d/%d rows", ErrSignatureMismatch, len(extra.Cd), len(extra.Ci), k)
		}
		for r := 0; r < k; r++ {
			if len(extra.Cd[r]) != len(c.xd) || len(extra.Ci[r]) != len(c.xi) {
				return fmt.Errorf("%w: extra condition %d has the wrong width", ErrSignatureMismatch, r)
			}
			cd = append(cd, append([]float64(nil), extra.Cd[r]...))
			ci = append(ci, append([]float64(nil), extra.Ci[r]...))
			delta = append(delta, extra.Delta[r])
		}
	}

	var err error
	if c.cd, err = dense(cd, len(c.xd)); err != nil {
		return err
	}
	if c.ci, err = dense(ci, len(c.xi)); err != nil {
		return err
	}
	c.delta = delta
	return nil
}

// boundaries computes W = Cd·M, ζ = W·B + δ and U = Ci − W·Ai.
func (c *Case) boundaries() error {
	m, err := c.ssys.M()
	if err != nil {
		return err
	}
	w, err := matrix.Mul(c.cd, m)
	if err != nil {
		return err
	}
	zeta, err := matrix.MatVec(w, c.ssys.B())
	if err != nil {
		return err
	}
	for k := range zeta {
		zeta[k] += c.delta[k]
	}
	wai, err := matrix.Mul(w, c.ssys.Ai())
	if err != nil {
		return err
	}
	if c.u, err = matrix.Sub(c.ci, wai); err != nil {
		return err
	}
	c.zeta = zeta
	return nil
}

func difference(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for k := range a {
		out[k] = a[k] - b[k]
	}
	return out
}

// dense builds a rows×cols matrix, allowing either side to be zero.
func dense(rows [][]float64, cols int) (*matrix.Dense, error) {
	if len(rows) == 0 || cols == 0 {
		return matrix.NewZeros(len(rows), cols)
	}
	return matrix.NewFromRows(rows)
}
