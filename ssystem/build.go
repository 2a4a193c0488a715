// SPDX-License-Identifier: MIT

package ssystem

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/dstoolbox/gma"
	"github.com/katalvlaran/dstoolbox/matrix"
	"github.com/katalvlaran/dstoolbox/variables"
)

// FromGMA selects one positive and one negative term per equation of sys.
// signature is 1-based and laid out like gma.System.Signature:
// [p0, n0, p1, n1, ...].
//
// Errors: ErrSignatureMismatch.
func FromGMA(sys *gma.System, signature []int) (*SSystem, error) {
	n := sys.NumberOfEquations()
	full := sys.Signature()
	if len(signature) != len(full) {
		return nil, fmt.Errorf("%w: got %d entries, want %d", ErrSignatureMismatch, len(signature), len(full))
	}
	for k, v := range signature {
		if v < 1 || v > full[k] {
			return nil, fmt.Errorf("%w: entry %d is %d, want 1..%d", ErrSignatureMismatch, k, v, full[k])
		}
	}

	xd, xi := sys.XdNames(), sys.XiNames()
	alpha := make([]float64, n)
	beta := make([]float64, n)
	gd := make([][]float64, n)
	gi := make([][]float64, n)
	hd := make([][]float64, n)
	hi := make([][]float64, n)
	for i := 0; i < n; i++ {
		pos, err := sys.PositiveTerm(i, signature[2*i]-1)
		if err != nil {
			return nil, err
		}
		neg, err := sys.NegativeTerm(i, signature[2*i+1]-1)
		if err != nil {
			return nil, err
		}
		alpha[i], beta[i] = pos.Coefficient, neg.Coefficient
		gd[i], gi[i] = pos.Kd, pos.Ki
		hd[i], hi[i] = neg.Kd, neg.Ki
	}

	return New(xd, xi, alpha, beta, gd, gi, hd, hi)
}

// Parse reads S-system equations (one positive and one negative term each).
func Parse(equations []string, xd *variables.Pool) (*SSystem, error) {
	sys, err := gma.Parse(equations, xd)
	if err != nil {
		return nil, err
	}
	sig := sys.Signature()
	for k, v := range sig {
		if v != 1 {
			return nil, fmt.Errorf("%w: equation %d", ErrNotSSystem, k/2)
		}
	}

	return FromGMA(sys, sig)
}

// New assembles an S-system from raw coefficients and kinetic orders and
// solves it. xd and xi name the columns of the d and i blocks.
func New(xd, xi []string, alpha, beta []float64, gd, gi, hd, hi [][]float64) (*SSystem, error) {
	n := len(xd)
	if len(alpha) != n || len(beta) != n || len(gd) != n || len(gi) != n || len(hd) != n || len(hi) != n {
		return nil, fmt.Errorf("%w: every block needs %d rows", ErrSignatureMismatch, n)
	}
	s := &SSystem{
		xd:    append([]string(nil), xd...),
		xi:    append([]string(nil), xi...),
		alpha: append([]float64(nil), alpha...),
		beta:  append([]float64(nil), beta...),
		b:     make([]float64, n),
	}
	var err error
	if s.gd, err = block(gd, n, len(xd)); err != nil {
		return nil, err
	}
	if s.hd, err = block(hd, n, len(xd)); err != nil {
		return nil, err
	}
	if s.gi, err = block(gi, n, len(xi)); err != nil {
		return nil, err
	}
	if s.hi, err = block(hi, n, len(xi)); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if alpha[i] <= 0 || beta[i] <= 0 {
			return nil, fmt.Errorf("equation %d: %w", i, ErrNonPositive)
		}
		s.b[i] = math.Log10(beta[i] / alpha[i])
	}
	if s.ad, err = matrix.Sub(s.gd, s.hd); err != nil {
		return nil, err
	}
	if s.ai, err = matrix.Sub(s.gi, s.hi); err != nil {
		return nil, err
	}
	if err = s.solve(); err != nil {
		return nil, err
	}

	return s, nil
}

// block builds a rows×cols Dense, tolerating cols == 0.
func block(data [][]float64, rows, cols int) (*matrix.Dense, error) {
	for i, r := range data {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrSignatureMismatch, i, len(r), cols)
		}
	}
	if cols == 0 {
		return matrix.NewZeros(rows, 0)
	}

	return matrix.NewFromRows(data)
}

// solve computes M, M·B and L. A singular Ad leaves them nil.
func (s *SSystem) solve() error {
	m, err := matrix.Inverse(s.ad)
	if errors.Is(err, matrix.ErrSingular) {
		return nil
	}
	if err != nil {
		return err
	}
	s.m = m
	if s.mb, err = matrix.MatVec(m, s.b); err != nil {
		return err
	}
	mai, err := matrix.Mul(m, s.ai)
	if err != nil {
		return err
	}
	s.gain, err = matrix.Negate(mai)

	return err
}
