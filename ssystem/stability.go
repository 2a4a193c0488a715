// SPDX-License-Identifier: MIT

package ssystem

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/matrix"
)

// Jacobian returns ∂Xd./∂Xd at the steady state for the point vars:
// J_ij = V_i·(Gd−Hd)_ij / X_j, where V_i is the flux of equation i.
func (s *SSystem) Jacobian(vars expression.Lookup) (*matrix.Dense, error) {
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
	flux, err := s.fluxLog(yd, yi)
	if err != nil {
		return nil, err
	}

	n := len(s.xd)
	j, err := matrix.NewZeros(n, n)
	if err != nil {
		return nil, err
	}
	var r, c int
	for r = 0; r < n; r++ {
		for c = 0; c < n; c++ {
			// V_r/X_c computed in log space to keep the ratio finite.
			v := s.ad.Get(r, c) * math.Pow(10, flux[r]-yd[c])
			if err = j.Set(r, c, v); err != nil {
				return nil, fmt.Errorf("ssystem: Jacobian(%d,%d): %w", r, c, err)
			}
		}
	}
	return j, nil
}

// RouthArray returns the Routh–Hurwitz table of the characteristic
// polynomial of the Jacobian at vars. Row k has ⌈(n+1−k)/2⌉ meaningful
// entries; the rest are zero.
func (s *SSystem) RouthArray(vars expression.Lookup) (*matrix.Dense, error) {
	j, err := s.Jacobian(vars)
	if err != nil {
		return nil, err
	}
	return RouthArrayOf(j)
}

// RouthIndex returns the number of sign changes in the first column of the
// Routh array, i.e. the number of eigenvalues of the Jacobian with positive
// real part. 0 means locally stable.
func (s *SSystem) RouthIndex(vars expression.Lookup) (int, error) {
	j, err := s.Jacobian(vars)
	if err != nil {
		return 0, err
	}
	return RouthIndexOf(j)
}

// RouthArrayOf builds the Routh array of det(λI − J).
//
// Implementation:
//   - Stage 1: coefficients by Faddeev–LeVerrier.
//   - Stage 2: rows 0 and 1 hold the even and odd coefficients.
//   - Stage 3: each next row is the 2×2 cross product of the two above,
//     divided by the leading entry; a zero leading entry is replaced by a
//     small ε, and an all-zero row by the derivative of the auxiliary
//     polynomial formed from the row above.
func RouthArrayOf(j *matrix.Dense) (*matrix.Dense, error) {
	coeffs, err := matrix.CharacteristicPolynomial(j)
	if err != nil {
		return nil, err
	}
	n := len(coeffs) - 1
	width := n/2 + 1
	table := make([][]float64, n+1)
	for r := range table {
		table[r] = make([]float64, width)
	}
	for k, c := range coeffs {
		table[k%2][k/2] = c
	}

	for r := 2; r <= n; r++ {
		up, prev := table[r-2], table[r-1]
		if allZero(prev) {
			// Auxiliary polynomial of row r−2 has degree n−r+2 with even powers.
			deg := n - r + 2
			for k := range prev {
				prev[k] = up[k] * float64(deg-2*k)
			}
		}
		if prev[0] == 0 {
			prev[0] = routhEpsilon
		}
		for k := 0; k < width-1; k++ {
			table[r][k] = (prev[0]*up[k+1] - up[0]*prev[k+1]) / prev[0]
		}
	}
	if n >= 1 && table[n][0] == 0 {
		table[n][0] = routhEpsilon
	}

	return matrix.NewFromRows(table)
}

// RouthIndexOf counts sign changes in the first column of RouthArrayOf(j).
func RouthIndexOf(j *matrix.Dense) (int, error) {
	table, err := RouthArrayOf(j)
	if err != nil {
		return 0, err
	}
	col, err := table.Col(0)
	if err != nil {
		return 0, err
	}
	changes := 0
	for k := 1; k < len(col); k++ {
		if (col[k-1] < 0) != (col[k] < 0) {
			changes++
		}
	}
	return changes, nil
}

func allZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Reduced is an S-system whose algebraic variables are treated as being at
// quasi-steady state. Its Jacobian is the Schur complement of the algebraic
// block of the full Jacobian.
type Reduced struct {
	s         *SSystem
	dynamic   []int
	algebraic []int
}

// WithoutAlgebraicConstraints returns the reduced view in which the named
// dependent variables are algebraic.
//
// Errors: ErrVariableNotFound.
func (s *SSystem) WithoutAlgebraicConstraints(names []string) (*Reduced, error) {
	isAlg := make([]bool, len(s.xd))
	for _, n := range names {
		i := indexOf(s.xd, n)
		if i < 0 {
			return nil, fmt.Errorf("%q: %w", n, ErrVariableNotFound)
		}
		isAlg[i] = true
	}
	r := &Reduced{s: s}
	for i, alg := range isAlg {
		if alg {
			r.algebraic = append(r.algebraic, i)
		} else {
			r.dynamic = append(r.dynamic, i)
		}
	}
	return r, nil
}

// Dynamic returns the names of the dependent variables that remain dynamic.
func (r *Reduced) Dynamic() []string {
	out := make([]string, len(r.dynamic))
	for k, i := range r.dynamic {
		out[k] = r.s.xd[i]
	}
	return out
}

// Jacobian returns J_DD − J_DA·J_AA⁻¹·J_AD at the steady state of vars.
func (r *Reduced) Jacobian(vars expression.Lookup) (*matrix.Dense, error) {
	full, err := r.s.Jacobian(vars)
	if err != nil {
		return nil, err
	}
	if len(r.algebraic) == 0 {
		return full, nil
	}
	jdd, err := matrix.SubMatrix(full, r.dynamic, r.dynamic)
	if err != nil {
		return nil, err
	}
	jda, err := matrix.SubMatrix(full, r.dynamic, r.algebraic)
	if err != nil {
		return nil, err
	}
	jaa, err := matrix.SubMatrix(full, r.algebraic, r.algebraic)
	if err != nil {
		return nil, err
	}
	jad, err := matrix.SubMatrix(full, r.algebraic, r.dynamic)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.Inverse(jaa)
	if err != nil {
		return nil, fmt.Errorf("ssystem: algebraic block: %w", err)
	}
	t, err := matrix.Mul(jda, inv)
	if err != nil {
		return nil, err
	}
	t, err = matrix.Mul(t, jad)
	if err != nil {
		return nil, err
	}
	return matrix.Sub(jdd, t)
}

// RouthIndex is the Routh index of the reduced Jacobian.
func (r *Reduced) RouthIndex(vars expression.Lookup) (int, error) {
	j, err := r.Jacobian(vars)
	if err != nil {
		return 0, err
	}
	return RouthIndexOf(j)
}

// RouthArray is the Routh array of the reduced Jacobian.
func (r *Reduced) RouthArray(vars expression.Lookup) (*matrix.Dense, error) {
	j, err := r.Jacobian(vars)
	if err != nil {
		return nil, err
	}
	return RouthArrayOf(j)
}
