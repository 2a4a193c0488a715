// SPDX-License-Identifier: MIT
// Package matrix: public constructors and facades.
//
// Purpose:
//   - Provide intention-revealing entry points (NewZeros, NewIdentity).
//   - Keep facades logic-free: each one delegates to the canonical kernel.

package matrix

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// Unlike NewDense it accepts rows==0 or cols==0: a design space without
// independent variables yields n×0 coefficient matrices.
//
// Errors: ErrInvalidDimensions when either side is negative.
// Complexity: O(rows*cols).
func NewZeros(rows, cols int) (*Dense, error) {
	return newDenseZeroOK(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// n == 0 yields an empty 0×0 matrix.
//
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := newDenseZeroOK(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ { // fixed i order guarantees reproducibility
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return newDenseZeroOK(m.Rows(), m.Cols())
}

// Negate returns −m. It is a thin alias of Scale(m, -1).
func Negate(m Matrix) (*Dense, error) { return Scale(m, -1) }
