// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, scalar scaling, and Gauss–Jordan inversion. All functions perform
// strict fail-fast validation and return clear errors on dimension mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used by the S-system solver.
//   - Define operation tags for determinism and error reporting.
//
// Notes:
//   - Kernels normalise operands through asDense and then walk flat slices.
//   - Results are always freshly allocated *Dense; inputs are never mutated.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opScale       = "Scale"
	opMatVec      = "MatVec"
	opInverse     = "Inverse"
	opSolve       = "Solve"
	opDeterminant = "Determinant"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b).
//   - Stage 2: single flat loop 0..n-1 over both buffers.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	res := mustDense(da.r, da.c)
	for idx := range res.data { // deterministic 0..n-1
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) {
	return addSub(a, b, 1, opAdd)
}

// Sub computes the element-wise difference C = A − B.
// In the S-system layer this is the kinetic-order difference Ad = Gd − Hd.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
func Sub(a, b Matrix) (*Dense, error) {
	return addSub(a, b, -1, opSub)
}

// Mul computes the matrix product C = A × B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible (a.Cols == b.Rows).
//   - Stage 2: i→k→j loop so the inner j-walk is contiguous in both B and C.
//
// Behavior highlights:
//   - An inner dimension of 0 yields an all-zero r×c result, which is the
//     algebraically correct product for empty coefficient blocks.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	rows, inner, cols := da.r, da.c, db.c
	res := mustDense(rows, cols)
	var (
		i, k, j int
		aik     float64
		rowC    []float64
		rowB    []float64
	)
	for i = 0; i < rows; i++ {
		rowC = res.data[i*cols : (i+1)*cols]
		for k = 0; k < inner; k++ {
			aik = da.data[i*inner+k]
			if aik == 0 {
				continue
			}
			rowB = db.data[k*cols : (k+1)*cols]
			for j = 0; j < cols; j++ {
				rowC[j] += aik * rowB[j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix that is the transpose of m.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	res := mustDense(d.c, d.r)
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[j*d.r+i] = d.data[i*d.c+j]
		}
	}

	return res, nil
}

// Scale returns alpha*m as a new matrix.
//
// Errors:
//   - ErrNilMatrix; ErrNaNInf when alpha is not finite.
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	res := mustDense(d.r, d.c)
	for idx := range d.data {
		res.data[idx] = alpha * d.data[idx]
	}

	return res, nil
}

// MatVec computes y = m·x for a vector x of length Cols(m).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, d.r)
	var (
		i, j int
		sum  float64
	)
	for i = 0; i < d.r; i++ {
		sum = 0
		for j = 0; j < d.c; j++ {
			sum += d.data[i*d.c+j] * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// gaussJordan reduces the augmented system [A | B] in place to [I | A⁻¹B]
// using partial pivoting. a is n×n and b is n×k; both are overwritten.
// It returns the determinant of the original A (product of pivots with the
// permutation sign), or ErrSingular when a pivot magnitude falls below
// PivotTolerance.
//
// Implementation:
//   - Stage 1: for each column p, select the row r ≥ p with the largest |a[r,p]|.
//   - Stage 2: swap rows r and p in both blocks (flip the determinant sign).
//   - Stage 3: normalise row p, then eliminate column p from every other row.
//
// Complexity:
//   - Time O(n^2*(n+k)), Space O(1) beyond the inputs.
func gaussJordan(a, b *Dense) (float64, error) {
	n, k := a.r, b.c
	det := 1.0
	var (
		p, r, i, j int
		best, v    float64
		piv, f     float64
	)
	for p = 0; p < n; p++ {
		// Stage 1: partial pivot selection.
		r, best = p, math.Abs(a.data[p*n+p])
		for i = p + 1; i < n; i++ {
			if v = math.Abs(a.data[i*n+p]); v > best {
				r, best = i, v
			}
		}
		if best < PivotTolerance {
			return 0, ErrSingular
		}
		// Stage 2: row swap.
		if r != p {
			for j = 0; j < n; j++ {
				a.data[p*n+j], a.data[r*n+j] = a.data[r*n+j], a.data[p*n+j]
			}
			for j = 0; j < k; j++ {
				b.data[p*k+j], b.data[r*k+j] = b.data[r*k+j], b.data[p*k+j]
			}
			det = -det
		}
		// Stage 3: normalise and eliminate.
		piv = a.data[p*n+p]
		det *= piv
		for j = 0; j < n; j++ {
			a.data[p*n+j] /= piv
		}
		for j = 0; j < k; j++ {
			b.data[p*k+j] /= piv
		}
		for i = 0; i < n; i++ {
			if i == p {
				continue
			}
			f = a.data[i*n+p]
			if f == 0 {
				continue
			}
			for j = 0; j < n; j++ {
				a.data[i*n+j] -= f * a.data[p*n+j]
			}
			for j = 0; j < k; j++ {
				b.data[i*k+j] -= f * b.data[p*k+j]
			}
		}
	}

	return det, nil
}

// Inverse computes A⁻¹ by Gauss–Jordan elimination with partial pivoting.
//
// Behavior highlights:
//   - Kinetic-order matrices often carry zeros on the diagonal (a dominant term
//     that does not involve its own dependent variable), so row exchanges are
//     required; a plain Doolittle sweep would reject them.
//   - A 0×0 input returns a 0×0 result.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	work := d.clone()
	inv, _ := NewIdentity(d.r)
	if _, err = gaussJordan(work, inv); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	return inv, nil
}

// Solve returns x such that A·x = b.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrSingular.
func Solve(m Matrix, b []float64) ([]float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateVecLen(b, m.Rows()); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	work := d.clone()
	rhs := NewColumn(b)
	if _, err = gaussJordan(work, rhs); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return rhs.data, nil
}

// Determinant returns det(A). A singular matrix yields 0 with a nil error.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
func Determinant(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	work := d.clone()
	empty := mustDense(d.r, 0)
	det, err := gaussJordan(work, empty)
	if err != nil {
		return 0, nil
	}

	return det, nil
}
