// SPDX-License-Identifier: MIT

// Package matrix: the public Matrix interface and shared numeric constants.
// Errors live in errors.go; kernels live in impl_*.go.
package matrix

// PivotTolerance is the magnitude below which a pivot is treated as zero by
// the elimination kernels (Inverse, Solve, Determinant, Rank, LeftNullspace).
// It matches the 1e-14 threshold used for case validity so that a matrix the
// case layer considers degenerate is also singular here.
const PivotTolerance = 1e-14

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// Complexity: O(rows*cols).
	Clone() Matrix
}
