// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear algebra used to solve power-law
// systems in logarithmic coordinates.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set.
//   - Elementwise and product kernels: Add, Sub, Scale, Mul, MatVec, Transpose.
//   - Inverse, Solve and Determinant via Gauss–Jordan elimination with
//     partial pivoting (S-system matrices frequently carry zero diagonals).
//   - Rank and LeftNullspace via reduced row echelon form, used to diagnose
//     underdetermined cases.
//   - CharacteristicPolynomial (Faddeev–LeVerrier) for Routh–Hurwitz tests.
//   - Composition helpers: AppendRows, AppendCols, SubMatrix, Row, Col.
//
// Zero-sized shapes (0×k and k×0) are legal wherever a design space has no
// independent variables or a case has no conditions; use NewZeros for them.
//
// See example_test.go for usage patterns.
package matrix
