// SPDX-License-Identifier: MIT

// Package lp solves small dense linear programs of the form
//
//	minimise   cᵀx
//	subject to G·x ≤ h
//	           lower ≤ x ≤ upper
//
// on top of gonum's simplex solver. Bounds may be ±Inf.
//
// Implementation:
//
//   - Stage 1: variables with lower == upper are substituted into h and into the
//     objective constant.
//   - Stage 2: finite bounds become extra rows of G; rows left all zero are
//     checked for feasibility and dropped.
//   - Stage 3: a variable whose column is still all zero is pinned at 0 when its
//     cost is 0, and makes the program unbounded otherwise.
//   - Stage 4: the rest is brought to standard form with lp.Convert
//     (x = x⁺ − x⁻ plus one slack per row) and solved with lp.Simplex.
//
// Errors (sentinel):
//
//   - ErrBadShape    if G, h, c and the bounds disagree in size.
//   - ErrInfeasible  if no x satisfies the constraints.
//   - ErrUnbounded   if the objective has no finite minimum.
//
// The design-space code uses it for case validity (maximising a slack), for
// bounding ranges and for 1-D vertices.
package lp
