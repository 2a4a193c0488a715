// SPDX-License-Identifier: MIT

package lp

import "errors"

// Sentinel errors returned by Solve.
var (
	// ErrBadShape indicates inconsistent problem dimensions.
	ErrBadShape = errors.New("lp: inconsistent problem dimensions")

	// ErrInfeasible indicates an empty feasible region.
	ErrInfeasible = errors.New("lp: problem is infeasible")

	// ErrUnbounded indicates an objective without a finite minimum.
	ErrUnbounded = errors.New("lp: problem is unbounded")
)

// Tolerance is the zero threshold used for pivots and row feasibility.
const Tolerance = 1e-10

// Problem is a linear program in inequality form. G is row-major with one
// row per constraint; Lower and Upper may be nil, meaning unbounded.
type Problem struct {
	Objective []float64
	G         [][]float64
	H         []float64
	Lower     []float64
	Upper     []float64
}

// Solution is an optimal point and its objective value.
type Solution struct {
	Value float64
	X     []float64
}
