// SPDX-License-Identifier: MIT

package gma

import (
	"errors"

	"github.com/katalvlaran/dstoolbox/variables"
)

// Sentinel errors for model parsing.
var (
	// ErrNoEquations indicates an empty equation list.
	ErrNoEquations = errors.New("gma: no equations")

	// ErrMissingEquals indicates an equation that is not an '=' relation.
	ErrMissingEquals = errors.New("gma: equation has no '='")

	// ErrUnknownDependent indicates a left-hand side that is not a dependent variable.
	ErrUnknownDependent = errors.New("gma: left-hand side is not a dependent variable")

	// ErrNotPowerLaw indicates a right-hand side term that is not a power law.
	ErrNotPowerLaw = errors.New("gma: term is not a power law")

	// ErrNoPositiveTerm indicates an equation without a positive term.
	ErrNoPositiveTerm = errors.New("gma: equation has no positive term")

	// ErrNoNegativeTerm indicates an equation without a negative term.
	ErrNoNegativeTerm = errors.New("gma: equation has no negative term")

	// ErrEquationCount indicates that the number of equations differs from |Xd|.
	ErrEquationCount = errors.New("gma: number of equations differs from number of dependent variables")

	// ErrIndexOutOfRange indicates an equation or term index outside the system.
	ErrIndexOutOfRange = errors.New("gma: index out of range")
)

// Term is one power-law term α·Π Xd^Kd·Π Xi^Ki. Coefficient is the magnitude
// (always > 0); the sign is given by the list the term belongs to.
type Term struct {
	Coefficient float64
	Kd          []float64 // kinetic orders for Xd, in Xd order
	Ki          []float64 // kinetic orders for Xi, in Xi order
}

// System is a parsed GMA model. It is immutable after Parse.
type System struct {
	xd, xi    *variables.Pool // read-only
	positive  [][]Term        // positive[i][p]
	negative  [][]Term        // negative[i][n]
	algebraic []bool          // equation i has no time derivative on its left side
	signature []int           // [p0, n0, p1, n1, ...]
}
