// SPDX-License-Identifier: MIT

package ssystem

import (
	"errors"

	"github.com/katalvlaran/dstoolbox/matrix"
)

// Sentinel errors for S-system construction and analysis.
var (
	// ErrSignatureMismatch indicates a term signature of the wrong length or
	// with an entry outside [1, number of terms].
	ErrSignatureMismatch = errors.New("ssystem: term signature does not match the system")

	// ErrNoSolution indicates Ad is singular, so no steady state exists.
	ErrNoSolution = errors.New("ssystem: system has no steady-state solution")

	// ErrVariableNotFound indicates a name that is neither in Xd nor in Xi,
	// or an Xi value missing from the supplied point.
	ErrVariableNotFound = errors.New("ssystem: variable not found")

	// ErrNonPositive indicates a non-positive value where a logarithm is taken.
	ErrNonPositive = errors.New("ssystem: value must be positive")

	// ErrNotSSystem indicates parsed equations with more than one positive or
	// negative term.
	ErrNotSSystem = errors.New("ssystem: equation is not in S-system form")
)

// routhEpsilon replaces a zero leading element in the Routh array.
const routhEpsilon = 1e-12

// SSystem is an immutable S-system with its log-space solution.
//
// Row i of every matrix belongs to equation i (dependent variable xd[i]).
type SSystem struct {
	xd, xi      []string
	alpha, beta []float64
	gd, gi      *matrix.Dense // n×nd, n×ni
	hd, hi      *matrix.Dense
	ad, ai      *matrix.Dense // Gd−Hd, Gi−Hi
	b           []float64     // log10(β/α)

	// Present only when Ad is invertible.
	m    *matrix.Dense // Ad⁻¹
	mb   []float64     // M·B
	gain *matrix.Dense // L = −M·Ai
}
