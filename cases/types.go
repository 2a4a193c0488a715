// SPDX-License-Identifier: MIT

package cases

import (
	"errors"

	"github.com/katalvlaran/dstoolbox/matrix"
	"github.com/katalvlaran/dstoolbox/ssystem"
)

// Sentinel errors for case construction and analysis.
var (
	// ErrCaseNumberZero indicates case number 0; numbering starts at 1.
	ErrCaseNumberZero = errors.New("cases: case number is zero")

	// ErrCaseNumberOutOfRange indicates a number above the number of cases.
	ErrCaseNumberOutOfRange = errors.New("cases: case number is out of range")

	// ErrSignatureMismatch indicates a signature or condition block that does
	// not fit the system.
	ErrSignatureMismatch = errors.New("cases: signature does not match the system")

	// ErrNoSolution indicates a case whose S-system has no steady state.
	ErrNoSolution = errors.New("cases: case has no steady-state solution")

	// ErrVariableNotIndependent indicates a name that is not an Xi.
	ErrVariableNotIndependent = errors.New("cases: variable is not independent")

	// ErrVariableNotDependent indicates a name that is not an Xd.
	ErrVariableNotDependent = errors.New("cases: variable is not dependent")

	// ErrSliceDimension indicates a slice whose free variables do not match
	// the requested axes.
	ErrSliceDimension = errors.New("cases: wrong number of free variables for slice")

	// ErrNotFixed indicates an Xi missing from the slice bounds.
	ErrNotFixed = errors.New("cases: independent variable is not bounded")

	// ErrBadBounds indicates lower > upper or a non-positive bound.
	ErrBadBounds = errors.New("cases: inconsistent slice bounds")

	// ErrNotValid indicates an empty region.
	ErrNotValid = errors.New("cases: region is empty")

	// ErrNoCases indicates an intersection of zero cases.
	ErrNoCases = errors.New("cases: no cases given")
)

// validityThreshold is the slack a region needs to count as non-empty.
const validityThreshold = 1e-14

// meshSamples is the number of points placed on each polygon edge.
const meshSamples = 10

// Endianness selects the digit order of case numbers.
type Endianness int

const (
	// BigEndian makes the last signature entry least significant.
	BigEndian Endianness = iota
	// LittleEndian makes the first signature entry least significant.
	LittleEndian
)

// Conditions are extra dominance rows δ + Cd·yd + Ci·yi > 0 appended to
// every case of a design space.
type Conditions struct {
	Cd    [][]float64
	Ci    [][]float64
	Delta []float64
}

// Len returns the number of rows.
func (c *Conditions) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Delta)
}

// Options configures case construction.
type Options struct {
	Endianness Endianness
	Extra      *Conditions
}

// Option mutates Options.
type Option func(*Options)

// WithLittleEndian numbers cases with the first term least significant.
func WithLittleEndian() Option {
	return func(o *Options) { o.Endianness = LittleEndian }
}

// WithEndianness sets the case-number digit order.
func WithEndianness(e Endianness) Option {
	return func(o *Options) { o.Endianness = e }
}

// WithExtraConditions appends rows to the conditions of every case.
func WithExtraConditions(c *Conditions) Option {
	return func(o *Options) { o.Extra = c }
}

// Case is one dominance combination of a GMA system. It is immutable after
// construction and safe for concurrent use.
type Case struct {
	number    int
	signature []int
	ssys      *ssystem.SSystem
	xd, xi    []string

	cd, ci *matrix.Dense // conditions
	delta  []float64

	u    *matrix.Dense // boundaries; nil without a solution
	zeta []float64
}
