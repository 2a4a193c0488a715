// SPDX-License-Identifier: MIT

package vertices

import (
	"errors"
	"math"
)

// ErrDimension indicates a point or plane of the wrong dimension.
var ErrDimension = errors.New("vertices: dimension mismatch")

// DuplicateTolerance is the relative distance under which two coordinates
// are considered equal.
const DuplicateTolerance = 1e-12

// feasibilityTolerance is the slack allowed when testing a vertex against
// the half-spaces that did not produce it.
const feasibilityTolerance = 1e-9

// Vertices is an ordered set of points of equal dimension.
type Vertices struct {
	Dimensions int         `json:"dimensions"`
	Points     [][]float64 `json:"points"`
}

// HalfPlane is the closed half-plane A·x + B·y + C ≥ 0.
type HalfPlane struct {
	A, B, C float64
}

// Eval returns A·x + B·y + C.
func (h HalfPlane) Eval(x, y float64) float64 { return h.A*x + h.B*y + h.C }

// HalfSpace is the closed half-space Normal·p + Offset ≥ 0 in three dimensions.
type HalfSpace struct {
	Normal [3]float64
	Offset float64
}

// Eval returns Normal·p + Offset.
func (h HalfSpace) Eval(p []float64) float64 {
	return h.Normal[0]*p[0] + h.Normal[1]*p[1] + h.Normal[2]*p[2] + h.Offset
}

func sameCoordinate(a, b float64) bool {
	return math.Abs(a-b) <= DuplicateTolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
