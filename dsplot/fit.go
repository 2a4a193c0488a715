// SPDX-License-Identifier: MIT

package dsplot

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// plane is z = c0 + c1·x + c2·y.
type plane [3]float64

func (p plane) at(x, y float64) float64 { return p[0] + p[1]*x + p[2]*y }

// fitPlane returns the least-squares plane through at least three points.
// Within one case log steady states and log fluxes are affine in the log
// axes, so the fit is exact for them.
func fitPlane(pts [][3]float64) (plane, error) {
	if len(pts) < 3 {
		return plane{}, fmt.Errorf("dsplot: plane fit needs 3 points, got %d", len(pts))
	}
	a := mat.NewDense(len(pts), 3, nil)
	b := mat.NewVecDense(len(pts), nil)
	for i, p := range pts {
		a.Set(i, 0, 1)
		a.Set(i, 1, p[0])
		a.Set(i, 2, p[1])
		b.SetVec(i, p[2])
	}
	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return plane{}, fmt.Errorf("dsplot: plane fit: %w", err)
		}
	}
	return plane{c.AtVec(0), c.AtVec(1), c.AtVec(2)}, nil
}
