// SPDX-License-Identifier: MIT

package cases

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/variables"
)

// IsValid reports whether the case is valid anywhere in parameter space:
// the largest t ≤ 1 with ζ + U·y ≥ t for some y exceeds 1e-14.
// Cases without a steady state are never valid.
func (c *Case) IsValid() bool {
	r, err := c.region()
	if err != nil {
		return false
	}
	ok, _, err := r.valid(r.unbounded())
	return err == nil && ok
}

// IsValidAtPoint reports whether every boundary is non-negative at the
// point.
//
// Errors: ErrNotFixed when an Xi is missing, ErrBadBounds for non-positive
// values.
func (c *Case) IsValidAtPoint(vars expression.Lookup) (bool, error) {
	v, err := c.BoundariesAt(vars)
	if errors.Is(err, ErrNoSolution) {
		return false, nil
	}
	if err != nil {
		return false, caseErrorf("IsValidAtPoint", err)
	}
	for _, x := range v {
		if x < 0 {
			return false, nil
		}
	}
	return true, nil
}

// IsValidAtSlice reports whether the case is valid somewhere inside the
// box lower..upper. Xi missing from a pool are unbounded on that side;
// when every Xi is fixed the test reduces to IsValidAtPoint.
func (c *Case) IsValidAtSlice(lower, upper *variables.Pool) (bool, error) {
	r, err := c.region()
	if err != nil {
		return false, nil
	}
	ok, _, err := r.validAtSlice(lower, upper)
	if err != nil {
		return false, caseErrorf("IsValidAtSlice", err)
	}
	return ok, nil
}

// IsValidInStateSpace reports whether the dominance conditions alone can
// hold for some Xd and Xi. It does not need a steady state.
func (c *Case) IsValidInStateSpace() bool {
	r := c.stateRegion()
	ok, _, err := r.valid(r.unbounded())
	return err == nil && ok
}

// IsValidInStateSpaceAtPoint evaluates the conditions at a point holding
// both Xd and Xi values.
func (c *Case) IsValidInStateSpaceAtPoint(vars expression.Lookup) (bool, error) {
	r := c.stateRegion()
	y, err := logPoint(r.names, vars)
	if err != nil {
		return false, caseErrorf("IsValidInStateSpaceAtPoint", err)
	}
	for _, v := range r.at(y) {
		if v < 0 {
			return false, nil
		}
	}
	return true, nil
}

// ValidParameterSet returns an Xi point deep inside the valid region.
//
// Errors: ErrNoSolution, ErrNotValid.
func (c *Case) ValidParameterSet() (*variables.Pool, error) {
	r, err := c.region()
	if err != nil {
		return nil, err
	}
	ok, y, err := r.valid(r.unbounded())
	if err != nil {
		return nil, caseErrorf("ValidParameterSet", err)
	}
	if !ok {
		return nil, ErrNotValid
	}
	return r.pool(y, len(c.xi))
}

// ValidParameterSetAtSlice returns an Xi point of the valid region inside
// the box lower..upper.
//
// Errors: ErrNoSolution, ErrNotValid, ErrBadBounds.
func (c *Case) ValidParameterSetAtSlice(lower, upper *variables.Pool) (*variables.Pool, error) {
	r, err := c.region()
	if err != nil {
		return nil, err
	}
	ok, y, err := r.validAtSlice(lower, upper)
	if err != nil {
		return nil, caseErrorf("ValidParameterSetAtSlice", err)
	}
	if !ok {
		return nil, ErrNotValid
	}
	return r.pool(y, len(c.xi))
}

// BoundingRange returns the smallest and largest log10 value of the Xi
// name over the closed valid region, optionally restricted to the box
// lower..upper (nil pools leave it unbounded). Unbounded directions give
// ±Inf.
//
// Errors: ErrNoSolution, ErrVariableNotIndependent, ErrNotValid.
func (c *Case) BoundingRange(name string, lower, upper *variables.Pool) ([2]float64, error) {
	r, err := c.region()
	if err != nil {
		return [2]float64{}, err
	}
	k := r.index(name)
	if k < 0 {
		return [2]float64{}, fmt.Errorf("%q: %w", name, ErrVariableNotIndependent)
	}
	b, err := r.box(lower, upper)
	if err != nil {
		return [2]float64{}, caseErrorf("BoundingRange", err)
	}
	lo, hi, err := r.extent(b, k)
	if err != nil {
		return [2]float64{}, caseErrorf("BoundingRange", err)
	}
	return [2]float64{lo, hi}, nil
}
