// SPDX-License-Identifier: MIT

package cases

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/dstoolbox/variables"
	"github.com/katalvlaran/dstoolbox/vertices"
)

// intersection stacks the boundaries of every case into one region.
func intersection(cs []*Case) (*region, error) {
	if len(cs) == 0 {
		return nil, ErrNoCases
	}
	out := &region{names: cs[0].xi}
	for _, c := range cs {
		r, err := c.region()
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", c.number, err)
		}
		if !slices.Equal(r.names, out.names) {
			return nil, fmt.Errorf("case %d: %w: independent variables differ", c.number, ErrSignatureMismatch)
		}
		out.u = append(out.u, r.u...)
		out.zeta = append(out.zeta, r.zeta...)
	}
	return out, nil
}

// exceptIntersection is intersection with the named Xi decoupled: every
// case after the first gets its own copy of those columns, so the cases
// only have to agree on the remaining Xi.
func exceptIntersection(cs []*Case, except []string) (*region, error) {
	base, err := intersection(cs)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(except))
	for k, name := range except {
		if idx[k] = base.index(name); idx[k] < 0 {
			return nil, fmt.Errorf("%q: %w", name, ErrVariableNotIndependent)
		}
	}

	n := len(base.names)
	out := &region{names: append([]string(nil), base.names...), zeta: base.zeta}
	for i := 1; i < len(cs); i++ {
		for _, name := range except {
			out.names = append(out.names, fmt.Sprintf("%s#%d", name, cs[i].number))
		}
	}
	width := len(out.names)
	row := 0
	for i, c := range cs {
		for range c.zeta {
			u := make([]float64, width)
			copy(u, base.u[row])
			if i > 0 {
				for k, j := range idx {
					u[n+(i-1)*len(except)+k] = u[j]
					u[j] = 0
				}
			}
			out.u = append(out.u, u)
			row++
		}
	}
	return out, nil
}

// IntersectionIsValid reports whether the regions of all cases overlap.
func IntersectionIsValid(cs ...*Case) bool {
	r, err := intersection(cs)
	if err != nil {
		return false
	}
	ok, _, err := r.valid(r.unbounded())
	return err == nil && ok
}

// IntersectionIsValidAtSlice reports whether the regions overlap inside the
// box lower..upper.
func IntersectionIsValidAtSlice(cs []*Case, lower, upper *variables.Pool) (bool, error) {
	r, err := intersection(cs)
	if err != nil {
		return false, nil
	}
	ok, _, err := r.validAtSlice(lower, upper)
	if err != nil {
		return false, caseErrorf("IntersectionIsValidAtSlice", err)
	}
	return ok, nil
}

// IntersectionValidParameterSet returns an Xi point inside every region.
//
// Errors: ErrNoCases, ErrNoSolution, ErrNotValid.
func IntersectionValidParameterSet(cs ...*Case) (*variables.Pool, error) {
	r, err := intersection(cs)
	if err != nil {
		return nil, err
	}
	ok, y, err := r.valid(r.unbounded())
	if err != nil {
		return nil, caseErrorf("IntersectionValidParameterSet", err)
	}
	if !ok {
		return nil, ErrNotValid
	}
	return r.pool(y, len(cs[0].xi))
}

// IntersectionVerticesForSlice returns the vertices of the overlap of all
// regions in a 1-, 2- or 3-D slice.
func IntersectionVerticesForSlice(cs []*Case, lower, upper *variables.Pool, axes ...string) (*vertices.Vertices, error) {
	r, err := intersection(cs)
	if err != nil {
		return nil, err
	}
	v, err := r.verticesForSlice(lower, upper, axes)
	if err != nil {
		return nil, caseErrorf("IntersectionVerticesForSlice", err)
	}
	return v, nil
}

// IntersectionExceptSliceIsValid reports whether the cases overlap once the
// named Xi may take a different value in each case.
func IntersectionExceptSliceIsValid(cs []*Case, except []string) (bool, error) {
	r, err := exceptIntersection(cs, except)
	if err != nil {
		return false, err
	}
	ok, _, err := r.valid(r.unbounded())
	if err != nil {
		return false, caseErrorf("IntersectionExceptSliceIsValid", err)
	}
	return ok, nil
}

// IntersectionExceptSliceIsValidAtSlice is IntersectionExceptSliceIsValid
// inside the box lower..upper. The bounds of the named Xi apply to the
// first case only.
func IntersectionExceptSliceIsValidAtSlice(cs []*Case, except []string, lower, upper *variables.Pool) (bool, error) {
	r, err := exceptIntersection(cs, except)
	if err != nil {
		return false, err
	}
	ok, _, err := r.validAtSlice(lower, upper)
	if err != nil {
		return false, caseErrorf("IntersectionExceptSliceIsValidAtSlice", err)
	}
	return ok, nil
}

// IntersectionExceptSliceValidParameterSet returns the Xi point of the
// first case from a witness of IntersectionExceptSliceIsValid.
func IntersectionExceptSliceValidParameterSet(cs []*Case, except []string) (*variables.Pool, error) {
	r, err := exceptIntersection(cs, except)
	if err != nil {
		return nil, err
	}
	ok, y, err := r.valid(r.unbounded())
	if err != nil {
		return nil, caseErrorf("IntersectionExceptSliceValidParameterSet", err)
	}
	if !ok {
		return nil, ErrNotValid
	}
	return r.pool(y, len(cs[0].xi))
}
