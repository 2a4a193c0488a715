// SPDX-License-Identifier: MIT

package designspace

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/dstoolbox/cases"
	"github.com/katalvlaran/dstoolbox/variables"
	"github.com/katalvlaran/dstoolbox/vertices"
)

// FindIntersections returns, per group size, the groups of cases whose
// regions overlap. Sizes are tried in the order given; within a size every
// combination of the current candidates is tested and the valid groups are
// kept in reverse discovery order. The search stops at the first size
// without a valid group, and each later size only considers cases that
// took part in a valid group of the previous size.
//
// With nil lower and upper the overlap is tested over all of parameter
// space, otherwise inside the box. Fewer than two cases give nil.
func (ds *DesignSpace) FindIntersections(ctx context.Context, cs []*cases.Case, sizes []int, lower, upper *variables.Pool) ([][]Intersection, error) {
	if len(cs) <= 1 {
		return nil, nil
	}
	ctx, span := tracer.Start(ctx, "designspace.FindIntersections",
		trace.WithAttributes(attribute.Int("cases", len(cs)), attribute.IntSlice("sizes", sizes)))
	defer span.End()

	sliced := lower != nil || upper != nil
	var out [][]Intersection
	for _, n := range sizes {
		if n < 1 || len(cs) < n {
			break
		}
		var current []Intersection
		used := make([]bool, len(cs))
		var err error
		combinations(len(cs), n, func(idx []int) bool {
			if err = ctx.Err(); err != nil {
				return false
			}
			group := make(Intersection, n)
			for k, i := range idx {
				group[k] = cs[i]
			}
			ok := false
			if sliced {
				if ok, err = cases.IntersectionIsValidAtSlice(group, lower, upper); err != nil {
					return false
				}
			} else {
				ok = cases.IntersectionIsValid(group...)
			}
			if ok {
				current = append(current, group)
				for _, i := range idx {
					used[i] = true
				}
			}
			return true
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if len(current) == 0 {
			break
		}
		slices.Reverse(current)
		out = append(out, current)

		next := cs[:0:0]
		for i, c := range cs {
			if used[i] {
				next = append(next, c)
			}
		}
		cs = next
	}
	span.SetAttributes(attribute.Int("sizes_found", len(out)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// VerticesForIntersection returns the log10 polygon of the overlap of the
// cases in the x, y slice.
//
// Errors: ErrTooFewCases, and the cases slice errors.
func (ds *DesignSpace) VerticesForIntersection(cs []*cases.Case, lower, upper *variables.Pool, x, y string) (*vertices.Vertices, error) {
	if len(cs) < 2 {
		return nil, ErrTooFewCases
	}
	return cases.IntersectionVerticesForSlice(cs, lower, upper, x, y)
}

// combinations calls visit with every k-subset of 0..n-1 in lexicographic
// order until visit returns false. idx is reused between calls.
func combinations(n, k int, visit func(idx []int) bool) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !visit(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
