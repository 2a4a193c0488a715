// SPDX-License-Identifier: MIT

// Package vertices holds the vertex sets of case regions restricted to a
// slice of parameter space.
//
// A region is the intersection of half-spaces ζ + U·y > 0 with an axis
// aligned box, all in log10 coordinates:
//
//   - 1-D slices are intervals and are produced directly by linear programs.
//   - 2-D slices are convex polygons, built by Sutherland–Hodgman clipping of
//     the box and ordered clockwise starting from the vertex with largest x.
//   - 3-D slices are convex polyhedra; their vertices are found by solving
//     every triple of bounding planes and keeping the feasible solutions.
//
// Points closer than DuplicateTolerance are treated as one vertex.
package vertices
